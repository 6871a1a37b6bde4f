package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tacogips/ignite/internal/debug"
	"github.com/tacogips/ignite/internal/pm"
	"github.com/tacogips/ignite/internal/template/provider"
)

// Downloader fetches a template locator into a destination directory.
type Downloader interface {
	Download(ctx context.Context, locator, dest string) (*provider.Result, error)
}

// Installer installs the dependencies of a downloaded project.
type Installer interface {
	Install(ctx context.Context, dir string, m pm.Manager) error
}

// GitInitializer creates a repository in a downloaded project.
type GitInitializer interface {
	Init(ctx context.Context, dir string) error
}

// State is a step of a scaffold run.
type State int

const (
	StateIdle State = iota
	StatePathChecked
	StateDownloaded
	StateInstallDecision
	StateInstalled
	StateInstallSkipped
	StateGitDecision
	StateGitInitialized
	StateGitSkipped
	StateGitFailed
	StateDone
	StateFatal
)

var stateNames = map[State]string{
	StateIdle:            "Idle",
	StatePathChecked:     "PathChecked",
	StateDownloaded:      "Downloaded",
	StateInstallDecision: "InstallDecision",
	StateInstalled:       "Installed",
	StateInstallSkipped:  "InstallSkipped",
	StateGitDecision:     "GitDecision",
	StateGitInitialized:  "GitInitialized",
	StateGitSkipped:      "GitSkipped",
	StateGitFailed:       "GitFailed",
	StateDone:            "Done",
	StateFatal:           "Fatal",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ScaffoldResult describes a finished or aborted run.
type ScaffoldResult struct {
	// Destination is the checked target directory.
	Destination Destination
	// Dir is the directory the template was extracted into.
	Dir string
	// Source identifies the template that was downloaded.
	Source string
	// Template is the resolved template name.
	Template string
	// PackageManager is the resolved package manager.
	PackageManager pm.Name
	// Installed is true when dependencies were installed.
	Installed bool
	// GitInitialized is true when a repository was created.
	GitInitialized bool
	// GitErr holds a non-fatal git init failure.
	GitErr error
	// States lists every state the run passed through, starting at StateIdle.
	States []State
}

// State returns the last state reached.
func (r *ScaffoldResult) State() State {
	if len(r.States) == 0 {
		return StateIdle
	}
	return r.States[len(r.States)-1]
}

// Scaffolder drives a scaffold run: destination check, download, optional
// install and optional git init. It never exits the process; the caller maps
// the returned error with ExitCode.
type Scaffolder struct {
	// Registry is the base locator template names are joined onto.
	Registry   string
	Resolver   *InputResolver
	Downloader Downloader
	Installer  Installer
	Git        GitInitializer
	Reporter   Reporter
}

func (s *Scaffolder) reporter() Reporter {
	if s.Reporter == nil {
		return nopReporter{}
	}
	return s.Reporter
}

func (s *Scaffolder) resolver() *InputResolver {
	if s.Resolver == nil {
		return &InputResolver{Reporter: s.Reporter}
	}
	return s.Resolver
}

func (s *Scaffolder) enter(result *ScaffoldResult, state State) {
	debug.Debug("[app] %s -> %s", result.State(), state)
	result.States = append(result.States, state)
}

func (s *Scaffolder) fail(result *ScaffoldResult, err error) (*ScaffoldResult, error) {
	debug.Debug("[app] Run failed in %s: %v", result.State(), err)
	result.States = append(result.States, StateFatal)
	return result, err
}

// Run executes the scaffold sequence for settings, prompting for anything
// unset. The result is returned even on failure so the reached states can be
// inspected.
func (s *Scaffolder) Run(ctx context.Context, settings *RunSettings) (*ScaffoldResult, error) {
	debug.DebugSection("[app] Scaffold workflow start")
	start := time.Now()
	defer debug.DebugDuration("[app] Scaffold workflow", start)

	result := &ScaffoldResult{States: []State{StateIdle}}
	resolver := s.resolver()
	rep := s.reporter()

	if settings == nil {
		settings = &RunSettings{}
	}
	if settings.WorkingDirectory == "" {
		settings.WorkingDirectory = "."
	}

	// Destination check precedes every filesystem mutation.
	if err := resolver.ProjectPath(settings); err != nil {
		return s.fail(result, err)
	}
	dest, err := CheckDestination(settings.WorkingDirectory, settings.ProjectPath)
	if err != nil {
		return s.fail(result, err)
	}
	result.Destination = dest
	s.enter(result, StatePathChecked)

	if err := resolver.TemplateName(settings); err != nil {
		return s.fail(result, err)
	}
	if err := resolver.PackageManager(settings); err != nil {
		return s.fail(result, err)
	}
	if err := resolver.Install(settings); err != nil {
		return s.fail(result, err)
	}
	if err := validateSettings(settings); err != nil {
		return s.fail(result, err)
	}
	// gitInit is asked after install; it must be answerable before anything is written.
	if settings.GitInit == nil && !resolver.CanPrompt() {
		return s.fail(result, NewValidationError("git init choice required (pass --gitInit or --gitInit=false)", ErrNonInteractive))
	}
	result.Template = settings.TemplateName
	result.PackageManager = settings.PackageManager

	if s.Downloader == nil {
		return s.fail(result, NewTemplateFetchError("no template downloader configured", nil))
	}
	locator := provider.JoinLocator(s.Registry, settings.TemplateName)
	debug.DebugValue("[app] Template locator", locator)
	rep.Progress(fmt.Sprintf("Downloading template %s into %s", settings.TemplateName, dest.Display))

	downloaded, err := s.Downloader.Download(ctx, locator, dest.Path)
	if err != nil {
		return s.fail(result, NewTemplateFetchError(fmt.Sprintf("failed to download template %s", settings.TemplateName), err))
	}
	result.Dir = downloaded.Dir
	if result.Dir == "" {
		result.Dir = dest.Path
	}
	result.Source = downloaded.Source
	if result.Source == "" {
		result.Source = locator
	}
	s.enter(result, StateDownloaded)

	s.enter(result, StateInstallDecision)
	if !*settings.Install {
		rep.Info("Skipping dependency installation")
		s.enter(result, StateInstallSkipped)
	} else {
		manager := pm.ManagerFor(settings.PackageManager)
		if s.Installer == nil {
			return s.fail(result, NewInstallError("no dependency installer configured", nil))
		}
		rep.Progress(fmt.Sprintf("Installing dependencies with %s", manager.Name))
		if err := s.Installer.Install(ctx, result.Dir, manager); err != nil {
			return s.fail(result, NewInstallError(fmt.Sprintf("failed to install dependencies with %s", manager.Name), err))
		}
		rep.Success("Dependencies installed")
		result.Installed = true
		s.enter(result, StateInstalled)
	}

	s.enter(result, StateGitDecision)
	if err := resolver.GitInit(settings); err != nil {
		return s.fail(result, err)
	}
	switch {
	case !*settings.GitInit:
		s.enter(result, StateGitSkipped)
	case s.Git == nil:
		result.GitErr = NewGitInitError("no git initializer configured", nil)
		rep.Warning(fmt.Sprintf("Git initialization failed: %v", result.GitErr))
		s.enter(result, StateGitFailed)
	default:
		if err := s.Git.Init(ctx, result.Dir); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return s.fail(result, NewGitInitError("git initialization interrupted", ctxErr))
			}
			result.GitErr = NewGitInitError("failed to initialize git repository", err)
			rep.Warning(fmt.Sprintf("Git initialization failed: %v", err))
			s.enter(result, StateGitFailed)
		} else {
			rep.Success("Initialized git repository")
			result.GitInitialized = true
			s.enter(result, StateGitInitialized)
		}
	}

	s.enter(result, StateDone)
	rep.Success(fmt.Sprintf("Project created from %s", result.Source))
	return result, nil
}
