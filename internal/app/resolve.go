package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tacogips/ignite/internal/config"
	"github.com/tacogips/ignite/internal/debug"
	"github.com/tacogips/ignite/internal/pm"
)

// resolve returns current when it is set and valid, otherwise it asks the
// operator. An invalid current value is passed to onInvalid before asking.
// Cancellation becomes a PromptCancelled error and an unusable answer a
// ValidationFailed error.
func resolve[T any](field string, current *T, valid func(T) bool, ask func() (T, error), onInvalid func(T)) (T, error) {
	var zero T

	if current != nil {
		if valid == nil || valid(*current) {
			debug.Debug("[app] %s provided: %v", field, *current)
			return *current, nil
		}
		if onInvalid != nil {
			onInvalid(*current)
		}
	}

	debug.Debug("[app] Prompting for %s", field)
	value, err := ask()
	if err != nil {
		if errors.Is(err, ErrPromptCancelled) {
			return zero, NewCancelledError(field)
		}
		return zero, NewValidationError(fmt.Sprintf("failed to resolve %s", field), err)
	}

	if valid != nil && !valid(value) {
		return zero, NewValidationError(fmt.Sprintf("invalid %s: %q", field, fmt.Sprint(value)), nil)
	}

	return value, nil
}

// optional returns nil for the zero value so that it is treated as unset.
func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// InputResolver fills the unset fields of RunSettings from prompts.
type InputResolver struct {
	Prompter Prompter
	Reporter Reporter
	// DefaultProjectPath is the default answer of the project path prompt.
	DefaultProjectPath string
	// Templates are the options of the template prompt.
	Templates []config.TemplateOption
	// Getenv reads the package manager hint. Nil disables detection.
	Getenv func(string) string
}

func (r *InputResolver) prompter() Prompter {
	if r.Prompter == nil {
		return nonInteractivePrompter{}
	}
	return r.Prompter
}

// CanPrompt reports whether a prompt could be shown. Prompters that do not
// implement InteractivePrompter are assumed to be interactive.
func (r *InputResolver) CanPrompt() bool {
	if ip, ok := r.prompter().(InteractivePrompter); ok {
		return ip.Interactive()
	}
	return true
}

func (r *InputResolver) reporter() Reporter {
	if r.Reporter == nil {
		return nopReporter{}
	}
	return r.Reporter
}

// ProjectPath resolves the target directory.
func (r *InputResolver) ProjectPath(s *RunSettings) error {
	def := r.DefaultProjectPath
	if def == "" {
		def = config.DefaultProjectPath
	}

	v, err := resolve("project path",
		optional(strings.TrimSpace(s.ProjectPath)),
		func(v string) bool { return strings.TrimSpace(v) != "" },
		func() (string, error) {
			answer, err := r.prompter().Input("Project path", def)
			return strings.TrimSpace(answer), err
		},
		nil,
	)
	if err != nil {
		return err
	}
	s.ProjectPath = v
	return nil
}

// TemplateName resolves the template from the flag or the catalogue select.
func (r *InputResolver) TemplateName(s *RunSettings) error {
	templates := r.Templates
	if len(templates) == 0 {
		templates = config.DefaultTemplates()
	}

	options := make([]Option, len(templates))
	for i, t := range templates {
		options[i] = Option{Label: t.Label, Value: t.Value, Hint: t.Hint}
	}

	v, err := resolve("template",
		optional(strings.TrimSpace(s.TemplateName)),
		config.IsValidTemplateName,
		func() (string, error) {
			return r.prompter().Select("Select a template", options, options[0].Value)
		},
		func(v string) {
			r.reporter().Warning(fmt.Sprintf("Invalid template name %q", v))
		},
	)
	if err != nil {
		return err
	}
	s.TemplateName = v
	return nil
}

// PackageManager resolves the package manager. The environment hint only
// preselects an option and marks it as current.
func (r *InputResolver) PackageManager(s *RunSettings) error {
	current := optional(s.PackageManager)
	if current != nil {
		if n, err := pm.Parse(string(*current)); err == nil {
			current = &n
		}
	}

	hint, detected := pm.Detect(r.Getenv)
	if detected {
		debug.DebugValue("[app] Detected package manager", hint)
	}

	v, err := resolve("package manager",
		current,
		pm.Name.Valid,
		func() (pm.Name, error) {
			options := make([]Option, 0, len(pm.All()))
			for _, n := range pm.All() {
				opt := Option{Label: n.String(), Value: n.String()}
				if detected && n == hint {
					opt.Hint = "current"
				}
				options = append(options, opt)
			}

			def := pm.Npm
			if detected {
				def = hint
			}

			answer, err := r.prompter().Select("Select a package manager", options, def.String())
			return pm.Name(answer), err
		},
		func(v pm.Name) {
			r.reporter().Warning(fmt.Sprintf("Unsupported package manager %q (expected one of: %s)",
				v, strings.Join(pm.Strings(), ", ")))
		},
	)
	if err != nil {
		return err
	}
	s.PackageManager = v
	return nil
}

// Install resolves whether dependencies are installed. An explicit value is
// never prompted.
func (r *InputResolver) Install(s *RunSettings) error {
	v, err := resolve("install", s.Install, nil, func() (bool, error) {
		return r.prompter().Confirm("Install dependencies?", false)
	}, nil)
	if err != nil {
		return err
	}
	s.Install = &v
	return nil
}

// GitInit resolves whether a git repository is initialized.
func (r *InputResolver) GitInit(s *RunSettings) error {
	v, err := resolve("git init", s.GitInit, nil, func() (bool, error) {
		return r.prompter().Confirm("Initialize a git repository?", false)
	}, nil)
	if err != nil {
		return err
	}
	s.GitInit = &v
	return nil
}
