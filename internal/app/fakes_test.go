package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tacogips/ignite/internal/pm"
	"github.com/tacogips/ignite/internal/template/provider"
)

// callLog records collaborator calls in order.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

type fakeDownloader struct {
	log     *callLog
	err     error
	locator string
	dest    string
	calls   int
}

func (d *fakeDownloader) Download(_ context.Context, locator, dest string) (*provider.Result, error) {
	d.calls++
	d.locator, d.dest = locator, dest
	d.log.add("download %s", locator)
	if d.err != nil {
		return nil, d.err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, err
	}
	return &provider.Result{Dir: dest, Source: locator, Files: 1}, nil
}

type fakeInstaller struct {
	log     *callLog
	err     error
	dir     string
	manager pm.Manager
	calls   int
}

func (i *fakeInstaller) Install(_ context.Context, dir string, m pm.Manager) error {
	i.calls++
	i.dir, i.manager = dir, m
	i.log.add("install %s", m.Name)
	return i.err
}

type fakeGit struct {
	log    *callLog
	err    error
	dir    string
	calls  int
	onInit func()
}

func (g *fakeGit) Init(_ context.Context, dir string) error {
	g.calls++
	g.dir = dir
	g.log.add("git init")
	if g.onInit != nil {
		g.onInit()
	}
	return g.err
}

// fakePrompter answers from queues and counts prompts.
type fakePrompter struct {
	log      *callLog
	inputs   []string
	selects  []string
	confirms []bool
	err      error

	prompts       int
	lastOptions   []Option
	lastSelectDef string
}

func (p *fakePrompter) Input(message, defaultValue string) (string, error) {
	p.prompts++
	p.log.add("prompt input %s", message)
	if p.err != nil {
		return "", p.err
	}
	if len(p.inputs) == 0 {
		return defaultValue, nil
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	return v, nil
}

func (p *fakePrompter) Select(message string, options []Option, defaultValue string) (string, error) {
	p.prompts++
	p.log.add("prompt select %s", message)
	p.lastOptions, p.lastSelectDef = options, defaultValue
	if p.err != nil {
		return "", p.err
	}
	if len(p.selects) == 0 {
		return defaultValue, nil
	}
	v := p.selects[0]
	p.selects = p.selects[1:]
	return v, nil
}

func (p *fakePrompter) Confirm(message string, defaultValue bool) (bool, error) {
	p.prompts++
	p.log.add("prompt confirm %s", message)
	if p.err != nil {
		return false, p.err
	}
	if len(p.confirms) == 0 {
		return defaultValue, nil
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

type recordingReporter struct {
	infos     []string
	successes []string
	warnings  []string
}

func (r *recordingReporter) Info(msg string)    { r.infos = append(r.infos, msg) }
func (r *recordingReporter) Progress(string)    {}
func (r *recordingReporter) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recordingReporter) Warning(msg string) { r.warnings = append(r.warnings, msg) }

// harness wires a Scaffolder to fakes sharing one call log.
type harness struct {
	log        *callLog
	prompter   *fakePrompter
	downloader *fakeDownloader
	installer  *fakeInstaller
	git        *fakeGit
	reporter   *recordingReporter
	scaffolder *Scaffolder
	workDir    string
}

func newHarness(workDir string) *harness {
	log := &callLog{}
	h := &harness{
		log:        log,
		prompter:   &fakePrompter{log: log},
		downloader: &fakeDownloader{log: log},
		installer:  &fakeInstaller{log: log},
		git:        &fakeGit{log: log},
		reporter:   &recordingReporter{},
		workDir:    workDir,
	}
	h.scaffolder = &Scaffolder{
		Registry: "gh:XeicuLy/create-xeiculy-nuxt-app/templates",
		Resolver: &InputResolver{
			Prompter: h.prompter,
			Reporter: h.reporter,
			Getenv:   func(string) string { return "" },
		},
		Downloader: h.downloader,
		Installer:  h.installer,
		Git:        h.git,
		Reporter:   h.reporter,
	}
	return h
}

func (h *harness) path(rel string) string {
	return filepath.Join(h.workDir, rel)
}
