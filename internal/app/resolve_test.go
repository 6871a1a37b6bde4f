package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/ignite/internal/config"
	"github.com/tacogips/ignite/internal/pm"
)

func TestResolve(t *testing.T) {
	nonEmpty := func(s string) bool { return s != "" }
	str := func(s string) *string { return &s }

	tests := []struct {
		name        string
		current     *string
		answer      string
		askErr      error
		wantValue   string
		wantAsked   bool
		wantInvalid bool
		wantErrType *AppErrorType
	}{
		{name: "valid current skips prompt", current: str("app"), wantValue: "app"},
		{name: "unset prompts", answer: "typed", wantValue: "typed", wantAsked: true},
		{name: "invalid current prompts", current: str(""), answer: "typed", wantValue: "typed", wantAsked: true, wantInvalid: true},
		{name: "invalid answer", answer: "", wantAsked: true, wantErrType: ptr(ValidationFailed)},
		{name: "cancelled", askErr: ErrPromptCancelled, wantAsked: true, wantErrType: ptr(PromptCancelled)},
		{name: "wrapped cancel", askErr: errors.Join(errors.New("interrupt"), ErrPromptCancelled), wantAsked: true, wantErrType: ptr(PromptCancelled)},
		{name: "no terminal", askErr: ErrNonInteractive, wantAsked: true, wantErrType: ptr(ValidationFailed)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asked, invalid := false, false
			got, err := resolve("field", tt.current, nonEmpty,
				func() (string, error) {
					asked = true
					return tt.answer, tt.askErr
				},
				func(string) { invalid = true },
			)

			assert.Equal(t, tt.wantAsked, asked)
			assert.Equal(t, tt.wantInvalid, invalid)
			if tt.wantErrType != nil {
				require.Error(t, err)
				assert.True(t, IsType(err, *tt.wantErrType), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, got)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestResolve_ExplicitFalseIsNotPrompted(t *testing.T) {
	got, err := resolve("install", Bool(false), nil, func() (bool, error) {
		t.Fatal("prompt must not be shown")
		return true, nil
	}, nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestInputResolver_PackageManagerHint(t *testing.T) {
	p := &fakePrompter{log: &callLog{}}
	r := &InputResolver{
		Prompter: p,
		Getenv: func(key string) string {
			if key == pm.UserAgentEnv {
				return "pnpm/8.0.0 node/18"
			}
			return ""
		},
	}

	s := &RunSettings{}
	require.NoError(t, r.PackageManager(s))

	assert.Equal(t, pm.Pnpm, s.PackageManager, "default answer is the detected manager")
	assert.Equal(t, "pnpm", p.lastSelectDef)
	require.Len(t, p.lastOptions, 5)
	for _, opt := range p.lastOptions {
		if opt.Value == "pnpm" {
			assert.Equal(t, "current", opt.Hint)
		} else {
			assert.Empty(t, opt.Hint)
		}
	}
}

func TestInputResolver_PackageManagerHintNeverOverridesFlag(t *testing.T) {
	p := &fakePrompter{log: &callLog{}}
	r := &InputResolver{
		Prompter: p,
		Getenv:   func(string) string { return "pnpm/8.0.0 node/18" },
	}

	s := &RunSettings{PackageManager: "YARN"}
	require.NoError(t, r.PackageManager(s))
	assert.Equal(t, pm.Yarn, s.PackageManager)
	assert.Zero(t, p.prompts)
}

func TestInputResolver_PackageManagerWithoutHint(t *testing.T) {
	p := &fakePrompter{log: &callLog{}}
	r := &InputResolver{Prompter: p}

	s := &RunSettings{}
	require.NoError(t, r.PackageManager(s))
	assert.Equal(t, pm.Npm, s.PackageManager)
}

func TestInputResolver_TemplateOptionsFromCatalogue(t *testing.T) {
	p := &fakePrompter{log: &callLog{}, selects: []string{"nuxt4"}}
	r := &InputResolver{
		Prompter: p,
		Templates: []config.TemplateOption{
			{Label: "Nuxt 3", Value: "nuxt3"},
			{Label: "Nuxt 4", Value: "nuxt4", Hint: "beta"},
		},
	}

	s := &RunSettings{}
	require.NoError(t, r.TemplateName(s))
	assert.Equal(t, "nuxt4", s.TemplateName)
	assert.Equal(t, "nuxt3", p.lastSelectDef)
	assert.Equal(t, Option{Label: "Nuxt 4", Value: "nuxt4", Hint: "beta"}, p.lastOptions[1])
}

func TestInputResolver_InvalidTemplateFlagWarnsAndPrompts(t *testing.T) {
	rep := &recordingReporter{}
	p := &fakePrompter{log: &callLog{}}
	r := &InputResolver{Prompter: p, Reporter: rep}

	s := &RunSettings{TemplateName: "../../etc"}
	require.NoError(t, r.TemplateName(s))
	assert.Equal(t, "nuxt3", s.TemplateName)
	assert.Equal(t, 1, p.prompts)
	require.Len(t, rep.warnings, 1)
	assert.Contains(t, rep.warnings[0], "../../etc")
}

func TestInputResolver_EmptyTemplateAnswerIsFatal(t *testing.T) {
	p := &fakePrompter{log: &callLog{}, selects: []string{""}}
	r := &InputResolver{Prompter: p}

	err := r.TemplateName(&RunSettings{})
	require.Error(t, err)
	assert.True(t, IsType(err, ValidationFailed))
}

func TestInputResolver_ProjectPathDefault(t *testing.T) {
	p := &fakePrompter{log: &callLog{}}
	r := &InputResolver{Prompter: p}

	s := &RunSettings{}
	require.NoError(t, r.ProjectPath(s))
	assert.Equal(t, config.DefaultProjectPath, s.ProjectPath)

	r.DefaultProjectPath = "custom-app"
	s = &RunSettings{ProjectPath: "   "}
	require.NoError(t, r.ProjectPath(s))
	assert.Equal(t, "custom-app", s.ProjectPath)
}

func TestInputResolver_NilPrompterIsNonInteractive(t *testing.T) {
	r := &InputResolver{}

	err := r.Install(&RunSettings{})
	require.Error(t, err)
	assert.True(t, IsType(err, ValidationFailed))
	assert.ErrorIs(t, err, ErrNonInteractive)
}

func TestValidateSettings(t *testing.T) {
	s := &RunSettings{
		WorkingDirectory: ".",
		ProjectPath:      "app",
		TemplateName:     "nuxt3",
		PackageManager:   pm.Deno,
		Install:          Bool(true),
	}
	require.NoError(t, validateSettings(s))

	s.Install = nil
	s.PackageManager = "cargo"
	err := validateSettings(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PackageManager")
	assert.Contains(t, err.Error(), "Install is required")
}

type offlinePrompter struct {
	fakePrompter
}

func (offlinePrompter) Interactive() bool { return false }

func TestInputResolver_CanPrompt(t *testing.T) {
	assert.False(t, (&InputResolver{}).CanPrompt())
	assert.True(t, (&InputResolver{Prompter: &fakePrompter{log: &callLog{}}}).CanPrompt())
	assert.False(t, (&InputResolver{Prompter: &offlinePrompter{}}).CanPrompt())
}
