package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/ignite/internal/app"
	"github.com/tacogips/ignite/internal/config"
	"github.com/tacogips/ignite/internal/pm"
)

// captureOutput redirects the output helpers and disables color.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	origOut, origErr, origNoColor := stdout, stderr, color.NoColor
	stdout, stderr, color.NoColor = &out, &errOut, true
	t.Cleanup(func() {
		stdout, stderr, color.NoColor = origOut, origErr, origNoColor
	})
	return &out, &errOut
}

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolVar(&scaffoldInstall, FlagInstall, false, DescInstall)
	cmd.Flags().BoolVar(&scaffoldGitInit, FlagGitInit, false, DescGitInit)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestSettingsFromFlags(t *testing.T) {
	t.Run("unset toggles stay nil", func(t *testing.T) {
		cmd := newFlagCommand(t)
		s := settingsFromFlags(cmd, nil)
		assert.Nil(t, s.Install)
		assert.Nil(t, s.GitInit)
		assert.Empty(t, s.ProjectPath)
	})

	t.Run("explicit false is kept", func(t *testing.T) {
		cmd := newFlagCommand(t, "--install=false", "--gitInit=false")
		s := settingsFromFlags(cmd, []string{"my-app"})
		require.NotNil(t, s.Install)
		require.NotNil(t, s.GitInit)
		assert.False(t, *s.Install)
		assert.False(t, *s.GitInit)
		assert.Equal(t, "my-app", s.ProjectPath)
	})

	t.Run("bare flag means true", func(t *testing.T) {
		cmd := newFlagCommand(t, "--install")
		s := settingsFromFlags(cmd, nil)
		require.NotNil(t, s.Install)
		assert.True(t, *s.Install)
		assert.Nil(t, s.GitInit)
	})
}

func TestGetGitHubToken(t *testing.T) {
	orig := ghAuthToken
	ghAuthToken = func() string { return "from-gh" }
	t.Cleanup(func() { ghAuthToken = orig })

	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	assert.Equal(t, "from-gh", getGitHubToken(config.DefaultConfig()))

	t.Setenv("GH_TOKEN", "gh-env")
	assert.Equal(t, "gh-env", getGitHubToken(config.DefaultConfig()))

	t.Setenv("GITHUB_TOKEN", "github-env")
	assert.Equal(t, "github-env", getGitHubToken(config.DefaultConfig()))

	cfg := config.DefaultConfig()
	cfg.GitHub.Token = "from-config"
	assert.Equal(t, "from-config", getGitHubToken(cfg))
}

func TestEnvEnabled(t *testing.T) {
	for value, want := range map[string]bool{"1": true, "true": true, "ON": true, "": false, "0": false, "no": false} {
		t.Setenv(DebugEnv, value)
		assert.Equal(t, want, envEnabled(DebugEnv), value)
	}
}

func TestOutputHelpers(t *testing.T) {
	out, errOut := captureOutput(t)

	printSuccess("installed")
	printProgress("downloading")
	printWarning("git missing")
	printErrorMsg("failed")

	assert.Equal(t, "✓ installed\n→ downloading\n", out.String())
	assert.Equal(t, "⚠ git missing\n✗ failed\n", errOut.String())
}

func TestOutputHelpers_Quiet(t *testing.T) {
	out, errOut := captureOutput(t)
	globalQuiet = true
	t.Cleanup(func() { globalQuiet = false })

	printInfo("info")
	printSuccess("done")
	printWarning("warn")
	printErrorMsg("still shown")

	assert.Empty(t, out.String())
	assert.Equal(t, "✗ still shown\n", errOut.String())
}

func TestPrintError_Cancelled(t *testing.T) {
	_, errOut := captureOutput(t)

	printError(app.NewCancelledError("template"))
	assert.Equal(t, "✗ Cancelled\n", errOut.String())
}

func TestNextSteps(t *testing.T) {
	result := &app.ScaffoldResult{
		Destination:    app.Destination{Path: "/work/my-app", Display: "./my-app"},
		PackageManager: pm.Pnpm,
	}
	assert.Equal(t, []string{"cd ./my-app"}, nextSteps(result))

	result.Installed = true
	assert.Equal(t, []string{"cd ./my-app", "pnpm run dev"}, nextSteps(result))

	captureOutput(t)
	box := renderSummary(result)
	assert.Contains(t, box, "Next steps:")
	assert.Contains(t, box, "pnpm run dev")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() {
		versionCmd.SetOut(nil)
		versionShort, versionJSON = false, false
	})

	versionJSON = true
	require.NoError(t, runVersion(versionCmd, nil))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestRootCommand_NonInteractiveScaffold(t *testing.T) {
	out, _ := captureOutput(t)

	registry := t.TempDir()
	templateDir := filepath.Join(registry, "nuxt3")
	require.NoError(t, os.MkdirAll(templateDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "package.json"), []byte(`{"name":"nuxt-app"}`), 0o644))

	cfg := config.DefaultConfig()
	cfg.Registry = registry
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.Save(configPath, cfg))

	origPrompter := newPrompter
	newPrompter = func() app.Prompter { return nil }
	t.Cleanup(func() { newPrompter = origPrompter })

	workDir := t.TempDir()
	rootCmd.SetArgs([]string{
		"my-app",
		"--cwd", workDir,
		"--config", configPath,
		"-t", "nuxt3",
		"--packageManager", "pnpm",
		"--install=false",
		"--gitInit=false",
	})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		globalConfig, scaffoldCwd, scaffoldTemplate, scaffoldPackageManager = "", ".", "", ""
	})

	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(filepath.Join(workDir, "my-app", "package.json"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Skipping dependency installation")
	assert.Contains(t, out.String(), "cd ./my-app")
	assert.NotContains(t, out.String(), "pnpm run dev")
}
