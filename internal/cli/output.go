package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/tacogips/ignite/internal/app"
	"github.com/tacogips/ignite/internal/pm"
)

// Output destinations, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	successColor  = color.New(color.FgGreen)
	warningColor  = color.New(color.FgYellow)
	errorColor    = color.New(color.FgRed)
	progressColor = color.New(color.FgBlue)
)

// applyColorSetting honors --no-color. fatih/color already checks NO_COLOR
// and whether stdout is a terminal.
func applyColorSetting() {
	if globalNoColor {
		color.NoColor = true
	}
}

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", successColor.Sprint("✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stderr, "%s %s\n", warningColor.Sprint("⚠"), msg)
}

// printErrorMsg prints an error message. Errors are shown even with --quiet.
func printErrorMsg(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", errorColor.Sprint("✗"), msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", progressColor.Sprint("→"), msg)
}

// printError reports a run error. Cancellation gets a short notice instead of
// the error chain.
func printError(err error) {
	if app.ExitCode(err) == app.ExitCancelled {
		printErrorMsg("Cancelled")
		return
	}
	printErrorMsg(err.Error())
}

// consoleReporter routes orchestrator messages to the output helpers.
type consoleReporter struct{}

func (consoleReporter) Info(msg string)     { printInfo(msg) }
func (consoleReporter) Progress(msg string) { printProgress(msg) }
func (consoleReporter) Success(msg string)  { printSuccess(msg) }
func (consoleReporter) Warning(msg string)  { printWarning(msg) }

// nextSteps lists the commands to run after a successful scaffold.
func nextSteps(result *app.ScaffoldResult) []string {
	steps := []string{"cd " + result.Destination.Display}
	if result.Installed {
		steps = append(steps, pm.ManagerFor(result.PackageManager).RunScript("dev"))
	}
	return steps
}

// renderSummary draws the next steps in a rounded box.
func renderSummary(result *app.ScaffoldResult) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !color.NoColor {
		style = style.BorderForeground(lipgloss.Color("6"))
	}

	lines := append([]string{"Next steps:"}, nextSteps(result)...)
	return style.Render(strings.Join(lines, "\n"))
}

// printSummary prints the closing message of a scaffold run.
func printSummary(result *app.ScaffoldResult) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout)
	printSuccess("Done! ✨")
	fmt.Fprintln(stdout, renderSummary(result))
}
