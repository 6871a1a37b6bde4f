// Package pm models the supported JavaScript package managers: the closed set of
// choices, the environment-based detection hint, and dependency installation.
package pm

import (
	"fmt"
	"strings"
)

// Name identifies a supported package manager.
type Name string

// Supported package managers.
const (
	Npm  Name = "npm"
	Yarn Name = "yarn"
	Pnpm Name = "pnpm"
	Bun  Name = "bun"
	Deno Name = "deno"
)

// All returns the supported package managers in prompt order.
func All() []Name {
	return []Name{Npm, Yarn, Pnpm, Bun, Deno}
}

// Valid reports whether n is one of the supported package managers.
func (n Name) Valid() bool {
	for _, candidate := range All() {
		if n == candidate {
			return true
		}
	}
	return false
}

// String returns the identifier.
func (n Name) String() string {
	return string(n)
}

// Parse converts a user-supplied identifier into a Name.
func Parse(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", fmt.Errorf("unsupported package manager %q (expected one of %s)", s, strings.Join(Strings(), ", "))
	}
	return n, nil
}

// Strings returns the supported identifiers as plain strings.
func Strings() []string {
	all := All()
	out := make([]string, len(all))
	for i, n := range all {
		out[i] = string(n)
	}
	return out
}

// Manager is a selected package manager: its display name and the command
// used to invoke it.
type Manager struct {
	Name    Name
	Command string
}

// ManagerFor returns the Manager for a supported name.
// Display name and invocation command are the same identifier.
func ManagerFor(n Name) Manager {
	return Manager{Name: n, Command: string(n)}
}

// InstallArgs returns the arguments that install a project's dependencies.
func (m Manager) InstallArgs() []string {
	return []string{"install"}
}

// RunScript returns the command line that runs a package script, used in the
// next-steps hint printed after a scaffold.
func (m Manager) RunScript(script string) string {
	switch m.Name {
	case Deno:
		return fmt.Sprintf("deno task %s", script)
	default:
		return fmt.Sprintf("%s run %s", m.Command, script)
	}
}
