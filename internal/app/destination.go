package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/tacogips/ignite/internal/debug"
)

// Destination is a resolved scaffold target.
type Destination struct {
	// Path is the absolute target directory.
	Path string
	// Display is Path relative to the working directory when that is shorter.
	Display string
}

// ResolveDestination joins dir onto workingDir and returns the absolute target.
// An empty workingDir means the process working directory.
func ResolveDestination(workingDir, dir string) (Destination, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Destination{}, NewValidationError("project path cannot be empty", nil)
	}

	base, err := resolveWorkingDirectory(workingDir)
	if err != nil {
		return Destination{}, err
	}

	expanded, err := homedir.Expand(dir)
	if err != nil {
		return Destination{}, NewValidationError("failed to expand project path", err)
	}

	abs := expanded
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(base, abs)
	}
	abs = filepath.Clean(abs)

	return Destination{Path: abs, Display: displayPath(base, abs)}, nil
}

func resolveWorkingDirectory(workingDir string) (string, error) {
	if strings.TrimSpace(workingDir) == "" {
		workingDir = "."
	}

	expanded, err := homedir.Expand(workingDir)
	if err != nil {
		return "", NewValidationError("failed to expand working directory", err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", NewValidationError("failed to resolve working directory", err)
	}
	return abs, nil
}

// displayPath renders target relative to base when that is shorter.
func displayPath(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	if rel == "." {
		return rel
	}
	if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = "." + string(filepath.Separator) + rel
	}
	if len(rel) < len(target) {
		return rel
	}
	return target
}

// Exists reports whether anything is present at the destination.
func (d Destination) Exists() (bool, error) {
	_, err := os.Lstat(d.Path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// CheckDestination resolves the target and fails if it already exists.
func CheckDestination(workingDir, dir string) (Destination, error) {
	dest, err := ResolveDestination(workingDir, dir)
	if err != nil {
		return Destination{}, err
	}
	debug.DebugValue("[app] Destination", dest.Path)

	exists, err := dest.Exists()
	if err != nil {
		return Destination{}, NewValidationError(fmt.Sprintf("failed to check destination %s", dest.Display), err)
	}
	if exists {
		return dest, NewDestinationExistsError(dest.Display)
	}
	return dest, nil
}
