package provider

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tacogips/ignite/internal/debug"
)

// LocalProvider implements Provider for templates stored on the local filesystem.
type LocalProvider struct {
	// BaseDir is the base directory for resolving relative paths.
	// If empty, uses current working directory.
	BaseDir string
}

// NewLocalProvider creates a new local filesystem provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// NewLocalProviderWithBase creates a new local provider with a base directory.
func NewLocalProviderWithBase(baseDir string) *LocalProvider {
	return &LocalProvider{
		BaseDir: baseDir,
	}
}

// Name returns the provider name.
func (p *LocalProvider) Name() string {
	return ProviderLocal
}

// Download copies the template directory into dest.
func (p *LocalProvider) Download(ctx context.Context, src Source, dest string) (*Result, error) {
	debug.Debug("[local] Starting download for: %s", src.Path)

	if src.Provider != ProviderLocal {
		return nil, NewInvalidSourceError(p.Name(), src.String(),
			fmt.Errorf("invalid provider: expected '%s', got '%s'", ProviderLocal, src.Provider))
	}

	root, err := p.resolvePath(src.Path)
	if err != nil {
		return nil, NewInvalidSourceError(p.Name(), src.String(), err)
	}
	debug.Debug("[local] Template root: %s", root)
	resolved := Source{Provider: ProviderLocal, Path: root}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(p.Name(), resolved.String())
		}
		return nil, NewFetchError(p.Name(), resolved.String(), err)
	}
	if !info.IsDir() {
		return nil, NewInvalidTemplateError(p.Name(), resolved.String(), "path must be a directory", nil)
	}

	created, err := ensureDestination(dest)
	if err != nil {
		return nil, NewExtractError(p.Name(), resolved.String(), err)
	}

	files, err := copyTree(ctx, root, dest)
	if err != nil {
		if created {
			_ = os.RemoveAll(dest)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, NewFetchError(p.Name(), resolved.String(), ctxErr)
		}
		return nil, NewExtractError(p.Name(), resolved.String(), err)
	}
	debug.Debug("[local] Copied %d files", files)

	return &Result{
		Dir:    dest,
		Source: resolved.String(),
		Files:  files,
	}, nil
}

// resolvePath resolves a path to an absolute path.
// Relative paths are resolved against BaseDir or the current working directory.
func (p *LocalProvider) resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	baseDir := p.BaseDir
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		baseDir = cwd
	}

	return filepath.Clean(filepath.Join(baseDir, path)), nil
}

// copyTree copies regular files, directories and symlinks from root into dest,
// skipping any .git directory. Returns the number of files written.
func copyTree(ctx context.Context, root, dest string) (int, error) {
	files := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dest, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case info.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				debug.Debug("[local] Skipping unreadable symlink: %s: %v", path, err)
				return nil
			}
			if err := os.Symlink(link, target); err != nil {
				return fmt.Errorf("failed to create symlink %s: %w", rel, err)
			}
			files++
			return nil
		case info.Mode().IsRegular():
			if err := copyFile(path, target, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to copy %s: %w", rel, err)
			}
			files++
			return nil
		default:
			debug.Debug("[local] Skipping non-regular file: %s", path)
			return nil
		}
	})
	return files, err
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ensureDestination creates dest and reports whether it did so.
func ensureDestination(dest string) (bool, error) {
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", dest, err)
	}
	return true, nil
}
