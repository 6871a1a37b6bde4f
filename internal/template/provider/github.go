package provider

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tacogips/ignite/internal/debug"
)

// DefaultArchiveURL is the host serving repository tarballs.
const DefaultArchiveURL = "https://github.com"

// GitHubProvider implements Provider for GitHub repositories.
type GitHubProvider struct {
	// HTTPClient is the HTTP client for archive requests.
	HTTPClient *http.Client
	// Token is the optional GitHub personal access token for private repos.
	Token string
	// ArchiveURL is the base URL archives are downloaded from.
	ArchiveURL string
}

// NewGitHubProvider creates a new GitHub provider. A zero timeout means the
// request waits until the transfer completes.
func NewGitHubProvider(timeout time.Duration) *GitHubProvider {
	return &GitHubProvider{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		ArchiveURL: DefaultArchiveURL,
	}
}

// NewGitHubProviderWithToken creates a new GitHub provider with authentication.
func NewGitHubProviderWithToken(token string, timeout time.Duration) *GitHubProvider {
	p := NewGitHubProvider(timeout)
	p.Token = token
	return p
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return ProviderGitHub
}

// Download fetches the repository tarball and extracts src.Path into dest.
func (p *GitHubProvider) Download(ctx context.Context, src Source, dest string) (*Result, error) {
	if src.Provider != ProviderGitHub {
		return nil, NewInvalidSourceError(p.Name(), src.String(),
			fmt.Errorf("invalid provider: expected '%s', got '%s'", ProviderGitHub, src.Provider))
	}
	if src.Ref == "" {
		src.Ref = DefaultRef
	}

	body, err := p.openArchive(ctx, src)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	created, err := ensureDestination(dest)
	if err != nil {
		return nil, NewExtractError(p.Name(), src.String(), err)
	}

	files, err := extractTarball(body, src.Path, dest)
	if err == nil && files == 0 {
		err = errEmptyTemplate
	}
	if err != nil {
		if created {
			_ = os.RemoveAll(dest)
		}
		switch {
		case errors.Is(err, errEmptyTemplate):
			return nil, NewInvalidTemplateError(p.Name(), src.String(),
				fmt.Sprintf("subdirectory '%s' not found in repository", src.Path), nil)
		case ctx.Err() != nil:
			return nil, NewFetchError(p.Name(), src.String(), ctx.Err())
		case isTimeout(err):
			return nil, NewTimeoutError(p.Name(), src.String(), err)
		default:
			return nil, NewExtractError(p.Name(), src.String(), err)
		}
	}
	debug.Debug("[github] Extracted %d files into %s", files, dest)

	return &Result{
		Dir:    dest,
		Source: src.String(),
		Files:  files,
	}, nil
}

// openArchive requests the repository tarball and returns its body.
func (p *GitHubProvider) openArchive(ctx context.Context, src Source) (io.ReadCloser, error) {
	base := p.ArchiveURL
	if base == "" {
		base = DefaultArchiveURL
	}
	// e.g. https://github.com/owner/repo/archive/main.tar.gz
	archiveURL := fmt.Sprintf("%s/%s/%s/archive/%s.tar.gz",
		strings.TrimSuffix(base, "/"), src.Owner, src.Repo, src.Ref)
	debug.DebugValue("[github] Archive URL", archiveURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, NewFetchError(p.Name(), src.String(), err)
	}
	if p.Token != "" {
		req.Header.Set("Authorization", "token "+p.Token)
	}

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, NewTimeoutError(p.Name(), src.String(), err)
		}
		return nil, NewFetchError(p.Name(), src.String(), err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, NewNotFoundError(p.Name(), src.String())
	case http.StatusUnauthorized, http.StatusForbidden:
		resp.Body.Close()
		return nil, NewAuthError(p.Name(), src.String())
	default:
		resp.Body.Close()
		return nil, NewFetchError(p.Name(), src.String(),
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}
}

var errEmptyTemplate = errors.New("no files matched template path")

// extractTarball writes the entries of a GitHub archive that live under
// subPath into dest. GitHub archives wrap everything in a "repo-ref/" root
// directory which is stripped first.
func extractTarball(r io.Reader, subPath, dest string) (int, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	prefix := ""
	if subPath != "" {
		prefix = strings.Trim(subPath, "/") + "/"
	}

	tr := tar.NewReader(gzr)
	files := 0
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return files, fmt.Errorf("failed to read tar entry: %w", err)
		}

		_, relPath, ok := strings.Cut(header.Name, "/")
		if !ok || relPath == "" {
			continue
		}
		if prefix != "" {
			if !strings.HasPrefix(relPath, prefix) {
				continue
			}
			relPath = strings.TrimPrefix(relPath, prefix)
			if relPath == "" {
				continue
			}
		}

		target := filepath.Join(dest, filepath.FromSlash(relPath))
		if !isSubPath(dest, target) {
			return files, fmt.Errorf("archive entry escapes destination: %s", header.Name)
		}
		if err := checkNoSymlinkInPath(dest, target); err != nil {
			return files, fmt.Errorf("archive entry escapes destination: %s: %w", header.Name, err)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(header.Mode).Perm()|0o700); err != nil {
				return files, fmt.Errorf("failed to create directory %s: %w", relPath, err)
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target, os.FileMode(header.Mode).Perm()); err != nil {
				return files, fmt.Errorf("failed to write file %s: %w", relPath, err)
			}
			files++
		case tar.TypeSymlink:
			linkTarget := filepath.Join(filepath.Dir(target), header.Linkname)
			if filepath.IsAbs(header.Linkname) || !isSubPath(dest, linkTarget) {
				debug.Debug("[github] Skipping symlink escaping template: %s -> %s", relPath, header.Linkname)
				continue
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return files, fmt.Errorf("failed to create parent directory: %w", err)
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return files, fmt.Errorf("failed to create symlink %s: %w", relPath, err)
			}
			files++
		default:
			debug.Debug("[github] Skipping unsupported entry %s (type %c)", header.Name, header.Typeflag)
		}
	}

	return files, nil
}

func writeEntry(r io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// checkNoSymlinkInPath fails if any existing component of target below dest,
// target included, is a symlink. Earlier archive entries may have created
// links that would redirect later writes outside dest.
func checkNoSymlinkInPath(dest, target string) error {
	rel, err := filepath.Rel(filepath.Clean(dest), filepath.Clean(target))
	if err != nil {
		return err
	}
	if rel == "." {
		return nil
	}

	current := filepath.Clean(dest)
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("path component %s is a symlink", current)
		}
	}
	return nil
}

// isSubPath checks if child is dir itself or inside it.
func isSubPath(dir, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
