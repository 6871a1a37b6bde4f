package provider

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		name      string
		locator   string
		want      Source
		wantErr   bool
		errSubstr string
	}{
		{
			name:    "gh shorthand with path",
			locator: "gh:XeicuLy/create-xeiculy-nuxt-app/templates/nuxt3",
			want: Source{
				Provider: ProviderGitHub,
				Owner:    "XeicuLy",
				Repo:     "create-xeiculy-nuxt-app",
				Path:     "templates/nuxt3",
				Ref:      "main",
			},
		},
		{
			name:    "github prefix with ref",
			locator: "github:owner/repo/templates/go#v1.2.0",
			want: Source{
				Provider: ProviderGitHub,
				Owner:    "owner",
				Repo:     "repo",
				Path:     "templates/go",
				Ref:      "v1.2.0",
			},
		},
		{
			name:    "repository root",
			locator: "gh:owner/repo",
			want:    Source{Provider: ProviderGitHub, Owner: "owner", Repo: "repo", Ref: "main"},
		},
		{
			name:    "https tree URL",
			locator: "https://github.com/owner/repo/tree/dev/templates/go",
			want: Source{
				Provider: ProviderGitHub,
				Owner:    "owner",
				Repo:     "repo",
				Path:     "templates/go",
				Ref:      "dev",
			},
		},
		{
			name:    "https repository URL",
			locator: "https://github.com/owner/repo.git",
			want:    Source{Provider: ProviderGitHub, Owner: "owner", Repo: "repo", Ref: "main"},
		},
		{
			name:    "github.com prefix",
			locator: "github.com/owner/repo/sub",
			want:    Source{Provider: ProviderGitHub, Owner: "owner", Repo: "repo", Path: "sub", Ref: "main"},
		},
		{
			name:    "relative local path",
			locator: "./templates/nuxt3",
			want:    Source{Provider: ProviderLocal, Path: filepath.Clean("templates/nuxt3")},
		},
		{
			name:    "absolute local path",
			locator: "/srv/templates/nuxt3",
			want:    Source{Provider: ProviderLocal, Path: "/srv/templates/nuxt3"},
		},
		{
			name:    "file URL",
			locator: "file:///srv/templates",
			want:    Source{Provider: ProviderLocal, Path: "/srv/templates"},
		},
		{
			name:      "empty",
			locator:   "",
			wantErr:   true,
			errSubstr: "cannot be empty",
		},
		{
			name:      "missing repo",
			locator:   "gh:owner",
			wantErr:   true,
			errSubstr: "expected owner/repo",
		},
		{
			name:      "traversal in subpath",
			locator:   "gh:owner/repo/../secrets",
			wantErr:   true,
			errSubstr: "not allowed",
		},
		{
			name:      "unknown scheme",
			locator:   "bitbucket:owner/repo",
			wantErr:   true,
			errSubstr: "unsupported template locator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSource(tt.locator, "")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSource_DefaultRef(t *testing.T) {
	got, err := ParseSource("gh:owner/repo", "develop")
	require.NoError(t, err)
	assert.Equal(t, "develop", got.Ref)
}

func TestSourceString(t *testing.T) {
	src := Source{Provider: ProviderGitHub, Owner: "o", Repo: "r", Path: "templates/nuxt3", Ref: "main"}
	assert.Equal(t, "github:o/r/templates/nuxt3#main", src.String())

	local := Source{Provider: ProviderLocal, Path: "/srv/t"}
	assert.Equal(t, "file:/srv/t", local.String())
}

func TestJoinLocator(t *testing.T) {
	tests := []struct {
		registry string
		name     string
		want     string
	}{
		{"gh:XeicuLy/create-xeiculy-nuxt-app/templates", "nuxt3", "gh:XeicuLy/create-xeiculy-nuxt-app/templates/nuxt3"},
		{"gh:o/r/templates/", "nuxt3", "gh:o/r/templates/nuxt3"},
		{"gh:o/r/templates#v1", "nuxt3", "gh:o/r/templates/nuxt3#v1"},
		{"./templates", "nuxt3", "./templates/nuxt3"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinLocator(tt.registry, tt.name))
		})
	}
}

func TestIsLocalPath(t *testing.T) {
	assert.True(t, IsLocalPath("./x"))
	assert.True(t, IsLocalPath("../x"))
	assert.True(t, IsLocalPath("/abs/x"))
	assert.True(t, IsLocalPath("~/templates"))
	assert.True(t, IsLocalPath("file:///x"))
	assert.False(t, IsLocalPath("gh:owner/repo"))
	assert.False(t, IsLocalPath("owner/repo"))
	assert.False(t, IsLocalPath(""))
}
