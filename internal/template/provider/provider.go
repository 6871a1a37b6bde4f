// Package provider resolves template locators and materializes templates on disk.
package provider

import "context"

// Provider downloads a template into a destination directory.
type Provider interface {
	// Download writes the template referenced by src into dest.
	// dest is created if missing; the caller guarantees it does not already exist.
	Download(ctx context.Context, src Source, dest string) (*Result, error)

	// Name returns the provider name (e.g., "github", "local").
	Name() string
}

// Result describes a completed download.
type Result struct {
	// Dir is the absolute directory the template was written to.
	Dir string
	// Source is the canonical locator that was actually used.
	Source string
	// Files is the number of files written.
	Files int
}
