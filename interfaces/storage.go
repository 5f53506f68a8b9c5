package interfaces

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrManifestNotFound is returned when a source holds no manifest for an environment.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrBackendUnavailable is returned when a manifest source is not accessible.
	// This could be due to network issues, authentication failures, or service outages.
	ErrBackendUnavailable = errors.New("manifest source unavailable")

	// ErrInvalidLocationURI is returned when a source location URI is malformed or unsupported.
	// URIs must follow the format: [scheme]://[auth@]host[:port][/path][?params]
	ErrInvalidLocationURI = errors.New("invalid manifest location URI")

	// ErrFingerprintMismatch is returned when a fetched manifest does not match the pinned fingerprint.
	ErrFingerprintMismatch = errors.New("manifest fingerprint mismatch")
)

// SourceLocation represents URI for a manifest source.
type SourceLocation struct {
	Raw    string     // Original URI
	Scheme string     // Protocol
	Host   string     // Hostname
	Path   string     // Resource path
	Query  url.Values // Query parameters
}

// NewSourceLocation creates a new source location from a URI string with validation.
func NewSourceLocation(uri string) (SourceLocation, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return SourceLocation{}, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch parsed.Scheme {
	case "file", "s3", "ipfs", "github", "vault":
	default:
		return SourceLocation{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, parsed.Scheme)
	}

	return SourceLocation{
		Raw:    uri,
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
		Query:  parsed.Query(),
	}, nil
}

// String returns the original URI string.
func (loc SourceLocation) String() string {
	return loc.Raw
}

// GetParam returns a query parameter value.
func (loc SourceLocation) GetParam(name string) string {
	return loc.Query.Get(name)
}

// ManifestSource provides read-only access to address manifests.
type ManifestSource interface {
	// Fetch retrieves the manifest of an environment.
	Fetch(ctx context.Context, env Environment) ([]byte, error)

	// Available checks if source is accessible.
	Available(ctx context.Context) bool

	// Name returns identifier for logging.
	Name() string

	// LocationURI returns URI identifying this source.
	LocationURI() string
}

// ManifestSourceFactory creates manifest sources.
type ManifestSourceFactory interface {
	// SourceFor creates a source from URI.
	// Supports file://, s3://, ipfs://, github://, vault://
	SourceFor(location SourceLocation) (ManifestSource, error)

	// CreateMultiSource creates a fallback source over several locations.
	CreateMultiSource(locations []SourceLocation) (ManifestSource, error)
}
