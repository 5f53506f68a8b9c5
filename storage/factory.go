package storage

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"github.com/groundfi/address-registry/interfaces"
)

// SourceFactory creates manifest sources from URI strings and builds
// fallback chains over several sources.
type SourceFactory struct {
	log *slog.Logger
}

// NewSourceFactory creates a new factory instance.
func NewSourceFactory(logger *slog.Logger) *SourceFactory {
	return &SourceFactory{
		log: logger,
	}
}

// SourceFor creates a manifest source from a location URI.
// The URI format should be [scheme]://[auth@]host[:port][/path][?params]
//
// Supported schemes:
//   - file:// - Local directory of <environment>.hcl files
//   - s3:// - Amazon S3 or compatible object storage
//   - ipfs:// - Directory published on IPFS
//   - github:// - Files committed to a GitHub repository
//   - vault:// - Vault KV v2 secrets
func (sf *SourceFactory) SourceFor(location interfaces.SourceLocation) (interfaces.ManifestSource, error) {
	switch strings.ToLower(location.Scheme) {
	case "file":
		return sf.createFileSource(location)
	case "s3":
		return sf.createS3Source(location)
	case "ipfs":
		return sf.createIPFSSource(location)
	case "github":
		return sf.createGitHubSource(location)
	case "vault":
		return sf.createVaultSource(location)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", interfaces.ErrInvalidLocationURI, location.Scheme)
	}
}

// SourceForURI parses uri and creates the matching source.
func (sf *SourceFactory) SourceForURI(uri string) (interfaces.ManifestSource, error) {
	location, err := interfaces.NewSourceLocation(uri)
	if err != nil {
		return nil, err
	}
	return sf.SourceFor(location)
}

// CreateMultiSource creates a fallback source from a list of locations.
// Locations that cannot be turned into a source are logged and skipped.
// Returns an error if no valid source could be created.
func (sf *SourceFactory) CreateMultiSource(locations []interfaces.SourceLocation) (interfaces.ManifestSource, error) {
	sources := make([]interfaces.ManifestSource, 0, len(locations))

	for _, location := range locations {
		source, err := sf.SourceFor(location)
		if err != nil {
			sf.log.Warn("Failed to create manifest source",
				"err", err,
				slog.String("locationURI", location.String()))
			continue
		}
		sources = append(sources, source)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no valid manifest sources created")
	}

	return NewMultiSource(sources, sf.log), nil
}

// createFileSource creates a local directory source.
// URI format: file:///absolute/path or file://./relative/path
func (sf *SourceFactory) createFileSource(location interfaces.SourceLocation) (interfaces.ManifestSource, error) {
	sf.log.Debug("Creating file source", slog.String("uri", location.String()))

	path := location.Path
	if location.Host != "" {
		path = location.Host + "/" + strings.TrimPrefix(path, "/")
	}

	if path == "" {
		return nil, fmt.Errorf("%w: empty path in file URI %s", interfaces.ErrInvalidLocationURI, location.String())
	}

	return NewFileSource(path, sf.log), nil
}

// createS3Source creates an S3 or S3-compatible source.
// URI format: s3://bucket-name/prefix/?region=us-west-2&endpoint=custom.s3.com
// Credentials, if any, come from the access_key and secret_key parameters.
func (sf *SourceFactory) createS3Source(location interfaces.SourceLocation) (interfaces.ManifestSource, error) {
	sf.log.Debug("Creating S3 source", slog.String("bucket", location.Host))

	if location.Host == "" {
		return nil, fmt.Errorf("%w: missing bucket in S3 URI", interfaces.ErrInvalidLocationURI)
	}

	region := location.GetParam("region")
	if region == "" {
		region = "us-east-1"
	}

	return NewS3Source(
		location.Host,
		strings.TrimPrefix(location.Path, "/"),
		region,
		location.GetParam("endpoint"),
		location.GetParam("access_key"),
		location.GetParam("secret_key"),
		sf.log,
	)
}

// createIPFSSource creates an IPFS source.
// URI format: ipfs://host:port/?root=<cid>&timeout=30s
func (sf *SourceFactory) createIPFSSource(location interfaces.SourceLocation) (interfaces.ManifestSource, error) {
	sf.log.Debug("Creating IPFS source", slog.String("uri", location.String()))

	hostport := strings.SplitN(location.Host, ":", 2)
	host := hostport[0]
	port := "5001"
	if len(hostport) == 2 && hostport[1] != "" {
		port = hostport[1]
	}

	root := location.GetParam("root")
	if root == "" {
		return nil, fmt.Errorf("%w: missing root parameter in IPFS URI", interfaces.ErrInvalidLocationURI)
	}
	if _, err := cid.Decode(strings.TrimPrefix(root, "/ipfs/")); err != nil {
		return nil, fmt.Errorf("%w: invalid root CID %q: %v", interfaces.ErrInvalidLocationURI, root, err)
	}

	timeout := 30 * time.Second
	if raw := location.GetParam("timeout"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timeout %q", interfaces.ErrInvalidLocationURI, raw)
		}
		timeout = parsed
	}

	return NewIPFSSource(host, port, root, timeout, sf.log), nil
}

// createGitHubSource creates a GitHub repository source.
// URI format: github://owner/repo/path/to/dir?ref=main
func (sf *SourceFactory) createGitHubSource(location interfaces.SourceLocation) (interfaces.ManifestSource, error) {
	sf.log.Debug("Creating GitHub source", slog.String("uri", location.String()))

	owner := location.Host
	parts := strings.SplitN(strings.TrimPrefix(location.Path, "/"), "/", 2)
	if owner == "" || parts[0] == "" {
		return nil, fmt.Errorf("%w: expected github://owner/repo[/dir]", interfaces.ErrInvalidLocationURI)
	}

	repo := parts[0]
	dir := ""
	if len(parts) == 2 {
		dir = parts[1]
	}

	return NewGitHubSource(owner, repo, dir, location.GetParam("ref"), sf.log), nil
}

// createVaultSource creates a Vault KV v2 source.
// URI format: vault://vault.example.com:8200/mount/path?tls=false
func (sf *SourceFactory) createVaultSource(location interfaces.SourceLocation) (interfaces.ManifestSource, error) {
	sf.log.Debug("Creating Vault source", slog.String("uri", location.String()))

	parts := strings.SplitN(strings.TrimPrefix(location.Path, "/"), "/", 2)
	if location.Host == "" || parts[0] == "" {
		return nil, fmt.Errorf("%w: expected vault://host:port/mount[/path]", interfaces.ErrInvalidLocationURI)
	}

	mount := parts[0]
	dataPath := ""
	if len(parts) == 2 {
		dataPath = parts[1]
	}

	scheme := "https"
	if location.GetParam("tls") == "false" {
		scheme = "http"
	}

	return NewVaultSource(fmt.Sprintf("%s://%s", scheme, location.Host), mount, dataPath, sf.log)
}
