package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/manifest"
)

// IPFSSource reads manifests from a directory published on IPFS.
// The manifest of an environment is /ipfs/<root>/<environment>.hcl.
type IPFSSource struct {
	shell       *shell.Shell
	host        string
	port        string
	root        string
	log         *slog.Logger
	locationURI string
}

// NewIPFSSource creates a new IPFS manifest source talking to the node API at host:port.
func NewIPFSSource(host, port, root string, timeout time.Duration, log *slog.Logger) *IPFSSource {
	apiURL := fmt.Sprintf("%s:%s", host, port)

	sh := shell.NewShell(apiURL)
	sh.SetTimeout(timeout)

	return &IPFSSource{
		shell:       sh,
		host:        host,
		port:        port,
		root:        strings.Trim(strings.TrimPrefix(root, "/ipfs/"), "/"),
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s/?root=%s&timeout=%s", apiURL, root, timeout),
	}
}

// Fetch retrieves the manifest of env from IPFS.
func (s *IPFSSource) Fetch(ctx context.Context, env interfaces.Environment) ([]byte, error) {
	start := time.Now()
	path := s.path(env)

	if !s.Available(ctx) {
		s.log.Warn("IPFS node unavailable",
			slog.String("host", s.host),
			slog.String("port", s.port))
		return nil, interfaces.ErrBackendUnavailable
	}

	resp, err := s.shell.Request("cat", path).Send(ctx)
	if err != nil {
		s.log.Error("Failed to fetch manifest from IPFS",
			slog.String("path", path),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to fetch manifest from IPFS: %w", err)
	}
	defer resp.Close()

	if resp.Error != nil {
		if strings.Contains(resp.Error.Message, "no link named") {
			s.log.Debug("Manifest not found in IPFS",
				slog.String("path", path),
				slog.Duration("duration", time.Since(start)))
			return nil, fmt.Errorf("%w: %s", interfaces.ErrManifestNotFound, path)
		}

		s.log.Error("IPFS node rejected manifest fetch",
			slog.String("path", path),
			"err", resp.Error,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to fetch manifest from IPFS: %w", resp.Error)
	}

	data, err := io.ReadAll(resp.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest from IPFS: %w", err)
	}

	s.log.Debug("Fetched manifest from IPFS",
		slog.String("path", path),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Available checks if the IPFS node answers a version request.
func (s *IPFSSource) Available(ctx context.Context) bool {
	var version struct {
		Version string
	}
	if err := s.shell.Request("version").Exec(ctx, &version); err != nil {
		s.log.Debug("IPFS source unavailable", "err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this source.
func (s *IPFSSource) Name() string {
	return fmt.Sprintf("ipfs-%s-%s", s.host, s.port)
}

// LocationURI returns the URI that identifies this source.
func (s *IPFSSource) LocationURI() string {
	return s.locationURI
}

func (s *IPFSSource) path(env interfaces.Environment) string {
	return fmt.Sprintf("/ipfs/%s/%s", s.root, manifest.FileName(env))
}
