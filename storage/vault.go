package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/groundfi/address-registry/interfaces"
)

// vaultManifestField is the KV field holding the manifest text.
const vaultManifestField = "manifest"

// VaultSource reads manifests from a Vault KV v2 mount.
// The manifest of an environment is the "manifest" field of <mount>/data/<path>/<environment>.
// Authentication uses the client's default token resolution (VAULT_TOKEN).
type VaultSource struct {
	client      *api.Client
	mountPath   string
	dataPath    string
	log         *slog.Logger
	locationURI string
}

// NewVaultSource creates a new Vault manifest source.
func NewVaultSource(address, mountPath, dataPath string, log *slog.Logger) (*VaultSource, error) {
	config := api.DefaultConfig()
	config.Address = address
	config.HttpClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	mountPath = strings.Trim(mountPath, "/")
	dataPath = strings.Trim(dataPath, "/")

	return &VaultSource{
		client:      client,
		mountPath:   mountPath,
		dataPath:    dataPath,
		log:         log,
		locationURI: fmt.Sprintf("vault://%s/%s/%s", strings.TrimPrefix(strings.TrimPrefix(address, "https://"), "http://"), mountPath, dataPath),
	}, nil
}

// Fetch reads the manifest of env from Vault.
func (s *VaultSource) Fetch(ctx context.Context, env interfaces.Environment) ([]byte, error) {
	start := time.Now()
	path := s.secretPath(env)

	secret, err := s.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		s.log.Error("Failed to read from Vault",
			slog.String("path", path),
			"err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	if secret == nil || secret.Data == nil {
		s.log.Debug("Manifest not found in Vault", slog.String("path", path))
		return nil, fmt.Errorf("%w: %s", interfaces.ErrManifestNotFound, path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid data format in Vault response at %s", path)
	}

	content, ok := data[vaultManifestField].(string)
	if !ok {
		return nil, fmt.Errorf("%w: no %q field at %s", interfaces.ErrManifestNotFound, vaultManifestField, path)
	}

	s.log.Debug("Fetched manifest from Vault",
		slog.String("path", path),
		slog.Int("size", len(content)),
		slog.Duration("duration", time.Since(start)))

	return []byte(content), nil
}

// Available checks that Vault is initialized and unsealed.
func (s *VaultSource) Available(ctx context.Context) bool {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := s.client.Sys().HealthWithContext(healthCtx)
	if err != nil {
		s.log.Debug("Vault health check failed", "err", err)
		return false
	}

	if !health.Initialized || health.Sealed {
		s.log.Debug("Vault is not available",
			slog.Bool("initialized", health.Initialized),
			slog.Bool("sealed", health.Sealed))
		return false
	}

	return true
}

// Name returns a unique identifier for this source.
func (s *VaultSource) Name() string {
	return fmt.Sprintf("vault-%s-%s", s.mountPath, s.dataPath)
}

// LocationURI returns the URI that identifies this source.
func (s *VaultSource) LocationURI() string {
	return s.locationURI
}

func (s *VaultSource) secretPath(env interfaces.Environment) string {
	if s.dataPath == "" {
		return fmt.Sprintf("%s/data/%s", s.mountPath, env)
	}
	return fmt.Sprintf("%s/data/%s/%s", s.mountPath, s.dataPath, env)
}
