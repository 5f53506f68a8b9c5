package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/groundfi/address-registry/interfaces"
)

// MultiSource implements interfaces.ManifestSource over several sources with fallback.
// Sources are tried in order; the first one holding the manifest wins.
type MultiSource struct {
	sources []interfaces.ManifestSource
	log     *slog.Logger
}

// NewMultiSource creates a new fallback source.
func NewMultiSource(sources []interfaces.ManifestSource, logger *slog.Logger) *MultiSource {
	if logger == nil {
		logger = slog.Default()
	}

	return &MultiSource{
		sources: sources,
		log:     logger,
	}
}

// Fetch returns the manifest from the first available source that has it.
// The error wraps ErrManifestNotFound only when every source was reachable
// and reported the manifest missing.
func (m *MultiSource) Fetch(ctx context.Context, env interfaces.Environment) ([]byte, error) {
	if len(m.sources) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", interfaces.ErrBackendUnavailable)
	}

	start := time.Now()
	var errs []error
	notFound := 0

	for _, source := range m.sources {
		if !source.Available(ctx) {
			m.log.Debug("Source unavailable",
				slog.String("source_name", source.Name()),
				slog.String("environment", env.String()))
			errs = append(errs, fmt.Errorf("%s: %w", source.Name(), interfaces.ErrBackendUnavailable))
			continue
		}

		data, err := source.Fetch(ctx, env)
		if err == nil {
			m.log.Info("Fetched manifest",
				slog.String("source_name", source.Name()),
				slog.String("environment", env.String()),
				slog.Duration("duration", time.Since(start)))
			return data, nil
		}

		if errors.Is(err, interfaces.ErrManifestNotFound) {
			notFound++
		}
		errs = append(errs, fmt.Errorf("%s: %w", source.Name(), err))
		m.log.Debug("Failed to fetch from source",
			slog.String("source_name", source.Name()),
			slog.String("environment", env.String()),
			"err", err)
	}

	if notFound == len(m.sources) {
		return nil, fmt.Errorf("%w: %s in any source", interfaces.ErrManifestNotFound, env)
	}

	m.log.Error("All sources failed to fetch manifest",
		slog.String("environment", env.String()),
		slog.Int("failed_sources", len(errs)),
		slog.Duration("duration", time.Since(start)))

	return nil, fmt.Errorf("all sources failed to fetch %s: %w", env, errors.Join(errs...))
}

// Available checks if any source is available.
func (m *MultiSource) Available(ctx context.Context) bool {
	for _, source := range m.sources {
		if source.Available(ctx) {
			return true
		}
	}
	return false
}

// Name returns the name of this source.
func (m *MultiSource) Name() string {
	return "multi-source"
}

// LocationURI returns a combined URI of all sources.
func (m *MultiSource) LocationURI() string {
	locations := make([]string, 0, len(m.sources))
	for _, source := range m.sources {
		locations = append(locations, source.LocationURI())
	}

	return "multi:[" + strings.Join(locations, ",") + "]"
}
