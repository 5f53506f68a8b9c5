package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/manifest"
)

// Loader builds a registry from operator manifests held by a manifest source.
// Environments without a manifest fall back to the built-in book.
type Loader struct {
	source   interfaces.ManifestSource
	pinned   map[interfaces.Environment]interfaces.Fingerprint
	observer LoadObserver
	log      *slog.Logger
}

// LoadObserver is told where every loaded book came from.
type LoadObserver interface {
	ObserveBookLoad(environment, origin string)
}

// Book origins reported to a LoadObserver.
const (
	OriginBuiltin  = "builtin"
	OriginManifest = "manifest"
)

// NewLoader creates a loader reading from source. A nil source loads the built-in books only.
func NewLoader(source interfaces.ManifestSource, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		source: source,
		pinned: make(map[interfaces.Environment]interfaces.Fingerprint),
		log:    log,
	}
}

// Pin requires the book loaded for env to have the given fingerprint.
func (l *Loader) Pin(env interfaces.Environment, fingerprint interfaces.Fingerprint) *Loader {
	l.pinned[env] = fingerprint
	return l
}

// WithObserver reports every loaded book to o.
func (l *Loader) WithObserver(o LoadObserver) *Loader {
	l.observer = o
	return l
}

// LoadBook fetches, decodes and validates the manifest of env.
func (l *Loader) LoadBook(ctx context.Context, env interfaces.Environment) (*Book, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	book, origin, err := l.loadBook(ctx, env)
	if err != nil {
		return nil, err
	}

	if expected, ok := l.pinned[env]; ok && expected != book.Fingerprint() {
		l.log.Error("Manifest fingerprint mismatch",
			slog.String("environment", env.String()),
			slog.String("expected", expected.String()),
			slog.String("actual", book.Fingerprint().String()))
		return nil, fmt.Errorf("%w: %s has %s, pinned %s", interfaces.ErrFingerprintMismatch, env, book.Fingerprint(), expected)
	}

	if l.observer != nil {
		l.observer.ObserveBookLoad(env.String(), origin)
	}

	return book, nil
}

func (l *Loader) loadBook(ctx context.Context, env interfaces.Environment) (*Book, string, error) {
	if l.source == nil {
		book, err := DefaultBook(env)
		return book, OriginBuiltin, err
	}

	data, err := l.source.Fetch(ctx, env)
	if errors.Is(err, interfaces.ErrManifestNotFound) {
		l.log.Warn("No manifest found, using built-in addresses",
			slog.String("environment", env.String()),
			slog.String("source", l.source.Name()))
		book, err := DefaultBook(env)
		return book, OriginBuiltin, err
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s manifest from %s: %w", env, l.source.Name(), err)
	}

	records, err := manifest.DecodeEnvironment(manifest.FileName(env), data, env)
	if err != nil {
		return nil, "", err
	}

	book, err := NewBook(env, records)
	if err != nil {
		return nil, "", err
	}

	l.log.Info("Loaded address manifest",
		slog.String("environment", env.String()),
		slog.String("source", l.source.Name()),
		slog.Int("records", book.Len()),
		slog.String("fingerprint", book.Fingerprint().String()))

	return book, OriginManifest, nil
}

// Load builds a registry holding one book per environment. With no
// environments given, every known environment is loaded.
func (l *Loader) Load(ctx context.Context, envs ...interfaces.Environment) (*Registry, error) {
	if len(envs) == 0 {
		envs = interfaces.Environments
	}

	books := make([]*Book, 0, len(envs))
	for _, env := range envs {
		book, err := l.LoadBook(ctx, env)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return NewRegistry(books...)
}
