package flags

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/registry"
	"github.com/groundfi/address-registry/storage"
)

// LoadRegistry builds the registry from --manifest-uri and --pin.
// Without manifest URIs the built-in books are used.
func LoadRegistry(cCtx *cli.Context, logger *slog.Logger, observer registry.LoadObserver) (*registry.Registry, error) {
	loader, err := NewLoader(cCtx.StringSlice(ManifestURIFlag.Name), cCtx.StringSlice(PinFlag.Name), logger)
	if err != nil {
		return nil, err
	}
	if observer != nil {
		loader.WithObserver(observer)
	}
	return loader.Load(context.Background())
}

// NewLoader creates a loader over the given manifest URIs with the given pins.
func NewLoader(uris, pins []string, logger *slog.Logger) (*registry.Loader, error) {
	var source interfaces.ManifestSource
	if len(uris) > 0 {
		locations := make([]interfaces.SourceLocation, 0, len(uris))
		for _, uri := range uris {
			location, err := interfaces.NewSourceLocation(uri)
			if err != nil {
				return nil, err
			}
			locations = append(locations, location)
		}

		var err error
		source, err = storage.NewSourceFactory(logger).CreateMultiSource(locations)
		if err != nil {
			return nil, err
		}
	}

	loader := registry.NewLoader(source, logger)
	for _, pin := range pins {
		env, fingerprint, err := ParsePin(pin)
		if err != nil {
			return nil, err
		}
		loader.Pin(env, fingerprint)
	}
	return loader, nil
}

// ParsePin parses an <environment>=<hex fingerprint> pin.
func ParsePin(pin string) (interfaces.Environment, interfaces.Fingerprint, error) {
	rawEnv, rawFingerprint, ok := strings.Cut(pin, "=")
	if !ok {
		return "", interfaces.Fingerprint{}, fmt.Errorf("invalid pin %q: expected <environment>=<fingerprint>", pin)
	}

	env, err := interfaces.NewEnvironment(rawEnv)
	if err != nil {
		return "", interfaces.Fingerprint{}, err
	}

	fingerprint, err := interfaces.NewFingerprintFromHex(rawFingerprint)
	if err != nil {
		return "", interfaces.Fingerprint{}, fmt.Errorf("invalid pin %q: %w", pin, err)
	}
	return env, fingerprint, nil
}
