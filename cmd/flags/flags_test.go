package flags

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/manifest"
	"github.com/groundfi/address-registry/registry"
)

func TestParsePin(t *testing.T) {
	fp := strings.Repeat("ab", 32)

	env, fingerprint, err := ParsePin("ground-test=" + fp)
	require.NoError(t, err)
	assert.Equal(t, interfaces.GroundTest, env)
	assert.Equal(t, fp, fingerprint.String())

	_, _, err = ParsePin("GroundWeb")
	assert.Error(t, err)

	_, _, err = ParsePin("Mainnet=" + fp)
	assert.True(t, errors.Is(err, interfaces.ErrUnknownEnvironment))

	_, _, err = ParsePin("GroundWeb=abcd")
	assert.Error(t, err)
}

func TestNewLoader_FileManifest(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	book, err := registry.DefaultBook(interfaces.GroundWeb)
	require.NoError(t, err)
	records := book.Records()
	records[0].Address = interfaces.Address("01aa" + strings.Repeat("0", 50))
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName(interfaces.GroundWeb)),
		manifest.Encode(interfaces.GroundWeb, records), 0644))

	loader, err := NewLoader([]string{"file://" + dir}, nil, logger)
	require.NoError(t, err)

	reg, err := loader.Load(context.Background())
	require.NoError(t, err)

	addr, err := reg.Get(interfaces.GroundWeb, records[0].Name)
	require.NoError(t, err)
	assert.Equal(t, records[0].Address, addr)

	testBook, err := registry.DefaultBook(interfaces.GroundTest)
	require.NoError(t, err)
	loaded, err := reg.AddressBook(interfaces.GroundTest)
	require.NoError(t, err)
	assert.Equal(t, testBook.Fingerprint(), loaded.Fingerprint())
}

func TestNewLoader_PinMismatch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	loader, err := NewLoader(nil, []string{"GroundWeb=" + strings.Repeat("00", 32)}, logger)
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	assert.True(t, errors.Is(err, interfaces.ErrFingerprintMismatch))
}
