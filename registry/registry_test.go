package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/groundfi/address-registry/interfaces"
	"github.com/groundfi/address-registry/manifest"
)

var addressFormat = regexp.MustCompile(`^0[1-3][0-9a-f]{52}$`)

var allNames = []interfaces.Name{
	interfaces.TestPackage,
	interfaces.TestComponent,
	interfaces.GroundIDComponent,
	interfaces.GroundCreditComponent,
	interfaces.StableCoin,
	interfaces.IDSBT,
	interfaces.CreditSBT,
	interfaces.InstallmentCreditRequestBadge,
	interfaces.InstallmentCreditBadge,
	interfaces.GroundLendingComponent,
	interfaces.LendingAccount,
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultRegistry_AllNamesResolve(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	for _, env := range interfaces.Environments {
		for _, name := range allNames {
			addr, err := reg.Get(env, name)
			require.NoError(t, err, "%s/%s", env, name)
			assert.NotEmpty(t, addr)
			assert.Regexp(t, addressFormat, addr.String(), "%s/%s", env, name)
		}

		book, err := reg.AddressBook(env)
		require.NoError(t, err)
		assert.Equal(t, allNames, book.Names())
	}
}

func TestDefaultRegistry_KnownAddresses(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	addr, err := reg.Get(interfaces.GroundWeb, interfaces.StableCoin)
	require.NoError(t, err)
	assert.Equal(t, interfaces.Address("03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401"), addr)

	addr, err = reg.Get(interfaces.GroundTest, interfaces.GroundLendingComponent)
	require.NoError(t, err)
	assert.Equal(t, interfaces.Address("02bb53885bc2ecb1995f379585d0bfb52745d16a1e0bfe88f9f5f7"), addr)
}

func TestDefaultRegistry_Notes(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	want := map[interfaces.Name]string{
		interfaces.TestPackage:                   "After publish the package",
		interfaces.StableCoin:                    "The 3rd new resource",
		interfaces.IDSBT:                         "The 11th new resource",
		interfaces.CreditSBT:                     "The 15th new resource",
		interfaces.InstallmentCreditRequestBadge: "The 16th new resource",
		interfaces.InstallmentCreditBadge:        "The 17th new resource",
		interfaces.LendingAccount:                "The 3rd new resource",
	}
	for _, env := range interfaces.Environments {
		for name, note := range want {
			record, err := reg.Lookup(env, name)
			require.NoError(t, err)
			assert.Equal(t, note, record.Note, "%s/%s", env, name)
		}
	}
}

func TestDefaultRegistry_UnknownName(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	addr, err := reg.Get(interfaces.GroundWeb, "DoesNotExist")
	assert.True(t, errors.Is(err, interfaces.ErrUnknownName))
	assert.Empty(t, addr)

	_, err = reg.Get(interfaces.GroundTest, "stablecoin")
	assert.True(t, errors.Is(err, interfaces.ErrUnknownName), "names are case sensitive")
}

func TestDefaultRegistry_UnknownEnvironment(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	_, err = reg.Get("Mainnet", interfaces.StableCoin)
	assert.True(t, errors.Is(err, interfaces.ErrUnknownEnvironment))

	_, err = reg.Book("Mainnet")
	assert.True(t, errors.Is(err, interfaces.ErrUnknownEnvironment))
}

func TestDefaultRegistry_EnvironmentsIndependent(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	for _, name := range allNames {
		web, err := reg.Get(interfaces.GroundWeb, name)
		require.NoError(t, err)
		test, err := reg.Get(interfaces.GroundTest, name)
		require.NoError(t, err)
		assert.NotEqual(t, web, test, "%s shares an address across environments", name)
	}

	web, err := reg.AddressBook(interfaces.GroundWeb)
	require.NoError(t, err)
	test, err := reg.AddressBook(interfaces.GroundTest)
	require.NoError(t, err)
	assert.NotEqual(t, web.Fingerprint(), test.Fingerprint())
}

func TestDefaultRegistry_IdempotentConcurrentLookups(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	first, err := reg.Get(interfaces.GroundWeb, interfaces.IDSBT)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				addr, err := reg.Get(interfaces.GroundWeb, interfaces.IDSBT)
				assert.NoError(t, err)
				assert.Equal(t, first, addr)
			}
		}()
	}
	wg.Wait()
}

func TestDefaultRegistry_Categories(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	tests := []struct {
		name     interfaces.Name
		category interfaces.Category
	}{
		{interfaces.TestPackage, interfaces.PackageCategory},
		{interfaces.TestComponent, interfaces.ComponentCategory},
		{interfaces.GroundLendingComponent, interfaces.ComponentCategory},
		{interfaces.StableCoin, interfaces.ResourceCategory},
		{interfaces.InstallmentCreditBadge, interfaces.ResourceCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			record, err := reg.Lookup(interfaces.GroundTest, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.category, record.Category())
		})
	}
}

func TestNewBook_Validation(t *testing.T) {
	valid := interfaces.Record{Name: "A", Address: "03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401"}

	tests := []struct {
		name    string
		env     interfaces.Environment
		records []interfaces.Record
		wantErr error
	}{
		{
			name:    "unknown environment",
			env:     "Mainnet",
			records: []interfaces.Record{valid},
			wantErr: interfaces.ErrUnknownEnvironment,
		},
		{
			name:    "duplicate name",
			env:     interfaces.GroundWeb,
			records: []interfaces.Record{valid, valid},
			wantErr: interfaces.ErrDuplicateName,
		},
		{
			name:    "short address",
			env:     interfaces.GroundWeb,
			records: []interfaces.Record{{Name: "A", Address: "03b3"}},
			wantErr: interfaces.ErrInvalidAddress,
		},
		{
			name:    "uppercase address",
			env:     interfaces.GroundWeb,
			records: []interfaces.Record{{Name: "A", Address: "03B3F6ED782696C5FC9E7A426461E081562E5AB9FD1A817AE2F401"}},
			wantErr: interfaces.ErrInvalidAddress,
		},
		{
			name:    "non hex address",
			env:     interfaces.GroundWeb,
			records: []interfaces.Record{{Name: "A", Address: "03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f40z"}},
			wantErr: interfaces.ErrInvalidAddress,
		},
		{
			name:    "dotted name",
			env:     interfaces.GroundWeb,
			records: []interfaces.Record{{Name: "Stable.Coin", Address: valid.Address}},
			wantErr: interfaces.ErrInvalidName,
		},
		{
			name:    "name with space",
			env:     interfaces.GroundWeb,
			records: []interfaces.Record{{Name: "Stable Coin", Address: valid.Address}},
			wantErr: interfaces.ErrInvalidName,
		},
		{
			name:    "blank name",
			env:     interfaces.GroundWeb,
			records: []interfaces.Record{{Name: " ", Address: valid.Address}},
			wantErr: interfaces.ErrInvalidName,
		},
		{
			name:    "leading digit",
			env:     interfaces.GroundWeb,
			records: []interfaces.Record{{Name: "3Coin", Address: valid.Address}},
			wantErr: interfaces.ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBook(tt.env, tt.records)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNewBook_CopiesRecords(t *testing.T) {
	records := []interfaces.Record{
		{Name: "A", Address: "03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401"},
	}
	book, err := NewBook(interfaces.GroundWeb, records)
	require.NoError(t, err)
	fingerprint := book.Fingerprint()

	records[0].Address = "0339a65a19c6c35d1fafc0a40eb14a4c533f36322bb7bdc716b535"
	addr, err := book.Get("A")
	require.NoError(t, err)
	assert.Equal(t, interfaces.Address("03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401"), addr)

	out := book.Records()
	out[0].Address = "0339a65a19c6c35d1fafc0a40eb14a4c533f36322bb7bdc716b535"
	addr, err = book.Get("A")
	require.NoError(t, err)
	assert.Equal(t, interfaces.Address("03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401"), addr)
	assert.Equal(t, fingerprint, book.Fingerprint())
}

func TestNewRegistry_DuplicateEnvironment(t *testing.T) {
	book, err := DefaultBook(interfaces.GroundWeb)
	require.NoError(t, err)

	_, err = NewRegistry(book, book)
	assert.Error(t, err)

	_, err = NewRegistry(nil)
	assert.Error(t, err)
}

func TestLoader_FromManifest(t *testing.T) {
	ctx := context.Background()
	webBook, err := DefaultBook(interfaces.GroundWeb)
	require.NoError(t, err)

	redeployed := webBook.Records()
	redeployed[4].Address = "0339a65a19c6c35d1fafc0a40eb14a4c533f36322bb7bdc716b535"

	source := new(MockSource)
	source.On("Fetch", mock.Anything, interfaces.GroundWeb).
		Return(manifest.Encode(interfaces.GroundWeb, redeployed), nil)
	source.On("Fetch", mock.Anything, interfaces.GroundTest).
		Return(nil, interfaces.ErrManifestNotFound)

	reg, err := NewLoader(source, testLogger()).Load(ctx)
	require.NoError(t, err)

	addr, err := reg.Get(interfaces.GroundWeb, interfaces.StableCoin)
	require.NoError(t, err)
	assert.Equal(t, interfaces.Address("0339a65a19c6c35d1fafc0a40eb14a4c533f36322bb7bdc716b535"), addr)

	// Ground_Test had no manifest and falls back to the built-in book.
	addr, err = reg.Get(interfaces.GroundTest, interfaces.GroundLendingComponent)
	require.NoError(t, err)
	assert.Equal(t, interfaces.Address("02bb53885bc2ecb1995f379585d0bfb52745d16a1e0bfe88f9f5f7"), addr)

	source.AssertExpectations(t)
}

func TestLoader_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("source failure", func(t *testing.T) {
		source := new(MockSource)
		source.On("Fetch", mock.Anything, interfaces.GroundWeb).Return(nil, interfaces.ErrBackendUnavailable)

		_, err := NewLoader(source, testLogger()).LoadBook(ctx, interfaces.GroundWeb)
		assert.True(t, errors.Is(err, interfaces.ErrBackendUnavailable))
	})

	t.Run("invalid address in manifest", func(t *testing.T) {
		source := new(MockSource)
		source.On("Fetch", mock.Anything, interfaces.GroundWeb).Return(
			manifest.Encode(interfaces.GroundWeb, []interfaces.Record{{Name: "A", Address: "xyz"}}), nil)

		_, err := NewLoader(source, testLogger()).LoadBook(ctx, interfaces.GroundWeb)
		assert.True(t, errors.Is(err, interfaces.ErrInvalidAddress))
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, err := NewLoader(nil, testLogger()).LoadBook(ctx, "Mainnet")
		assert.True(t, errors.Is(err, interfaces.ErrUnknownEnvironment))
	})
}

func TestLoader_Pin(t *testing.T) {
	ctx := context.Background()
	book, err := DefaultBook(interfaces.GroundTest)
	require.NoError(t, err)

	loaded, err := NewLoader(nil, testLogger()).
		Pin(interfaces.GroundTest, book.Fingerprint()).
		LoadBook(ctx, interfaces.GroundTest)
	require.NoError(t, err)
	assert.Equal(t, book.Fingerprint(), loaded.Fingerprint())

	_, err = NewLoader(nil, testLogger()).
		Pin(interfaces.GroundTest, interfaces.Fingerprint{1}).
		LoadBook(ctx, interfaces.GroundTest)
	assert.True(t, errors.Is(err, interfaces.ErrFingerprintMismatch))
}

type recordingObserver struct {
	mu    sync.Mutex
	loads map[string]string
}

func (o *recordingObserver) ObserveBookLoad(environment, origin string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loads[environment] = origin
}

func TestLoader_Observer(t *testing.T) {
	webBook, err := DefaultBook(interfaces.GroundWeb)
	require.NoError(t, err)

	source := new(MockSource)
	source.On("Fetch", mock.Anything, interfaces.GroundWeb).
		Return(manifest.Encode(interfaces.GroundWeb, webBook.Records()), nil)
	source.On("Fetch", mock.Anything, interfaces.GroundTest).
		Return(nil, interfaces.ErrManifestNotFound)

	observer := &recordingObserver{loads: make(map[string]string)}
	_, err = NewLoader(source, testLogger()).WithObserver(observer).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"GroundWeb":   OriginManifest,
		"Ground_Test": OriginBuiltin,
	}, observer.loads)
}
