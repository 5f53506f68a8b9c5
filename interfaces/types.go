// Package interfaces defines the core interfaces and types for the Ground address registry.
// It provides the contract between different components without implementation details.
package interfaces

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrUnknownName is returned when a name is not defined for an environment.
	ErrUnknownName = errors.New("unknown name")

	// ErrUnknownEnvironment is returned for environments outside the closed set.
	ErrUnknownEnvironment = errors.New("unknown environment")

	// ErrInvalidAddress is returned when an address does not match the ledger address format.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrDuplicateName is returned when a name is defined twice within one environment.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidName is returned when a name is not a plain identifier.
	ErrInvalidName = errors.New("invalid name")
)

// Environment is an isolated deployment target with its own address space.
type Environment string

const (
	// GroundWeb is the production/demo deployment used by the web frontend.
	GroundWeb Environment = "GroundWeb"

	// GroundTest is the resim test harness deployment.
	GroundTest Environment = "Ground_Test"
)

// Environments lists every known environment in a stable order.
var Environments = []Environment{GroundWeb, GroundTest}

// NewEnvironment parses an environment name. Matching ignores case,
// dashes and underscores, so "ground-test" resolves to Ground_Test.
func NewEnvironment(name string) (Environment, error) {
	needle := normalizeEnvironment(name)
	for _, env := range Environments {
		if normalizeEnvironment(string(env)) == needle {
			return env, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
}

func normalizeEnvironment(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	return strings.ReplaceAll(name, "-", "")
}

// String returns the canonical environment name.
func (env Environment) String() string {
	return string(env)
}

// Validate checks that the environment is one of the known environments.
func (env Environment) Validate() error {
	for _, known := range Environments {
		if env == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownEnvironment, string(env))
}

// Name is the symbolic identifier of an address within an environment.
type Name string

// Well-known names published by both environments.
const (
	TestPackage                   Name = "TestPackage"
	TestComponent                 Name = "TestComponent"
	GroundIDComponent             Name = "GroundIDComponent"
	GroundCreditComponent         Name = "GroundCreditComponent"
	StableCoin                    Name = "StableCoin"
	IDSBT                         Name = "IDSBT"
	CreditSBT                     Name = "CreditSBT"
	InstallmentCreditRequestBadge Name = "InstallmentCreditRequestBadge"
	InstallmentCreditBadge        Name = "InstallmentCreditBadge"
	GroundLendingComponent        Name = "GroundLendingComponent"
	LendingAccount                Name = "LendingAccount"
)

// Names are single DNS labels, so dots and spaces are not allowed.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// String returns the name as a string.
func (n Name) String() string {
	return string(n)
}

// Validate checks that n is an identifier: a letter or underscore followed by
// letters, digits and underscores.
func (n Name) Validate() error {
	if !namePattern.MatchString(string(n)) {
		return fmt.Errorf("%w: %q", ErrInvalidName, string(n))
	}
	return nil
}

// Category is the kind of ledger entity an address refers to.
type Category int

const (
	UnknownCategory Category = iota
	PackageCategory
	ComponentCategory
	ResourceCategory
)

// String returns category name.
func (c Category) String() string {
	switch c {
	case PackageCategory:
		return "package"
	case ComponentCategory:
		return "component"
	case ResourceCategory:
		return "resource"
	default:
		return "unknown"
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	switch string(text) {
	case "package":
		*c = PackageCategory
	case "component":
		*c = ComponentCategory
	case "resource":
		*c = ResourceCategory
	default:
		*c = UnknownCategory
	}
	return nil
}

const (
	// AddressLength is the length in characters of a ledger address:
	// a 2-character type prefix followed by 52 hex characters.
	AddressLength = 54

	packagePrefix   = "01"
	componentPrefix = "02"
	resourcePrefix  = "03"
)

// Address is an opaque ledger address of a package, component or resource.
type Address string

// NewAddress validates the address format and returns the address.
func NewAddress(addr string) (Address, error) {
	if len(addr) != AddressLength {
		return "", fmt.Errorf("%w: length %d, want %d", ErrInvalidAddress, len(addr), AddressLength)
	}
	if strings.ToLower(addr) != addr {
		return "", fmt.Errorf("%w: must be lowercase hex", ErrInvalidAddress)
	}
	if _, err := hex.DecodeString(addr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return Address(addr), nil
}

// String returns the address as a string.
func (addr Address) String() string {
	return string(addr)
}

// Validate checks the address format.
func (addr Address) Validate() error {
	_, err := NewAddress(string(addr))
	return err
}

// Prefix returns the 2-character type prefix.
func (addr Address) Prefix() string {
	if len(addr) < 2 {
		return ""
	}
	return string(addr[:2])
}

// Category derives the entity kind from the type prefix.
func (addr Address) Category() Category {
	switch addr.Prefix() {
	case packagePrefix:
		return PackageCategory
	case componentPrefix:
		return ComponentCategory
	case resourcePrefix:
		return ResourceCategory
	default:
		return UnknownCategory
	}
}

// Record is a single named address within an environment.
type Record struct {
	Name    Name
	Address Address
	// Note is the operator's remark about where the address came from,
	// e.g. "The 3rd new resource".
	Note string
}

// Category returns the category of the record's address.
func (r Record) Category() Category {
	return r.Address.Category()
}

// Validate checks the record's name and address.
func (r Record) Validate() error {
	if err := r.Name.Validate(); err != nil {
		return err
	}
	if err := r.Address.Validate(); err != nil {
		return fmt.Errorf("%s: %w", r.Name, err)
	}
	return nil
}

// Fingerprint is the Keccak-256 digest of a book's canonical manifest.
type Fingerprint [32]byte

// String returns hex representation.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// NewFingerprintFromHex parses a 64-character hex fingerprint, with or without 0x prefix.
func NewFingerprintFromHex(source string) (Fingerprint, error) {
	clean := strings.TrimPrefix(source, "0x")
	if len(clean) != 64 {
		return Fingerprint{}, errors.New("invalid fingerprint length: hex string must be 64 characters")
	}

	raw, err := hex.DecodeString(clean)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("invalid hex format: %w", err)
	}

	var f Fingerprint
	copy(f[:], raw)
	return f, nil
}
