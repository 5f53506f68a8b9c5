// Package registry provides the immutable address books of the Ground
// deployments and a directory resolving names across environments.
//
// Each deployment environment (GroundWeb, Ground_Test) owns an independent
// Book of named ledger addresses: packages, components and resources. Books
// are validated once when built and never change afterwards, so a Registry
// can be shared by any number of goroutines without coordination.
//
// The package implements the interfaces.AddressBook and
// interfaces.AddressDirectory interfaces.
//
// # Sources of Addresses
//
// DefaultRegistry returns the built-in books compiled into the binary. A
// Loader builds books from operator-edited HCL manifests held by any
// interfaces.ManifestSource, falling back to the built-in book when a source
// has no manifest for an environment.
//
// # Staleness
//
// An address goes stale when its component or resource is redeployed and
// nobody updates the book. Nothing here can detect that against the ledger.
// Every book carries a Keccak-256 fingerprint of its canonical manifest so
// consumers can pin the book they were tested against: Loader.Pin rejects
// any other book with interfaces.ErrFingerprintMismatch.
//
// # Usage Example
//
//	reg, err := registry.DefaultRegistry()
//	if err != nil {
//	    log.Fatalf("Failed to build registry: %v", err)
//	}
//
//	stableCoin, err := reg.Get(interfaces.GroundWeb, interfaces.StableCoin)
//	if errors.Is(err, interfaces.ErrUnknownName) {
//	    // name not defined for this environment
//	}
package registry
