// Package interfaces defines core interfaces and types for the Ground address
// registry, separating interface definitions from implementations.
//
// # Registry Interfaces
//
// AddressBook: the immutable set of named addresses of one deployment
// environment, with a fingerprint over its canonical manifest.
//
// AddressDirectory: resolves (environment, name) pairs across all books.
//
// # Storage Interfaces
//
// ManifestSource: read-only access to operator-edited address manifests
// across backend types (file, S3, IPFS, GitHub, Vault).
//
// ManifestSourceFactory: creates sources from URI strings and fallback
// chains over several sources.
//
// # Types
//
// - Environment: GroundWeb or Ground_Test
// - Address: 54-character lowercase hex ledger address with a 2-character type prefix
// - Category: package, component or resource, derived from the prefix
// - Fingerprint: Keccak-256 digest of a manifest
//
// # Error Types
//
//   - ErrUnknownName: name not defined for the environment
//   - ErrUnknownEnvironment: environment outside the closed set
//   - ErrInvalidAddress: address does not match the ledger format
//   - ErrDuplicateName: name defined twice in one environment
//   - ErrManifestNotFound: source holds no manifest for the environment
//   - ErrBackendUnavailable: manifest source is not accessible
//   - ErrInvalidLocationURI: source location URI is malformed
//   - ErrFingerprintMismatch: manifest differs from the pinned fingerprint
package interfaces
