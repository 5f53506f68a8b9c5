// Package storage provides read-only access to address manifests through
// pluggable sources.
//
// Operators keep one HCL manifest per deployment environment, named after the
// environment (GroundWeb.hcl, Ground_Test.hcl), in any of:
//
//   - A local directory for development and testing
//   - S3-compatible object storage
//   - A directory published on IPFS
//   - A GitHub repository
//   - A Vault KV v2 mount
//
// Nothing in this package writes manifests; they are edited by hand after a
// redeployment and published with the tooling of the chosen backend.
//
// # Source URI Format
//
// Sources are specified using URI format:
//
//	[scheme]://[auth@]host[:port][/path][?params]
//
// Supported URI schemes:
//
//   - file:///etc/ground/manifests
//   - s3://bucket-name/prefix/?region=us-west-2&endpoint=minio.local:9000
//   - ipfs://127.0.0.1:5001/?root=<cid>&timeout=30s
//   - github://owner/repo/manifests?ref=main
//   - vault://vault.example.com:8200/secret/ground
//
// # Fallback
//
// MultiSource tries sources in order and returns the first manifest found.
// It reports interfaces.ErrManifestNotFound only if every source was
// reachable and none had the manifest; registry.Loader then uses the
// built-in addresses for that environment.
//
// # Usage Example
//
//	factory := storage.NewSourceFactory(logger)
//	source, err := factory.SourceForURI("file:///etc/ground/manifests")
//	if err != nil {
//	    log.Fatalf("Failed to create manifest source: %v", err)
//	}
//
//	reg, err := registry.NewLoader(source, logger).Load(ctx)
package storage
