// Command addressctl looks up Ground deployment addresses.
//
// By default it loads the registry in-process, from the built-in books or
// from --manifest-uri sources. With --server-addr it queries a running
// addressd instead, recomputing every book fingerprint it receives.
//
//	addressctl get GroundWeb StableCoin
//	addressctl --server-addr=http://127.0.0.1:8080 list ground-test
//	addressctl get --dns-server=127.0.0.1:5353 GroundWeb StableCoin
//	addressctl export GroundWeb > GroundWeb.hcl
//	addressctl fingerprint
//	addressctl validate manifests/*.hcl
package main
