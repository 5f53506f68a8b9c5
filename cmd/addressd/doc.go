// Command addressd serves the Ground deployment address registry.
//
// Addresses come from the built-in books unless one or more --manifest-uri
// sources are given; sources are tried in order and an environment without
// a manifest anywhere falls back to its built-in book. --pin refuses to
// start when a loaded book does not have the expected fingerprint.
//
//	addressd --listen-addr=0.0.0.0:8080 \
//	    --manifest-uri=s3://ground-manifests/prod?region=eu-west-1 \
//	    --manifest-uri=file:///etc/addressd/manifests \
//	    --pin=GroundWeb=<fingerprint> \
//	    --dns-addr=0.0.0.0:5353 --dns-zone=addresses.ground.
package main
