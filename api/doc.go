/*
Package api holds the wire types and server configuration shared by the
address registry's HTTP surface.

The lookup endpoints themselves live in the addresshandler subpackage, which
provides both the chi handler and the client functions used by addressctl.

# Endpoints

  - GET /api/v1/environments - environments served, with book fingerprints
  - GET /api/v1/addresses/{environment} - every record of one environment
  - GET /api/v1/addresses/{environment}/{name} - a single record

Environment path segments are matched case-insensitively and accept either a
dash or an underscore ("ground-test" resolves to Ground_Test). Names are
matched exactly.

# Responses

All successful responses are JSON. Failures are plain text produced by
http.Error; unknown environments and unknown names both answer 404.
*/
package api
