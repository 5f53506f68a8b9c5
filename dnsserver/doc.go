// Package dnsserver publishes the address registry as DNS TXT records.
//
// Every record of every environment is served at
// <name>.<environment>.<zone>, lowercased, with the address as the single
// TXT string:
//
//	stablecoin.groundweb.addresses.ground. 300 IN TXT "03b3f6ed7826..."
//
// Unknown environments and names answer NXDOMAIN. Resolve is the matching
// client and maps NXDOMAIN back to interfaces.ErrUnknownName.
package dnsserver
