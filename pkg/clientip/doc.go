// Package clientip resolves the address of the client behind an HTTP request.
//
// Forwarding headers are only meaningful behind a proxy, so Resolver checks
// the headers it was configured with, in order, before falling back to the
// connection's remote address. Middleware stores the result in the request
// context for handlers and logs.
package clientip
