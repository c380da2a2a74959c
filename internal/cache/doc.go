// Package cache provides a file-based TTL cache for backend GET responses.
//
// Entries are JSON files named by a SHA256 key derived from the request
// (KeyParams). The store lives in <config dir>/cache by default and is shared
// by every registrar invocation, so repeated list and show commands within the
// TTL window are served without a network round trip.
package cache
