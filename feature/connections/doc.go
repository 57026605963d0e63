// Package connections manages the links between local users and external
// provider accounts.
//
// A connection is the tuple (user id, provider key, external connection id).
// At most one active connection exists per (user, provider) pair; a new auth
// webhook for the same pair overwrites the previous mapping. Disconnecting
// revokes the connection on the platform and purges the records cached
// locally for it, so a later reconnect starts from a clean slate.
package connections
