// Package database manages the connection to the local replica store.
//
// The replica holds the records the reconciler mirrors from the external
// providers (contacts, documents, files) plus the connection registry. MySQL
// is used in production; SQLite (including :memory:) serves tests and local
// development without a server.
//
// Schema management is deliberately minimal: features auto-migrate their own
// models at startup. There is no migration tooling.
package database
