// Package server holds the HTTP server configuration.
//
// The configuration struct lives here (rather than in core/config) so the
// config package can compose partial configs owned by the packages that
// consume them.
package server
