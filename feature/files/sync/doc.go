// Package sync is the local equivalent of the platform-hosted OneDrive sync:
// it resolves the user's item selection through the proxy and feeds the
// mapped files to the files service.
package sync
