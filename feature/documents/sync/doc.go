// Package sync is the local equivalent of the platform-hosted Google Drive
// sync: it walks the user's folder selection through the proxy and feeds the
// mapped documents to the documents service.
package sync
