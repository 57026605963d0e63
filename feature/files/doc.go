// Package files replicates OneDrive file selections into the local store.
//
// The platform-hosted sync resolves the drive items the user picked,
// recursing into folders up to a bounded depth, and saves them as the
// "OneDriveFileSelection" model; its local equivalent lives in files/sync.
// Sync webhooks are reconciled by the Processor. Short-lived download URLs
// from the Graph API are never persisted.
package files
