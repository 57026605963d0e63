// Package documents replicates Google Drive documents into the local store.
//
// The platform-hosted sync walks the folders the user picked, recursively
// expanding subfolders up to a bounded depth, and saves the discovered files
// as the "Document" model; its local equivalent lives in documents/sync.
// Sync webhooks are reconciled by the Processor.
//
// The feature additionally archives document content: on request it fetches
// a document through the platform proxy (export for Google-native types,
// media download otherwise) and persists the bytes to the object storage
// bucket.
package documents
