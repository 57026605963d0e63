// Package storage provides the object storage client for the document
// archive.
//
// When a user asks for a Google document to be archived, the documents
// feature fetches the content through the platform proxy and persists it
// here, keyed by connection and document id. The interface is intentionally
// small (bucket check, put, get, remove) so tests can use the mock in
// core/storage/mocks.
package storage
