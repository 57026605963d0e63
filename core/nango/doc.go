// Package nango provides the client for the hosted integration platform.
//
// The platform owns the OAuth lifecycle and runs the provider syncs; this
// package covers the three surfaces our backend talks to:
//
//   - Records API: fetch the normalized records a sync produced, page by
//     page, starting from the "modifiedAfter" cursor carried by a webhook.
//   - Proxy API: authenticated passthrough calls to the provider APIs
//     (Slack Web API, Google Drive v3, Microsoft Graph) with bounded retries.
//   - Connections API: revoke a connection when a user disconnects, and
//     trigger provider actions (e.g. sending a Slack message).
//
// Webhook authenticity is checked with VerifyWebhookSignature, a SHA-256
// digest of the shared secret concatenated with the raw payload.
//
// # Dependency injection
//
// The Client is a constructed handle passed to features explicitly. Nothing
// in this package holds global state, so tests can substitute the mock in
// core/nango/mocks.
//
// # Pagination
//
// Paginate drives repeated Proxy calls using either an opaque cursor or a
// link embedded in the response body, both located by configurable JSON
// paths. See Pagination for the knobs.
package nango
