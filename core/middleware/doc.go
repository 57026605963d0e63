// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler.
//
// # Components
//
//   - Auth: Implements API key validation to protect the read API. The
//     webhook endpoint is mounted before this guard; its authenticity check
//     is the payload signature, not the API key.
//   - RayID: Generates a unique Request ID (RayID) for every incoming
//     request, injecting it into the context and response headers for
//     tracing.
package middleware
