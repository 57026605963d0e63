// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches
// it to the log entry, so all logs related to a specific request can be
// correlated. Because the webhook dispatcher converts every downstream
// failure into a log line plus a uniform acknowledgement, these logs are the
// only place sync failures are visible; treat them as the primary signal.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
package logger
