// Package webhook receives and dispatches the platform's webhooks.
//
// Every payload is first authenticated against the shared-secret signature,
// then classified by its type field. Auth events go to the connections
// feature; sync events are routed to the processor registered for the
// model the sync produced. After a valid signature the endpoint always
// acknowledges with 200 so the platform does not redeliver, whatever
// happens downstream.
package webhook
