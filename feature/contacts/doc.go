// Package contacts replicates Slack workspace members into the local store.
//
// Records flow in two ways:
//
//   - The platform-hosted sync lists Slack users and saves them as the
//     "SlackUser" model; its local equivalent lives in contacts/sync and can
//     run out-of-band through the CLI.
//   - Sync webhooks announce finished runs; the Processor fetches the changed
//     records from the records API and reconciles them into the contacts
//     table.
//
// The feature also exposes the read API used by the frontend and the
// send-message action trigger.
package contacts
