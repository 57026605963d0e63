// Package sync is the local equivalent of the platform-hosted Slack users
// sync: it pages users.list through the proxy and feeds the mapped contacts
// to the contacts service.
package sync
