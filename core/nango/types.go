package nango

import (
	"encoding/json"
	"net/http"
	"time"
)

// Webhook discriminant values carried in the "type" field.
const (
	WebhookTypeAuth = "auth"
	WebhookTypeSync = "sync"
)

// AuthOperationCreation marks an auth webhook for a newly created connection
// (as opposed to an override of an existing one).
const AuthOperationCreation = "creation"

// WebhookEnvelope carries the fields common to every webhook payload.
// The full payload is re-parsed into the specific shape after classification.
type WebhookEnvelope struct {
	Type string `json:"type"`
}

// AuthWebhook is sent when a connection is created or overridden.
type AuthWebhook struct {
	Type              string `json:"type"`
	Operation         string `json:"operation"`
	Success           bool   `json:"success"`
	ConnectionID      string `json:"connectionId"`
	ProviderConfigKey string `json:"providerConfigKey"`
	Provider          string `json:"provider"`
	EndUser           struct {
		EndUserID string `json:"endUserId"`
	} `json:"endUser"`
}

// SyncWebhook is sent after a sync run finished on the platform. It does not
// carry the records themselves, only the "modifiedAfter" cursor needed to
// fetch them from the records API.
type SyncWebhook struct {
	Type              string `json:"type"`
	Success           bool   `json:"success"`
	ConnectionID      string `json:"connectionId"`
	ProviderConfigKey string `json:"providerConfigKey"`
	SyncName          string `json:"syncName"`
	Model             string `json:"model"`
	ModifiedAfter     string `json:"modifiedAfter"`
	ResponseResults   struct {
		Added   int `json:"added"`
		Updated int `json:"updated"`
		Deleted int `json:"deleted"`
	} `json:"responseResults"`
}

// RecordMetadata is the platform-stamped metadata attached to every record
// under the "_nango_metadata" key.
type RecordMetadata struct {
	DeletedAt      *time.Time `json:"deleted_at"`
	FirstSeenAt    *time.Time `json:"first_seen_at"`
	LastModifiedAt *time.Time `json:"last_modified_at"`
	LastAction     string     `json:"last_action"`
}

// Deleted reports whether the upstream record was deleted at the source.
func (m RecordMetadata) Deleted() bool {
	return m.DeletedAt != nil
}

type recordEnvelope struct {
	Metadata RecordMetadata `json:"_nango_metadata"`
}

// Metadata extracts the platform metadata from a raw record. A record without
// metadata yields the zero value, which reads as not deleted.
func Metadata(record json.RawMessage) RecordMetadata {
	var env recordEnvelope
	_ = json.Unmarshal(record, &env)
	return env.Metadata
}

// ListRecordsParams selects which records to fetch from the records API.
type ListRecordsParams struct {
	ConnectionID      string
	Model             string
	ProviderConfigKey string
	// ModifiedAfter is the cursor carried by the sync webhook; used verbatim
	// as the lower bound of the fetch.
	ModifiedAfter string
	Limit         int
	// Cursor continues a previous page. Empty starts from ModifiedAfter.
	Cursor string
}

// RecordsPage is one page of raw records plus the cursor for the next one.
// An empty NextCursor means the listing is exhausted.
type RecordsPage struct {
	Records    []json.RawMessage `json:"records"`
	NextCursor string            `json:"next_cursor"`
}

// ProxyRequest describes an authenticated passthrough call to a provider API.
type ProxyRequest struct {
	// Endpoint is the provider path (e.g. "users.list", "drive/v3/files") or,
	// when following link-style pagination, the verbatim next link.
	Endpoint          string
	Method            string
	Params            map[string]string
	ConnectionID      string
	ProviderConfigKey string
	// Retries overrides the client default when > 0. Bounded by MaxRetries.
	Retries int
}

// ProxyResponse is the provider response relayed by the platform.
type ProxyResponse struct {
	Status int
	Data   []byte
	Header http.Header
}

// JSON parses the response body into v.
func (r *ProxyResponse) JSON(v any) error {
	return json.Unmarshal(r.Data, v)
}
