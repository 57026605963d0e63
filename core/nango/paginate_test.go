package nango

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubProxier replays canned responses and records the requests it saw.
type stubProxier struct {
	responses []*ProxyResponse
	errs      []error
	requests  []ProxyRequest
}

func (s *stubProxier) Proxy(_ context.Context, req ProxyRequest) (*ProxyResponse, error) {
	i := len(s.requests)
	s.requests = append(s.requests, req)
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	return s.responses[i], nil
}

func TestPaginate_OpaqueCursorTermination(t *testing.T) {
	proxy := &stubProxier{
		responses: []*ProxyResponse{
			{Status: 200, Data: []byte(`{"ok":true,"members":[{"id":"u1"},{"id":"u2"}],"response_metadata":{"next_cursor":"c1"}}`)},
			{Status: 200, Data: []byte(`{"ok":true,"members":[{"id":"u3"}],"response_metadata":{"next_cursor":""}}`)},
		},
	}

	pager := Paginate(proxy, ProxyRequest{Endpoint: "users.list", Params: map[string]string{"limit": "200"}}, Pagination{
		ResponsePath: "members",
		CursorPath:   "response_metadata.next_cursor",
	})

	page1, err := pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Len(t, page2, 1)

	// Exhausted: no third fetch happens.
	page3, err := pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, page3)
	assert.Len(t, proxy.requests, 2)

	// The second request must carry the cursor from the first response.
	assert.Equal(t, "c1", proxy.requests[1].Params["cursor"])
	assert.Equal(t, "200", proxy.requests[1].Params["limit"])
}

func TestPaginate_LinkStyle(t *testing.T) {
	proxy := &stubProxier{
		responses: []*ProxyResponse{
			{Status: 200, Data: []byte(`{"value":[{"id":"f1"}],"@odata.nextLink":"/v1.0/drives/d1/items/root/children?$skiptoken=abc"}`)},
			{Status: 200, Data: []byte(`{"value":[{"id":"f2"}]}`)},
		},
	}

	pager := Paginate(proxy, ProxyRequest{Endpoint: "/v1.0/drives/d1/items/root/children"}, Pagination{
		ResponsePath: "value",
		LinkPath:     `\@odata\.nextLink`,
		LimitParam:   "$top",
		Limit:        100,
	})

	page1, err := pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Len(t, page1, 1)

	page2, err := pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Len(t, page2, 1)

	page3, err := pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, page3)

	// The second request follows the link verbatim and drops re-added params.
	assert.Equal(t, "/v1.0/drives/d1/items/root/children?$skiptoken=abc", proxy.requests[1].Endpoint)
	assert.Empty(t, proxy.requests[1].Params)
	assert.Equal(t, "100", proxy.requests[0].Params["$top"])
}

func TestPaginate_SinglePage(t *testing.T) {
	proxy := &stubProxier{
		responses: []*ProxyResponse{
			{Status: 200, Data: []byte(`{"files":[{"id":"a"},{"id":"b"}]}`)},
		},
	}

	pager := Paginate(proxy, ProxyRequest{Endpoint: "drive/v3/files"}, Pagination{ResponsePath: "files"})

	page, err := pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, page)
	assert.Len(t, proxy.requests, 1)
}

func TestPaginate_FetchFailurePropagates(t *testing.T) {
	proxy := &stubProxier{
		errs: []error{errors.New("exhausted 3 attempts")},
	}

	pager := Paginate(proxy, ProxyRequest{Endpoint: "users.list"}, Pagination{CursorPath: "next"})

	page, err := pager.Next(context.Background())
	assert.Error(t, err)
	assert.Nil(t, page)

	// The walk is terminated, not resumed.
	page, err = pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, page)
	assert.Len(t, proxy.requests, 1)
}

func TestMetadata(t *testing.T) {
	rec := []byte(`{"id":"u1","fullName":"Ann","_nango_metadata":{"deleted_at":"2024-02-01T10:00:00Z","last_action":"DELETED"}}`)
	meta := Metadata(rec)
	assert.True(t, meta.Deleted())
	assert.Equal(t, "DELETED", meta.LastAction)

	live := []byte(`{"id":"u2","_nango_metadata":{"deleted_at":null,"last_action":"UPDATED"}}`)
	assert.False(t, Metadata(live).Deleted())

	bare := []byte(`{"id":"u3"}`)
	assert.False(t, Metadata(bare).Deleted())
}
