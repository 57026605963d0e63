package nango

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestProxy_FollowsAbsoluteNextLink(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		if len(paths) == 1 {
			fmt.Fprint(w, `{"value":[{"id":"f1"}],"@odata.nextLink":"https://graph.microsoft.com/v1.0/drives/d1/items/root/children?$skiptoken=abc"}`)
			return
		}
		fmt.Fprint(w, `{"value":[{"id":"f2"}]}`)
	}))
	defer srv.Close()

	client, err := NewClient(Config{Host: srv.URL, SecretKey: "sk"}, zap.NewNop())
	assert.NoError(t, err)

	pager := Paginate(client, ProxyRequest{Endpoint: "/v1.0/drives/d1/items/root/children"}, Pagination{
		ResponsePath: "value",
		LinkPath:     `\@odata\.nextLink`,
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

	// The absolute link loses its scheme and host; its path and query are
	// re-requested through the proxy.
	if assert.Len(t, paths, 2) {
		assert.Equal(t, "/proxy/v1.0/drives/d1/items/root/children", paths[0])
		assert.Equal(t, "/proxy/v1.0/drives/d1/items/root/children?$skiptoken=abc", paths[1])
	}
}

func TestProxy_RelativeEndpointUnchanged(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	client, err := NewClient(Config{Host: srv.URL, SecretKey: "sk"}, zap.NewNop())
	assert.NoError(t, err)

	_, err = client.Proxy(context.Background(), ProxyRequest{Endpoint: "users.list"})
	assert.NoError(t, err)
	assert.Equal(t, "/proxy/users.list", gotPath)
}
