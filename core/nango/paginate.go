package nango

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
)

// Pagination configures how the Pager walks a paginated provider endpoint.
// Exactly one of CursorPath or LinkPath selects the cursor style; leaving
// both empty yields a single page.
type Pagination struct {
	// ResponsePath is the JSON path of the records array within the response
	// body. Empty means the body itself is the array.
	ResponsePath string
	// CursorPath is the JSON path of the opaque next-cursor value. An empty
	// or absent cursor terminates the walk.
	CursorPath string
	// CursorParam is the request parameter carrying the cursor on the next
	// call. Defaults to "cursor".
	CursorParam string
	// LinkPath is the JSON path of a verbatim next-link (URL or path). An
	// absent link terminates the walk.
	LinkPath string
	// LimitParam and Limit ask the provider for a page size, when supported.
	LimitParam string
	Limit      int
}

// Pager yields pages of raw records lazily. It is not restartable: a fresh
// walk starts from a fresh Paginate call. Pages come back in upstream order.
type Pager struct {
	client   Proxier
	req      ProxyRequest
	pag      Pagination
	cursor   string
	linkMode bool
	done     bool
}

// Paginate prepares a lazy walk over req using the given pagination style.
// No request is made until the first Next call.
func Paginate(client Proxier, req ProxyRequest, pag Pagination) *Pager {
	if pag.CursorParam == "" {
		pag.CursorParam = "cursor"
	}
	return &Pager{client: client, req: req, pag: pag}
}

// Next fetches the next page of records. It returns (nil, nil) once the
// upstream signals exhaustion. A fetch failure (after the proxy's retry
// budget) terminates the walk and is returned to the caller.
func (p *Pager) Next(ctx context.Context) ([]json.RawMessage, error) {
	if p.done {
		return nil, nil
	}

	req := p.req
	req.Params = p.nextParams()

	resp, err := p.client.Proxy(ctx, req)
	if err != nil {
		p.done = true
		return nil, err
	}

	records := extractRecords(resp.Data, p.pag.ResponsePath)
	p.advance(resp.Data)
	return records, nil
}

// nextParams builds the request parameters for the upcoming call. In link
// mode the next link already embeds every parameter, so none are re-added.
func (p *Pager) nextParams() map[string]string {
	if p.linkMode {
		return nil
	}

	params := make(map[string]string, len(p.req.Params)+2)
	for k, v := range p.req.Params {
		params[k] = v
	}
	if p.pag.LimitParam != "" && p.pag.Limit > 0 {
		params[p.pag.LimitParam] = strconv.Itoa(p.pag.Limit)
	}
	if p.pag.CursorPath != "" && p.cursor != "" {
		params[p.pag.CursorParam] = p.cursor
	}
	return params
}

// advance inspects the page body and positions the pager for the next call.
func (p *Pager) advance(body []byte) {
	switch {
	case p.pag.LinkPath != "":
		link := gjson.GetBytes(body, p.pag.LinkPath).String()
		if link == "" {
			p.done = true
			return
		}
		p.req.Endpoint = link
		p.linkMode = true
	case p.pag.CursorPath != "":
		p.cursor = gjson.GetBytes(body, p.pag.CursorPath).String()
		if p.cursor == "" {
			p.done = true
		}
	default:
		p.done = true
	}
}

func extractRecords(body []byte, responsePath string) []json.RawMessage {
	var result gjson.Result
	if responsePath == "" {
		result = gjson.ParseBytes(body)
	} else {
		result = gjson.GetBytes(body, responsePath)
	}

	items := result.Array()
	records := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		records = append(records, json.RawMessage(item.Raw))
	}
	return records
}
