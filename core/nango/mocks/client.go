package mocks

import (
	"context"
	"encoding/json"

	"synchub/core/nango"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of nango.Client
type Client struct {
	mock.Mock
}

func (m *Client) ListRecords(ctx context.Context, params nango.ListRecordsParams) (*nango.RecordsPage, error) {
	args := m.Called(ctx, params)
	if page, ok := args.Get(0).(*nango.RecordsPage); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Proxy(ctx context.Context, req nango.ProxyRequest) (*nango.ProxyResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*nango.ProxyResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) DeleteConnection(ctx context.Context, providerConfigKey, connectionID string) error {
	args := m.Called(ctx, providerConfigKey, connectionID)
	return args.Error(0)
}

func (m *Client) TriggerAction(ctx context.Context, providerConfigKey, connectionID, action string, input any) (json.RawMessage, error) {
	args := m.Called(ctx, providerConfigKey, connectionID, action, input)
	if out, ok := args.Get(0).(json.RawMessage); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) VerifyWebhookSignature(signature string, payload []byte) bool {
	args := m.Called(signature, payload)
	return args.Bool(0)
}
