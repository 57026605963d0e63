package nango

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T) *httpClient {
	c, err := NewClient(Config{SecretKey: "test-secret"}, nil)
	assert.NoError(t, err)
	return c.(*httpClient)
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := newTestClient(t)
	payload := []byte(`{"type":"sync","success":true}`)

	sig := computeSignature("test-secret", payload)
	assert.True(t, c.VerifyWebhookSignature(sig, payload))
}

func TestVerifyWebhookSignature_Tampered(t *testing.T) {
	c := newTestClient(t)
	payload := []byte(`{"type":"sync","success":true}`)
	sig := computeSignature("test-secret", payload)

	assert.False(t, c.VerifyWebhookSignature(sig, []byte(`{"type":"sync","success":false}`)))
	assert.False(t, c.VerifyWebhookSignature("deadbeef", payload))
	assert.False(t, c.VerifyWebhookSignature("", payload))
}

func TestVerifyWebhookSignature_WrongSecret(t *testing.T) {
	c := newTestClient(t)
	payload := []byte(`{}`)
	sig := computeSignature("other-secret", payload)

	assert.False(t, c.VerifyWebhookSignature(sig, payload))
}
