package webhook_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"synchub/feature/webhook"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// recordingVerifier captures the exact payload bytes the handler verifies.
type recordingVerifier struct {
	valid     bool
	signature string
	payload   []byte
}

func (v *recordingVerifier) VerifyWebhookSignature(signature string, payload []byte) bool {
	v.signature = signature
	v.payload = append([]byte(nil), payload...)
	return v.valid
}

func setupApp(verifier *recordingVerifier) *fiber.App {
	dispatcher := webhook.NewDispatcher(verifier, &stubAuthSink{}, zap.NewNop())
	app := fiber.New()
	webhook.NewHandler(dispatcher, zap.NewNop()).RegisterRoutes(app)
	return app
}

func TestHandleWebhook_VerifiesRawBody(t *testing.T) {
	verifier := &recordingVerifier{valid: true}
	app := setupApp(verifier)

	// Whitespace and key order must reach the verifier untouched; the
	// signature covers the exact bytes on the wire.
	body := []byte(`{ "type":"sync" , "success":true }`)
	req := httptest.NewRequest("POST", "/webhooks-from-nango", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.SignatureHeader, "abc123")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "abc123", verifier.signature)
	assert.Equal(t, body, verifier.payload)

	var out map[string]bool
	data, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out["ack"])
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	app := setupApp(&recordingVerifier{valid: false})

	req := httptest.NewRequest("POST", "/webhooks-from-nango", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
