package nango

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// computeSignature returns the hex digest the platform sends in the
// X-Nango-Signature header: sha256 over the secret key followed by the raw
// request body.
func computeSignature(secretKey string, payload []byte) string {
	h := sha256.New()
	h.Write([]byte(secretKey))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyWebhookSignature checks a webhook payload against its signature
// header using a constant-time comparison.
func (c *httpClient) VerifyWebhookSignature(signature string, payload []byte) bool {
	if signature == "" {
		return false
	}
	expected := computeSignature(c.cfg.SecretKey, payload)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
