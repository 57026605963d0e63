package webhook

import (
	"context"
	"encoding/json"

	"synchub/core/nango"
	"synchub/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SignatureVerifier authenticates a raw webhook body.
type SignatureVerifier interface {
	VerifyWebhookSignature(signature string, payload []byte) bool
}

// AuthSink consumes connection lifecycle events.
type AuthSink interface {
	HandleAuthEvent(ctx context.Context, hook nango.AuthWebhook) error
}

// Processor reconciles the records of one sync model.
type Processor interface {
	// Model is the platform model name the processor handles.
	Model() string
	Process(ctx context.Context, hook nango.SyncWebhook) (reconcile.Summary, error)
}

// Dispatcher authenticates webhook payloads and routes them by type.
type Dispatcher struct {
	verifier   SignatureVerifier
	authSink   AuthSink
	processors map[string]Processor
	logger     *zap.Logger
}

// NewDispatcher creates a dispatcher routing sync events to the given
// processors, keyed by their model name.
func NewDispatcher(verifier SignatureVerifier, authSink AuthSink, logger *zap.Logger, processors ...Processor) *Dispatcher {
	byModel := make(map[string]Processor, len(processors))
	for _, p := range processors {
		byModel[p.Model()] = p
	}
	return &Dispatcher{
		verifier:   verifier,
		authSink:   authSink,
		processors: byModel,
		logger:     logger,
	}
}

// ack is the body returned for every authenticated webhook.
var ack = fiber.Map{"ack": true}

// Dispatch authenticates and routes one webhook. It returns the HTTP status
// and response body to send. Payloads failing signature verification are the
// only rejected case; once the signature checks out the response is always
// 200 so the platform never redelivers, and downstream failures only land
// in the logs.
func (d *Dispatcher) Dispatch(ctx context.Context, signature string, payload []byte) (int, fiber.Map) {
	if !d.verifier.VerifyWebhookSignature(signature, payload) {
		d.logger.Warn("Webhook signature mismatch")
		return fiber.StatusBadRequest, fiber.Map{"error": "invalid_signature"}
	}

	var envelope nango.WebhookEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		d.logger.Warn("Undecodable webhook payload", zap.Error(err))
		return fiber.StatusOK, ack
	}

	switch envelope.Type {
	case nango.WebhookTypeAuth:
		d.dispatchAuth(ctx, payload)
	case nango.WebhookTypeSync:
		d.dispatchSync(ctx, payload)
	default:
		d.logger.Info("Ignoring webhook of unknown type", zap.String("type", envelope.Type))
	}

	return fiber.StatusOK, ack
}

func (d *Dispatcher) dispatchAuth(ctx context.Context, payload []byte) {
	var hook nango.AuthWebhook
	if err := json.Unmarshal(payload, &hook); err != nil {
		d.logger.Warn("Undecodable auth webhook", zap.Error(err))
		return
	}

	if err := d.authSink.HandleAuthEvent(ctx, hook); err != nil {
		d.logger.Error("Failed to handle auth webhook", zap.Error(err))
	}
}

func (d *Dispatcher) dispatchSync(ctx context.Context, payload []byte) {
	var hook nango.SyncWebhook
	if err := json.Unmarshal(payload, &hook); err != nil {
		d.logger.Warn("Undecodable sync webhook", zap.Error(err))
		return
	}

	if !hook.Success {
		d.logger.Error("Sync run failed upstream",
			zap.String("sync", hook.SyncName),
			zap.String("model", hook.Model))
		return
	}

	processor, ok := d.processors[hook.Model]
	if !ok {
		d.logger.Warn("No processor for sync model", zap.String("model", hook.Model))
		return
	}

	d.logger.Info("Webhook: sync results",
		zap.String("sync", hook.SyncName),
		zap.String("model", hook.Model),
		zap.Int("added", hook.ResponseResults.Added),
		zap.Int("updated", hook.ResponseResults.Updated),
		zap.Int("deleted", hook.ResponseResults.Deleted))

	summary, err := processor.Process(ctx, hook)
	if err != nil {
		d.logger.Error("Failed to process sync webhook",
			zap.String("model", hook.Model), zap.Error(err))
		return
	}

	d.logger.Info("Reconciled sync results",
		zap.String("model", hook.Model),
		zap.Int("applied", summary.Applied),
		zap.Int("deleted", summary.Deleted),
		zap.Int("failed", summary.Failed))
}
