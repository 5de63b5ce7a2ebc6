package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"tuberelay/internal/observability/metrics"
	"tuberelay/internal/relay"
	"tuberelay/pkg/logging"
)

var webhookTracer = otel.Tracer("tuberelay.internal.messaging.webhook")

type relayRunner interface {
	Relay(ctx context.Context, in relay.InboundRequest) (relay.Outcome, error)
}

// Handler handles messaging webhook requests.
type Handler struct {
	pipeline relayRunner
	metrics  *metrics.RelayMetrics
	logger   *logging.Logger
}

// NewHandler creates a new messaging handler.
func NewHandler(pipeline relayRunner, m *metrics.RelayMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if pipeline == nil {
		panic("messaging: pipeline cannot be nil")
	}
	return &Handler{
		pipeline: pipeline,
		metrics:  m,
		logger:   logger,
	}
}

// Webhook handles POST /webhook requests. A malformed user message is a
// normal outcome answered over the messaging channel; only a messenger
// failure surfaces as a transport error, since at that point the user is
// unreachable.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := webhookTracer.Start(r.Context(), "messaging.webhook")
	defer span.End()

	webhook, err := ParseInboundWebhook(r)
	if err != nil {
		h.logger.Error("failed to parse inbound webhook", "error", err)
		h.metrics.ObserveInbound("bad_request")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		span.RecordError(err)
		return
	}

	if webhook.Body == "" || webhook.From == "" {
		err := errors.New("missing Body or From field")
		h.logger.Error("invalid webhook payload", "error", err)
		h.metrics.ObserveInbound("bad_request")
		http.Error(w, "Missing 'Body' or 'From' parameter", http.StatusBadRequest)
		span.RecordError(err)
		return
	}

	span.SetAttributes(
		attribute.String("tuberelay.message_sid", webhook.MessageSid),
		attribute.String("tuberelay.from", webhook.From),
	)
	h.logger.Info("webhook received",
		"from", webhook.From,
		"message_sid", webhook.MessageSid,
		"body_len", len(webhook.Body),
	)

	outcome, err := h.pipeline.Relay(ctx, relay.InboundRequest{
		Body: webhook.Body,
		From: webhook.From,
	})
	if err != nil {
		h.logger.Error("failed to deliver reply", "error", err, "from", webhook.From)
		http.Error(w, "Error sending message", http.StatusInternalServerError)
		span.RecordError(err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"outcome": string(outcome),
	})
}

// HealthCheck returns a simple health check response.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status": "ok",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}
