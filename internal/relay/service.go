package relay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"tuberelay/internal/extract"
	"tuberelay/internal/links"
	"tuberelay/internal/observability/metrics"
	"tuberelay/pkg/logging"
)

var relayTracer = otel.Tracer("tuberelay.internal.relay")

// Options carries the immutable configuration a Service needs per process.
type Options struct {
	PublicBaseURL string
	FromNumber    string
	ScratchDir    string
	AudioQuality  string
}

// Service runs the pipeline for one inbound request at a time. Concurrent
// requests each get their own scratch file; there is no shared mutable state.
type Service struct {
	extractor Extractor
	uploader  Uploader
	messenger Messenger
	opts      Options
	metrics   *metrics.RelayMetrics
	logger    *logging.Logger
}

// NewService wires the pipeline collaborators. uploader may be nil when no
// public store is configured; metrics may be nil.
func NewService(extractor Extractor, uploader Uploader, messenger Messenger, opts Options, m *metrics.RelayMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if extractor == nil {
		panic("relay: extractor cannot be nil")
	}
	if messenger == nil {
		panic("relay: messenger cannot be nil")
	}
	if opts.ScratchDir == "" {
		opts.ScratchDir = os.TempDir()
	}
	return &Service{
		extractor: extractor,
		uploader:  uploader,
		messenger: messenger,
		opts:      opts,
		metrics:   m,
		logger:    logger,
	}
}

// Relay executes the full pipeline for a validated inbound request. The
// returned error is reserved for conditions where the user could not be
// reached at all (messenger failure); everything else is a normal Outcome
// delivered as a reply.
func (s *Service) Relay(ctx context.Context, in InboundRequest) (Outcome, error) {
	ctx, span := relayTracer.Start(ctx, "relay.run")
	defer span.End()
	span.SetAttributes(attribute.String("tuberelay.from", in.From))

	if !links.IsSupportedVideoLink(in.Body) {
		s.logger.Info("unsupported link", "from", in.From)
		if err := s.send(ctx, DeliveryPlan{To: in.From, TextBody: MsgInvalidLink}); err != nil {
			span.RecordError(err)
			return "", err
		}
		s.metrics.ObserveInbound(string(OutcomeUnsupportedLink))
		return OutcomeUnsupportedLink, nil
	}

	// Unique scratch path per request so concurrent extractions never clobber
	// each other. Removed on every exit path.
	outputPath := filepath.Join(s.opts.ScratchDir, "audio-"+uuid.NewString()+".mp3")
	defer func() {
		if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove scratch file", "path", outputPath, "error", err)
		}
	}()

	req := extract.Request{
		SourceURL:   in.Body,
		OutputPath:  outputPath,
		AudioFormat: "mp3",
		Quality:     s.opts.AudioQuality,
	}

	start := time.Now()
	result := s.extractor.Extract(ctx, req)
	status := "success"
	if !result.OK {
		status = "failure"
		// Reason may contain raw tool output; it stays here.
		s.logger.Error("extraction failed", "from", in.From, "reason", result.Reason)
	}
	s.metrics.ObserveExtraction(status, time.Since(start).Seconds())

	if result.OK && s.uploader != nil {
		name := filepath.Base(result.FilePath)
		if err := s.uploader.Upload(ctx, result.FilePath, name); err != nil {
			s.logger.Error("failed to publish audio file", "name", name, "error", err)
			result = extract.Failed(fmt.Sprintf("publish: %v", err))
		}
	}

	plan := ResolvePlan(result, in.From, s.opts.PublicBaseURL)
	if err := s.send(ctx, plan); err != nil {
		span.RecordError(err)
		return "", err
	}

	outcome := s.classify(result, plan)
	s.metrics.ObserveInbound(string(outcome))
	span.SetAttributes(attribute.String("tuberelay.outcome", string(outcome)))
	return outcome, nil
}

func (s *Service) classify(result extract.Result, plan DeliveryPlan) Outcome {
	switch {
	case plan.MediaURL != "":
		return OutcomeDeliveredMedia
	case result.OK:
		return OutcomeNoPublicURL
	default:
		return OutcomeExtractionFailed
	}
}

func (s *Service) send(ctx context.Context, plan DeliveryPlan) error {
	msg := OutboundMessage{
		To:   plan.To,
		From: s.opts.FromNumber,
		Body: plan.TextBody,
	}
	kind := "text"
	if plan.MediaURL != "" {
		msg.MediaURLs = []string{plan.MediaURL}
		kind = "media"
	}

	receipt, err := s.messenger.SendReply(ctx, msg)
	if err != nil {
		s.metrics.ObserveOutbound("error", kind)
		return fmt.Errorf("relay: send reply: %w", err)
	}
	s.metrics.ObserveOutbound("ok", kind)
	s.logger.Info("reply delivered",
		"to", plan.To,
		"kind", kind,
		"provider_message_id", receipt.ProviderMessageID,
	)
	return nil
}
