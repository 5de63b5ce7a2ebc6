// Package relay implements the request pipeline: classify the inbound link,
// extract audio through the external tool, publish the file, and reply to
// the sender. One pipeline run per webhook request; no state survives it.
package relay

import (
	"context"

	"tuberelay/internal/extract"
)

// InboundRequest is the validated payload of one webhook call.
type InboundRequest struct {
	Body string
	From string
}

// DeliveryPlan is the resolved decision of what to send back. Exactly one of
// MediaURL / TextBody carries content.
type DeliveryPlan struct {
	To       string
	MediaURL string
	TextBody string
}

// OutboundMessage is handed to the messaging collaborator.
type OutboundMessage struct {
	To        string
	From      string
	Body      string
	MediaURLs []string
}

// Receipt reports what the messaging provider accepted.
type Receipt struct {
	Accepted          bool
	ProviderMessageID string
}

// Messenger delivers a reply through the messaging provider.
type Messenger interface {
	SendReply(ctx context.Context, msg OutboundMessage) (Receipt, error)
}

// Extractor produces an audio file from a source URL, or a failure.
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) extract.Result
}

// Uploader publishes a produced file to the public store under the given
// name. Implementations live in internal/storage.
type Uploader interface {
	Upload(ctx context.Context, localPath, name string) error
}

// Outcome classifies how a pipeline run ended. Every outcome except a
// messenger error still means the webhook itself was served.
type Outcome string

const (
	OutcomeDeliveredMedia   Outcome = "delivered_media"
	OutcomeUnsupportedLink  Outcome = "unsupported_link"
	OutcomeExtractionFailed Outcome = "extraction_failed"
	OutcomeNoPublicURL      Outcome = "no_public_url"
)
