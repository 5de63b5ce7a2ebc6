package messaging

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// InboundWebhookRequest represents one incoming message webhook. Twilio
// posts form-encoded bodies; a JSON body with the same field names is also
// accepted for manual testing and non-Twilio callers.
type InboundWebhookRequest struct {
	MessageSid string `json:"MessageSid"`
	From       string `json:"From"`
	To         string `json:"To"`
	Body       string `json:"Body"`
}

// ParseInboundWebhook parses a message webhook request.
func ParseInboundWebhook(r *http.Request) (*InboundWebhookRequest, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var req InboundWebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("messaging: decode json webhook: %w", err)
		}
		req.Body = strings.TrimSpace(req.Body)
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("messaging: parse form: %w", err)
	}
	return &InboundWebhookRequest{
		MessageSid: r.FormValue("MessageSid"),
		From:       r.FormValue("From"),
		To:         r.FormValue("To"),
		Body:       strings.TrimSpace(r.FormValue("Body")),
	}, nil
}
