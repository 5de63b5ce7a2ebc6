package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"tuberelay/internal/relay"
	"tuberelay/pkg/logging"
)

var twilioSendTracer = otel.Tracer("tuberelay.internal.messaging.twilio_send")

const defaultTwilioAPIBase = "https://api.twilio.com"

// TwilioSender posts messages using Twilio's REST API. WhatsApp destinations
// carry the provider's "whatsapp:" address prefix, which the webhook already
// supplies on the From field.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	apiBase    string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewTwilioSender builds a sender with sane defaults.
func NewTwilioSender(accountSID, authToken, defaultFrom string, logger *logging.Logger) *TwilioSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       defaultFrom,
		apiBase:    defaultTwilioAPIBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

var _ relay.Messenger = (*TwilioSender)(nil)

// SendReply dispatches a single message, retrying transient failures.
func (s *TwilioSender) SendReply(ctx context.Context, msg relay.OutboundMessage) (relay.Receipt, error) {
	if s.accountSID == "" || s.authToken == "" {
		return relay.Receipt{}, errors.New("messaging: twilio credentials missing")
	}
	if msg.To == "" {
		return relay.Receipt{}, errors.New("messaging: to required")
	}
	if msg.From == "" {
		msg.From = s.from
	}
	if msg.From == "" {
		return relay.Receipt{}, errors.New("messaging: from required")
	}
	if strings.TrimSpace(msg.Body) == "" && len(msg.MediaURLs) == 0 {
		return relay.Receipt{}, errors.New("messaging: body or media required")
	}

	ctx, span := twilioSendTracer.Start(ctx, "messaging.twilio.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("tuberelay.to", msg.To),
		attribute.Int("tuberelay.media_count", len(msg.MediaURLs)),
	)

	payload := url.Values{}
	payload.Set("To", msg.To)
	payload.Set("From", msg.From)
	if msg.Body != "" {
		payload.Set("Body", msg.Body)
	}
	for _, mediaURL := range msg.MediaURLs {
		payload.Add("MediaUrl", mediaURL)
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.apiBase, s.accountSID)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
		if err != nil {
			lastErr = err
			break
		}
		req.SetBasicAuth(s.accountSID, s.authToken)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				receipt := relay.Receipt{Accepted: true}
				var parsed struct {
					SID string `json:"sid"`
				}
				if err := json.Unmarshal(body, &parsed); err == nil {
					receipt.ProviderMessageID = parsed.SID
				}
				s.logger.Info("twilio message sent", "to", msg.To, "sid", receipt.ProviderMessageID)
				return receipt, nil
			}
			lastErr = fmt.Errorf("twilio send failed: %s", formatTwilioError(resp.StatusCode, body))
			// Don't retry non-rate-limit 4xx errors.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != 429 {
				break
			}
		}

		if attempt < 3 {
			sleep := time.Duration(200+rand.Intn(300)) * time.Millisecond
			time.Sleep(sleep)
		}
	}

	if lastErr != nil {
		span.RecordError(lastErr)
	}
	return relay.Receipt{}, lastErr
}

type twilioAPIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func formatTwilioError(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fmt.Sprintf("status %d", status)
	}
	var parsed twilioAPIError
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil && parsed.Message != "" {
		if parsed.Code != 0 {
			return fmt.Sprintf("status %d code %d: %s", status, parsed.Code, parsed.Message)
		}
		return fmt.Sprintf("status %d: %s", status, parsed.Message)
	}
	// Fallback: return raw body (truncated by the read limit).
	return fmt.Sprintf("status %d: %s", status, trimmed)
}
