package relay

import (
	"path/filepath"

	"tuberelay/internal/extract"
)

// User-facing reply texts. Failure texts are deliberately generic: tool
// diagnostics stay in the logs.
const (
	MsgInvalidLink      = "Please send a valid YouTube link."
	MsgExtractionFailed = "Sorry, we couldn't get the audio from that video. Please try again later."
	MsgNoPublicURL      = "Audio downloaded successfully, but no public URL is set."
)

// ResolvePlan turns an extraction result into a delivery plan. Pure function,
// no I/O. A failed extraction always degrades to text; a success without a
// configured public base URL degrades to an explanatory text as well, since
// the messaging provider can only fetch media over HTTP.
func ResolvePlan(result extract.Result, to, publicBaseURL string) DeliveryPlan {
	plan := DeliveryPlan{To: to}
	if !result.OK {
		plan.TextBody = MsgExtractionFailed
		return plan
	}
	if publicBaseURL == "" {
		plan.TextBody = MsgNoPublicURL
		return plan
	}
	plan.MediaURL = publicBaseURL + "/" + filepath.Base(result.FilePath)
	return plan
}
