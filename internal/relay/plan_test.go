package relay

import (
	"testing"

	"tuberelay/internal/extract"
)

func TestResolvePlanFailureAlwaysText(t *testing.T) {
	for _, base := range []string{"", "https://cdn.example.com"} {
		plan := ResolvePlan(extract.Failed("boom"), "whatsapp:+15551234567", base)
		if plan.TextBody != MsgExtractionFailed {
			t.Errorf("base=%q: expected failure text, got %q", base, plan.TextBody)
		}
		if plan.MediaURL != "" {
			t.Errorf("base=%q: expected no media URL, got %q", base, plan.MediaURL)
		}
	}
}

func TestResolvePlanSuccessWithBase(t *testing.T) {
	plan := ResolvePlan(extract.Succeeded("/tmp/audio-abc.mp3"), "whatsapp:+15551234567", "https://cdn.example.com")
	if plan.MediaURL != "https://cdn.example.com/audio-abc.mp3" {
		t.Errorf("unexpected media URL %q", plan.MediaURL)
	}
	if plan.TextBody != "" {
		t.Errorf("expected empty text body, got %q", plan.TextBody)
	}
}

func TestResolvePlanSuccessWithoutBase(t *testing.T) {
	plan := ResolvePlan(extract.Succeeded("/tmp/audio-abc.mp3"), "whatsapp:+15551234567", "")
	if plan.TextBody != MsgNoPublicURL {
		t.Errorf("expected degraded-success text, got %q", plan.TextBody)
	}
	if plan.MediaURL != "" {
		t.Errorf("expected no media URL, got %q", plan.MediaURL)
	}
}

// A plan never carries both contents, and never neither.
func TestResolvePlanExactlyOneContent(t *testing.T) {
	cases := []struct {
		result extract.Result
		base   string
	}{
		{extract.Failed("x"), ""},
		{extract.Failed("x"), "https://cdn.example.com"},
		{extract.Succeeded("/tmp/a.mp3"), ""},
		{extract.Succeeded("/tmp/a.mp3"), "https://cdn.example.com"},
	}
	for _, c := range cases {
		plan := ResolvePlan(c.result, "whatsapp:+1555", c.base)
		hasMedia := plan.MediaURL != ""
		hasText := plan.TextBody != ""
		if hasMedia == hasText {
			t.Errorf("result=%+v base=%q: expected exactly one of media/text, got media=%q text=%q",
				c.result, c.base, plan.MediaURL, plan.TextBody)
		}
	}
}
