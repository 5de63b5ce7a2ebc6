package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRelayMetricsRegisterAndObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRelayMetrics(reg)

	m.ObserveInbound("delivered_media")
	m.ObserveOutbound("ok", "media")
	m.ObserveExtraction("success", 12.5)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 3 {
		t.Fatalf("expected 3 metric families, got %d", len(families))
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *RelayMetrics
	m.ObserveInbound("x")
	m.ObserveOutbound("x", "y")
	m.ObserveExtraction("x", 1)
}
