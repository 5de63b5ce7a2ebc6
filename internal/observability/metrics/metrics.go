package metrics

import "github.com/prometheus/client_golang/prometheus"

// RelayMetrics exposes counters/histograms for the webhook relay pipeline.
type RelayMetrics struct {
	inboundTotal      *prometheus.CounterVec
	outboundTotal     *prometheus.CounterVec
	extractionSeconds *prometheus.HistogramVec
}

func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tuberelay",
			Subsystem: "relay",
			Name:      "inbound_webhook_total",
			Help:      "Total inbound webhooks by pipeline outcome",
		}, []string{"outcome"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tuberelay",
			Subsystem: "relay",
			Name:      "outbound_total",
			Help:      "Total outbound messaging sends",
		}, []string{"status", "kind"}),
		extractionSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tuberelay",
			Subsystem: "relay",
			Name:      "extraction_seconds",
			Help:      "Duration of external audio extraction",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 60, 90, 120},
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.outboundTotal, m.extractionSeconds)
	return m
}

func (m *RelayMetrics) ObserveInbound(outcome string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(outcome).Inc()
}

func (m *RelayMetrics) ObserveOutbound(status, kind string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(status, kind).Inc()
}

func (m *RelayMetrics) ObserveExtraction(status string, seconds float64) {
	if m == nil {
		return
	}
	m.extractionSeconds.WithLabelValues(status).Observe(seconds)
}
