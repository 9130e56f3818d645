// Package metrics exposes integration activity as Prometheus counters.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

var _ driven.Recorder = (*Recorder)(nil)

const namespace = "jobdash"

// Recorder implements driven.Recorder on a private registry.
type Recorder struct {
	registry      *prometheus.Registry
	callbacks     *prometheus.CounterVec
	refreshes     *prometheus.CounterVec
	verifications *prometheus.CounterVec
	messages      *prometheus.CounterVec
}

// NewRecorder creates a Recorder with Go runtime and process collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oauth_callbacks_total",
			Help:      "OAuth callbacks by outcome.",
		}, []string{"outcome"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refresh_total",
			Help:      "Access token lookups by result.",
		}, []string{"result"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_verifications_total",
			Help:      "Channel verification attempts by result.",
		}, []string{"result"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Outbound channel messages by kind and success.",
		}, []string{"kind", "ok"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.callbacks,
		r.refreshes,
		r.verifications,
		r.messages,
	)
	return r
}

func (r *Recorder) CallbackOutcome(outcome domain.CallbackOutcome) {
	r.callbacks.WithLabelValues(string(outcome)).Inc()
}

func (r *Recorder) TokenRefresh(result string) {
	r.refreshes.WithLabelValues(result).Inc()
}

func (r *Recorder) ChannelVerification(result string) {
	r.verifications.WithLabelValues(result).Inc()
}

func (r *Recorder) MessageSent(kind domain.NotificationKind, ok bool) {
	r.messages.WithLabelValues(string(kind), strconv.FormatBool(ok)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
