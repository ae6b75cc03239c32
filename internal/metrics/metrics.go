package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the storefront card metrics on a private prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	CardsRendered    prometheus.Counter
	ImageFallbacks   prometheus.Counter
	Submissions      *prometheus.CounterVec // by result: added, failed, skipped, ignored
	Notifications    *prometheus.CounterVec // by outcome: success, failure
	SubmitLatencySec prometheus.Histogram
	IdempotentReplay prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	rendered := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_cards_rendered_total"})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_image_fallbacks_total"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "storefront_cart_submissions_total"}, []string{"result"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "storefront_cart_notifications_total"}, []string{"outcome"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_cart_submit_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	replays := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_cart_idempotent_replays_total"})

	r.MustRegister(rendered, fallbacks, submissions, notifications, latency, replays)
	return &Registry{
		reg:              r,
		CardsRendered:    rendered,
		ImageFallbacks:   fallbacks,
		Submissions:      submissions,
		Notifications:    notifications,
		SubmitLatencySec: latency,
		IdempotentReplay: replays,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
