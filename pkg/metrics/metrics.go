package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "litey", Name: "rate_limit_allowed_total", Help: "Number of allowed guarded requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "litey", Name: "rate_limit_rejected_total", Help: "Number of rejected guarded requests by limiter type."},
		[]string{"limiter"},
	)
	NotesPosted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "litey", Name: "notes_posted_total", Help: "Number of notes stored."},
	)
	ModerationActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "litey", Name: "moderation_actions_total", Help: "Moderation requests that reached the store, by action."},
		[]string{"action"},
	)
	ImageProxyFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "litey", Name: "image_proxy_fetches_total", Help: "Image proxy fetches by outcome."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(NotesPosted)
	reg.MustRegister(ModerationActions)
	reg.MustRegister(ImageProxyFetches)
}
