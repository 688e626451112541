package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ContentSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "knst", Name: "content_saves_total", Help: "Number of content path writes by result."},
		[]string{"result"},
	)
	ImageUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "knst", Name: "image_uploads_total", Help: "Number of image uploads by result."},
		[]string{"result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "knst", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "knst", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ContentSaves)
	reg.MustRegister(ImageUploads)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
