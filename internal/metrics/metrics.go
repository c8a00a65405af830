package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barbemnt_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "barbemnt_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	userDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barbemnt_user_deletions_total",
		Help: "Super admin user deletions by result",
	}, []string{"result"})

	teamsReclaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barbemnt_teams_reclaimed_total",
		Help: "Teams deleted after their last member was removed",
	})

	imagePurges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barbemnt_image_purges_total",
		Help: "Stored portfolio images removed after post deletion",
	}, []string{"result"})

	uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barbemnt_image_uploads_total",
		Help: "Portfolio image uploads by result",
	}, []string{"result"})

	activityDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barbemnt_activity_events_dropped_total",
		Help: "Activity log events dropped because the queue was full",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordUserDeletion(result string) {
	userDeletions.WithLabelValues(result).Inc()
}

func AddTeamsReclaimed(n int) {
	if n > 0 {
		teamsReclaimed.Add(float64(n))
	}
}

func RecordImagePurge(result string) {
	imagePurges.WithLabelValues(result).Inc()
}

func RecordUpload(result string) {
	uploads.WithLabelValues(result).Inc()
}

func RecordActivityDropped() {
	activityDropped.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
