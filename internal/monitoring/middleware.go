package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Middleware records a request counter and duration histogram per path.
// The raw URL path is used as the label; cardinality stays manageable for
// a site this size.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		HTTPRequestsTotal.WithLabelValues(path).Inc()
		timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(path))

		next.ServeHTTP(w, r)

		timer.ObserveDuration()
	})
}
