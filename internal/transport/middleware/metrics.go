package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klappy/unfoldingtheword/internal/metrics"
)

// Metrics returns middleware that records request counts and latency.
// Path segments after the collection name are collapsed to ":id" to
// keep label cardinality bounded.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			m.RecordHTTPRequest(r.Method, metricPath(r.URL.Path), strconv.Itoa(sw.status), time.Since(start))
		})
	}
}

// metricPath normalizes item URLs like /api/notes/<uuid> to /api/notes/:id.
// A trailing action segment such as /replay is preserved.
func metricPath(path string) string {
	for _, collection := range []string{"/api/conversations/", "/api/notes/"} {
		if strings.HasPrefix(path, collection) && len(path) > len(collection) {
			rest := path[len(collection):]
			if _, action, ok := strings.Cut(rest, "/"); ok && action != "" {
				return collection + ":id/" + action
			}
			return collection + ":id"
		}
	}
	return path
}
