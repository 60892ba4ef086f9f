package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// RequestIDHeader carries the request correlation id. An incoming
// value is reused, otherwise a fresh UUID is generated; either way the
// id is echoed back on the response.
const RequestIDHeader = "X-Request-Id"

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		ctx := ctxutil.WithRequestID(r.Context(), id)
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
