package middleware

import (
	"net/http"
	"strings"

	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// DeviceIDHeader carries the opaque client-generated device identifier
// that scopes conversations and notes. There are no accounts.
const DeviceIDHeader = "X-Device-Id"

// RequireDevice returns middleware that extracts the device ID header
// into the request context, rejecting requests without one.
func RequireDevice() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := strings.TrimSpace(r.Header.Get(DeviceIDHeader))
			if deviceID == "" {
				http.Error(w, "missing "+DeviceIDHeader+" header", http.StatusBadRequest)
				return
			}

			ctx := ctxutil.WithDeviceID(r.Context(), deviceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
