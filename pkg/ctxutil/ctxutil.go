package ctxutil

import (
	"context"
	"strings"
)

type ctxKey string

const (
	deviceIDKey  ctxKey = "device_id"
	requestIDKey ctxKey = "request_id"
)

// WithDeviceID stores the device ID in the context.
func WithDeviceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, deviceIDKey, id)
}

// DeviceIDFromCtx extracts the device ID from the context.
// Returns "" and false if the value is missing, blank, or wrong type.
func DeviceIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(deviceIDKey).(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
