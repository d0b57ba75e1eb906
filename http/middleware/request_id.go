package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/reply"
)

// RequestIDHeader is the response header echoing the ID RequestID generates.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under reply.RequestIDKey
// and echoes it in the X-Request-Id response header.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), reply.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
