package middleware_test

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/middleware"
	"github.com/xy-planning-network/reply/http/resp"
	"github.com/xy-planning-network/reply/logger"
)

func TestForceHTTPS(t *testing.T) {
	tcs := []struct {
		name     string
		env      reply.Environment
		target   string
		proto    string
		code     int
		location string
	}{
		{"Development", reply.Development, "http://example.com", "", http.StatusOK, ""},
		{"Forwarded-HTTPS", reply.Testing, "http://example.com", "https", http.StatusOK, ""},
		{"Forwarded-HTTP", reply.Testing, "http://example.com/orders?page=2", "http", http.StatusPermanentRedirect, "https://example.com/orders?page=2"},
		{"No-Proto", reply.Production, "http://example.com/", "", http.StatusPermanentRedirect, "https://example.com/"},
	}

	doer := resp.NewResponder(resp.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))))

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.proto != "" {
				r.Header.Set("X-Forwarded-Proto", tc.proto)
			}

			// Act
			middleware.ForceHTTPS(tc.env, doer)(noopHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}
