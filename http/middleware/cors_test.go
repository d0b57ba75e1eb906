package middleware_test

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply/http/middleware"
)

func TestCORS(t *testing.T) {
	// Arrange + Act
	actual := middleware.CORS("")

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	actual = middleware.CORS("https://example.com")
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://api.example.com", nil)
	r.Header.Set("Origin", "https://example.com")

	// Act
	actual(noopHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCompress(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("Accept-Encoding", "gzip")

	// Act
	middleware.Compress()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "hello, gzip")
	})).ServeHTTP(w, r)

	// Assert
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	gr, err := gzip.NewReader(w.Body)
	require.Nil(t, err)

	b, err := io.ReadAll(gr)
	require.Nil(t, err)
	require.Equal(t, "hello, gzip", string(b))
}
