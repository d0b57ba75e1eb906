package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/middleware"
)

func TestReportPanic(t *testing.T) {
	// Arrange + Act
	actual := middleware.ReportPanic(reply.Development)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	actual = middleware.ReportPanic(reply.Production)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act + Assert
	require.NotPanics(t, func() {
		actual(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("oh no")
		})).ServeHTTP(w, r)
	})
}
