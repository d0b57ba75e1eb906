package logger_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply/logger"
)

func TestLogContextMarshalText(t *testing.T) {
	// Arrange
	lc := logger.LogContext{}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, []byte("{}"), b)

	// Arrange
	lc = logger.LogContext{Data: map[string]any{"test": "data"}}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"data":{"test":"data"}}`, string(b))

	// Arrange
	lc = logger.LogContext{Error: errors.New("test"), Caller: "somewhere.go:1"}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"error":"test"}`, string(b))

	// Arrange
	expected := map[string]any{
		"request": map[string]any{
			"method": http.MethodGet,
			"url":    "https://example.com",
			"header": map[string]any{
				"Host": []any{"example.com"},
			},
		},
	}

	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("Host", "example.com")
	lc = logger.LogContext{Request: r}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	m := make(map[string]any)
	require.Nil(t, json.Unmarshal(b, &m))
	require.Equal(t, expected, m)
}

func TestLogContextString(t *testing.T) {
	// Arrange
	lc := logger.LogContext{Data: map[string]any{"bad": func() {}}}

	// Act
	s := lc.String()

	// Assert
	require.Empty(t, s)

	// Arrange
	lc = logger.LogContext{Error: errors.New("oops")}

	// Act
	s = lc.String()

	// Assert
	require.True(t, strings.Contains(s, "oops"))
}

func TestCurrentCaller(t *testing.T) {
	// Arrange
	var caller string

	// Act
	func() {
		caller = logger.CurrentCaller()
	}()

	// Assert
	require.Regexp(t, `logger/context_test\.go:\d+$`, caller)
}
