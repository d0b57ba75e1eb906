package middleware_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/middleware"
	"github.com/xy-planning-network/reply/logger"
	"github.com/xy-planning-network/reply/logger/loggertest"
)

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	ip := "192.168.0.0"
	testID := "test-id"
	useragent := "reply/test"
	content := "very-secret/encoding; shhh"
	referrer := "example.com/referrer"
	respBody := "test"
	newExpected := func(expected middleware.LogRequestRecord) middleware.LogRequestRecord {
		expected.BodySize = int64(len(respBody))
		expected.Host = "example.com"
		expected.ID = testID
		expected.Protocol = "HTTP/1.1"
		expected.Referrer = referrer
		expected.ReqContentType = content
		expected.Status = http.StatusCreated
		expected.UserAgent = useragent

		return expected
	}

	tcs := []struct {
		name     string
		method   string
		ip       string
		url      *url.URL
		msg      string
		expected middleware.LogRequestRecord
	}{
		{
			"Zero-Value",
			http.MethodGet,
			"",
			&url.URL{Path: "/"},
			"GET / 201",
			newExpected(middleware.LogRequestRecord{
				Method: http.MethodGet,
				Path:   "/",
				URI:    "/",
			}),
		},
		{
			"With-IP",
			http.MethodPost,
			ip,
			&url.URL{Path: "/"},
			"POST / 201",
			newExpected(middleware.LogRequestRecord{
				IPAddr: ip,
				Method: http.MethodPost,
				Path:   "/",
				URI:    "/",
			}),
		},
		{
			"With-Query-Params",
			http.MethodPut,
			ip,
			&url.URL{Path: "/orders/1", RawQuery: "param=true"},
			"PUT /orders/1?param=true 201",
			newExpected(middleware.LogRequestRecord{
				IPAddr: ip,
				Method: http.MethodPut,
				Path:   "/orders/1",
				URI:    "/orders/1?param=true",
			}),
		},
		{
			"With-Query-Params-Hid",
			http.MethodGet,
			ip,
			&url.URL{Scheme: "http", Host: "example.com", Path: "/", RawQuery: "param=true&password=hunter2"},
			"GET /?param=true&password=" + reply.LogMaskVal + " 201",
			newExpected(middleware.LogRequestRecord{
				IPAddr: ip,
				Method: http.MethodGet,
				Path:   "/",
				URI:    "/?param=true&password=" + reply.LogMaskVal,
				Scheme: "http",
			}),
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var actual *logger.LogContext
			l := loggertest.NewMockLogger(ctrl)
			l.EXPECT().Info(tc.msg, gomock.Any()).Do(func(_ string, ctx *logger.LogContext) { actual = ctx })

			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.url.String(), new(bytes.Reader))
			r = r.Clone(context.WithValue(r.Context(), reply.RequestIDKey, testID))

			r.Header.Set("User-Agent", useragent)
			r.Header.Set("Content-Type", content)
			r.Header.Set("Referer", referrer)

			if tc.ip != "" {
				r = r.Clone(context.WithValue(r.Context(), reply.IpAddrKey, tc.ip))
			}

			// Act
			middleware.LogRequest(l)(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				wx.WriteHeader(http.StatusCreated)
				fmt.Fprint(wx, respBody)
			})).ServeHTTP(w, r)

			// Assert
			require.NotNil(t, actual)
			require.Equal(t, reply.HTTPLogKind, actual.Data[reply.LogKindKey])

			rec, ok := actual.Data["request"].(middleware.LogRequestRecord)
			require.True(t, ok)
			require.GreaterOrEqual(t, int64(rec.Duration), int64(0))

			rec.Duration = 0
			require.Equal(t, tc.expected, rec)
		})
	}
}
