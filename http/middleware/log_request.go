package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/logger"
)

// A LogRequestRecord describes a request LogRequest handled and the response written for it.
type LogRequestRecord struct {
	BodySize       int64         `json:"bodySize"`
	Duration       time.Duration `json:"duration"`
	Host           string        `json:"host"`
	ID             string        `json:"id,omitempty"`
	IPAddr         string        `json:"ip,omitempty"`
	Method         string        `json:"method"`
	Path           string        `json:"path"`
	Protocol       string        `json:"protocol"`
	Referrer       string        `json:"referrer,omitempty"`
	ReqContentType string        `json:"reqContentType,omitempty"`
	Scheme         string        `json:"scheme,omitempty"`
	Status         int           `json:"status"`
	URI            string        `json:"uri"`
	UserAgent      string        `json:"userAgent,omitempty"`
}

// LogRequest logs a LogRequestRecord for every request once it has been handled,
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following query parameters:
//   - password
//
// If logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			uri := r.URL.Path
			q := r.URL.Query()
			reply.Mask(q, "password")
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			rec := LogRequestRecord{
				BodySize:       m.Written,
				Duration:       m.Duration,
				Host:           r.Host,
				Method:         r.Method,
				Path:           r.URL.Path,
				Protocol:       r.Proto,
				Referrer:       r.Header.Get("Referer"),
				ReqContentType: r.Header.Get("Content-Type"),
				Scheme:         r.URL.Scheme,
				Status:         m.Code,
				URI:            uri,
				UserAgent:      r.UserAgent(),
			}

			if id, ok := r.Context().Value(reply.RequestIDKey).(string); ok {
				rec.ID = id
			}

			if ip, ok := r.Context().Value(reply.IpAddrKey).(string); ok {
				rec.IPAddr = ip
			}

			msg := fmt.Sprintf("%s %s %d", rec.Method, rec.URI, rec.Status)
			ls.Info(msg, &logger.LogContext{
				Data: map[string]any{reply.LogKindKey: reply.HTTPLogKind, "request": rec},
			})
		})
	}
}
