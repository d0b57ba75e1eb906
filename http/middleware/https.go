package middleware

import (
	"net/http"

	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/resp"
	"github.com/xy-planning-network/reply/reactive"
)

// ForceHTTPS permanently redirects HTTP requests to HTTPS through doer,
// unless env is development.
//
// The "X-Forwarded-Proto" header decides whether HTTPS was requested,
// since the application is expected to run behind a proxy terminating TLS.
func ForceHTTPS(env reply.Environment, doer *resp.Responder) Adapter {
	redirect := doer.Handle(func(r *http.Request) reactive.Mono[resp.ServerResponse] {
		u := *r.URL
		u.Scheme = "https"
		u.Host = r.Host
		return resp.PermanentRedirect(&u).Build()
	})

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if env.IsDevelopment() || r.Header.Get("X-Forwarded-Proto") == "https" {
				handler.ServeHTTP(w, r)
				return
			}

			redirect.ServeHTTP(w, r)
		})
	}
}

