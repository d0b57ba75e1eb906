package ranger_test

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/middleware"
	"github.com/xy-planning-network/reply/http/resp"
	"github.com/xy-planning-network/reply/http/router"
	"github.com/xy-planning-network/reply/logger"
	"github.com/xy-planning-network/reply/ranger"
	"github.com/xy-planning-network/reply/reactive"
)

func quietLogger(t *testing.T) logger.Logger {
	t.Helper()
	t.Setenv("SENTRY_DSN", "")

	return logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))
}

func newRanger(t *testing.T, opts ...ranger.RangerOption) *ranger.Ranger {
	t.Helper()

	files := fstest.MapFS{"tmpl/hello.tmpl": {Data: []byte(`hello {{ .name }}`)}}
	opts = append([]ranger.RangerOption{
		ranger.WithEnv(reply.Testing.String()),
		ranger.WithLogger(quietLogger(t)),
		ranger.WithTemplates(files),
	}, opts...)

	rng, err := ranger.New(opts...)
	require.NoError(t, err)

	return rng
}

func TestNew(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("BASE_URL", "https://example.com")

	// Act
	rng, err := ranger.New(ranger.WithLogger(quietLogger(t)))

	// Assert
	require.NoError(t, err)
	require.Equal(t, reply.Staging, rng.EmitEnv())
	require.Equal(t, "example.com", rng.EmitURL().Host)
	require.NotNil(t, rng.EmitLogger())
	require.NotNil(t, rng.Registry())
}

func TestNewBadConfig(t *testing.T) {
	tcs := []struct {
		name string
		opt  ranger.RangerOption
	}{
		{"Nil-Logger", ranger.WithLogger(nil)},
		{"Nil-Responder", ranger.WithResponder(nil)},
		{"Nil-Router", ranger.WithRouter(nil)},
		{"Nil-Server", ranger.WithServer(nil)},
		{"Nil-Templates", ranger.WithTemplates(nil)},
		{"Nil-URL", ranger.WithBaseURL(nil)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			rng, err := ranger.New(tc.opt)

			// Assert
			require.Nil(t, rng)
			require.ErrorIs(t, err, reply.ErrBadConfig)
			require.ErrorIs(t, err, reply.ErrMissingData)
		})
	}
}

func TestRangerServes(t *testing.T) {
	// Arrange
	rng := newRanger(t)
	rng.HandleRoutes([]router.Route{
		{
			Path:   "/hello",
			Method: http.MethodGet,
			Handler: func(*http.Request) reactive.Mono[resp.ServerResponse] {
				return resp.OK().RenderModel("hello", map[string]any{"name": "world"})
			},
		},
		{
			Path:   "/teapot",
			Method: http.MethodGet,
			Handler: func(*http.Request) reactive.Mono[resp.ServerResponse] {
				err := resp.NewStatusError(http.StatusTeapot, errors.New("short and stout"))
				return reactive.Error[resp.ServerResponse](err)
			},
		},
	})

	tcs := []struct {
		name     string
		path     string
		code     int
		contains []string
	}{
		{"Render", "/hello", http.StatusOK, []string{"hello world"}},
		{"Error-Template", "/teapot", http.StatusTeapot, []string{"418", "short and stout", "hello@xyplanningnetwork.com"}},
		{"Not-Found", "/nope", http.StatusNotFound, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "https://example.com"+tc.path, nil)
			req.Header.Set("X-Forwarded-Proto", "https")

			// Act
			rng.ServeHTTP(w, req)

			// Assert
			require.Equal(t, tc.code, w.Code)
			for _, s := range tc.contains {
				require.Contains(t, w.Body.String(), s)
			}

			if tc.contains != nil {
				require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
				require.Equal(t, "text/html;charset=UTF-8", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestRangerForcesHTTPS(t *testing.T) {
	// Arrange
	rng := newRanger(t)
	rng.HandleRoutes([]router.Route{
		{
			Path:   "/hello",
			Method: http.MethodGet,
			Handler: func(*http.Request) reactive.Mono[resp.ServerResponse] {
				return resp.OK().Build()
			},
		},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/hello", nil)

	// Act
	rng.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusPermanentRedirect, w.Code)
	require.Equal(t, "https://example.com/hello", w.Header().Get("Location"))
}

func TestRangerGuide(t *testing.T) {
	tcs := []struct {
		name string
		stop func(rng *ranger.Ranger, cancel context.CancelFunc)
	}{
		{"Cancel", func(_ *ranger.Ranger, cancel context.CancelFunc) { cancel() }},
		{"Shutdown", func(rng *ranger.Ranger, _ context.CancelFunc) { require.NoError(t, rng.Shutdown()) }},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			rng := newRanger(
				t,
				ranger.WithContext(ctx),
				ranger.WithServer(&http.Server{Addr: "127.0.0.1:0"}),
			)

			errCh := make(chan error, 1)
			go func() { errCh <- rng.Guide() }()

			// Act
			tc.stop(rng, cancel)

			// Assert
			select {
			case err := <-errCh:
				require.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("Guide did not return")
			}
		})
	}
}
