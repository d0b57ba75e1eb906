package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/middleware"
	"github.com/xy-planning-network/reply/http/resp"
	"github.com/xy-planning-network/reply/http/router"
	"github.com/xy-planning-network/reply/http/template"
	"github.com/xy-planning-network/reply/logger"
	"github.com/xy-planning-network/reply/reactive"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// App metadata
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "hello@xyplanningnetwork.com"
	contactUsErr     = "Something went wrong. Please contact us at %s if the problem persists."

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Default HTML template files
	TemplateDirEnvVar  = "TEMPLATE_DIR"
	defaultTemplateDir = "."
	defaultTmplPrefix  = "tmpl/"
	defaultTmplSuffix  = ".tmpl"
	defaultErrTmpl     = "error"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
	shutdownTimeout           = 5 * time.Second
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// defaultLogger constructs a [logger.Logger] configured for use in the application.
//
// LOG_LEVEL sets the level and SENTRY_DSN switches to a [logger.SentryLogger];
// cf. [logger.New].
func defaultLogger(env reply.Environment) logger.Logger {
	return logger.New(logger.WithEnv(env.String()))
}

// defaultParser constructs a [*template.Parse] reading templates from files,
// falling back to those ranger embeds.
//
// defaultParser makes available these functions in an HTML template:
//
//   - "env"
//   - "nonce"
//   - "rootUrl"
//   - "isDevelopment"
//   - "isStaging"
//   - "isProduction"
func defaultParser(env reply.Environment, u *url.URL, files fs.FS) *template.Parse {
	p := template.NewParser(template.WithFS(newVirtualFS(files)))
	p.AddFn(template.Env(env))
	p.AddFn("isDevelopment", env.IsDevelopment)
	p.AddFn("isStaging", env.IsStaging)
	p.AddFn("isProduction", env.IsProduction)
	p.AddFn(template.RootUrl(u))

	return p
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
//
// Views are looked up as "tmpl/<name>.tmpl" unless opts says otherwise.
func defaultResponder(
	l logger.Logger,
	p template.Parser,
	contact string,
	opts ...template.ResolverOptFn,
) *resp.Responder {
	ropts := append([]template.ResolverOptFn{
		template.WithPrefix(defaultTmplPrefix),
		template.WithSuffix(defaultTmplSuffix),
	}, opts...)

	args := []resp.ResponderOptFn{
		resp.WithContactErrMsg(fmt.Sprintf(contactUsErr, contact)),
		resp.WithCtxInjector(resp.DefaultInjector{Keys: []reply.Key{reply.RequestIDKey}}),
		resp.WithErrTemplate(defaultErrTmpl),
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithViewResolver(template.NewViewResolver(p, ropts...)),
	}

	return resp.NewResponder(args...)
}

// defaultMiddlewares are run on every request matching a route of the default router,
// outermost first.
func defaultMiddlewares(env reply.Environment, l logger.Logger, responder *resp.Responder, baseURL *url.URL) []middleware.Adapter {
	return []middleware.Adapter{
		middleware.LogRequest(l),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.ForceHTTPS(env, responder),
		middleware.CORS(baseOrigin(env, baseURL)),
	}
}

// defaultRouter constructs a [*router.Router] to be used by the web server.
//
// Unmatched requests are logged and answered with a 404 through the responder.
func defaultRouter(
	env reply.Environment,
	l logger.Logger,
	responder *resp.Responder,
	mws []middleware.Adapter,
) *router.Router {
	route := router.New(env, responder, middleware.LogRequest(l))
	route.OnEveryRequest(mws...)
	route.HandleNotFound(func(r *http.Request) reactive.Mono[resp.ServerResponse] {
		return resp.NotFound().Build()
	})

	return route
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := reply.EnvVarOrString(portEnvVar, DefaultPort)
	port = strings.TrimPrefix(port, ":")

	srv := &http.Server{
		Addr:         net.JoinHostPort(reply.EnvVarOrString(hostEnvVar, DefaultHost), port),
		IdleTimeout:  reply.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  reply.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: reply.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}

// baseOrigin is the origin CORS allows,
// empty in development where requests come from anywhere.
func baseOrigin(env reply.Environment, u *url.URL) string {
	if env.IsDevelopment() || u == nil {
		return ""
	}

	return u.Scheme + "://" + u.Host
}
