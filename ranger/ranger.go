package ranger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/middleware"
	"github.com/xy-planning-network/reply/http/resp"
	"github.com/xy-planning-network/reply/http/router"
	"github.com/xy-planning-network/reply/http/template"
	"github.com/xy-planning-network/reply/logger"
)

// A Ranger manages and exposes all components of a reply app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	ctx   context.Context
	env   reply.Environment
	files fs.FS
	l     logger.Logger
	mws   []middleware.Adapter
	srv   *http.Server
	url   *url.URL
	views []template.ResolverOptFn
}

// New constructs a Ranger from the provided options.
// Whatever the options leave unset is configured from environment variables and defaults.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %w", reply.ErrBadConfig, err)
		}
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.env == "" {
		r.env = reply.EnvVarOrEnv(environmentEnvVar, reply.Development)
	}

	if r.url == nil {
		r.url = reply.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL)
	}

	if r.l == nil {
		r.l = defaultLogger(r.env)
	}
	r.l.Debug(fmt.Sprintf("using env %s", r.env), nil)

	if r.Responder == nil {
		if r.files == nil {
			r.files = os.DirFS(reply.EnvVarOrString(TemplateDirEnvVar, defaultTemplateDir))
		}

		p := defaultParser(r.env, r.url, r.files)
		contact := reply.EnvVarOrString(ContactUsEnvVar, defaultContactUs)
		r.Responder = defaultResponder(r.l, p, contact, r.views...)
	}

	if r.Router == nil {
		if r.mws == nil {
			r.mws = defaultMiddlewares(r.env, r.l, r.Responder, r.url)
		}

		r.Router = defaultRouter(r.env, r.l, r.Responder, r.mws)
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx)
	}
	r.srv.Handler = r.Router
	r.l.Debug(fmt.Sprintf("using server at %s", r.srv.Addr), nil)

	return r, nil
}

// EmitEnv returns the Environment the app runs in.
func (r *Ranger) EmitEnv() reply.Environment { return r.env }

// EmitLogger returns the logger.Logger every component logs through.
func (r *Ranger) EmitLogger() logger.Logger { return r.l }

// EmitURL returns the base URL of the app.
func (r *Ranger) EmitURL() *url.URL { return r.url }

// Guide begins the web server.
//
// These, canceling the context.Context passed to WithContext and (*Ranger).Shutdown stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		err := r.srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		errCh <- err
	}()

	select {
	case s := <-ch:
		r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)

	case <-r.ctx.Done():
		r.l.Info("context done, stopping web server", nil)

	case err := <-errCh:
		if err != nil {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), nil)
		}

		return err
	}

	return r.Shutdown()
}

// Shutdown gracefully shuts down the web server,
// giving open connections five seconds to finish.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
