package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/middleware"
	"github.com/xy-planning-network/reply/http/resp"
	"github.com/xy-planning-network/reply/http/router"
	"github.com/xy-planning-network/reply/http/template"
	"github.com/xy-planning-network/reply/logger"
)

// A RangerOption configures a *Ranger under construction.
//
// Components a RangerOption leaves unset are built by New from defaults
// once every RangerOption ran,
// so the order RangerOptions are passed in does not matter.
type RangerOption func(rng *Ranger) error

// WithBaseURL sets the URL the application is reached at,
// replacing the BASE_URL environment variable.
func WithBaseURL(u *url.URL) RangerOption {
	return func(rng *Ranger) error {
		if u == nil {
			return fmt.Errorf("%w: nil *url.URL", reply.ErrMissingData)
		}

		rng.url = u
		return nil
	}
}

// WithContext sets the context.Context every request derives from.
// Canceling it stops [*Ranger.Guide].
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		if ctx == nil {
			return fmt.Errorf("%w: nil context.Context", reply.ErrMissingData)
		}

		rng.ctx = ctx
		return nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the environment variable it names a valid Environment.
//
// If both fail, the Environment is Development.
func WithEnv(envVar string) RangerOption {
	e := reply.Environment(envVar)
	if err := e.Valid(); err == nil {
		return func(rng *Ranger) error {
			rng.env = e
			return nil
		}
	}

	return func(rng *Ranger) error {
		rng.env = reply.EnvVarOrEnv(envVar, reply.Development)
		return nil
	}
}

// WithLogger sets the logger.Logger every component logs through.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger.Logger", reply.ErrMissingData)
		}

		rng.l = l
		return nil
	}
}

// WithMiddlewares replaces the middleware.Adapters the default router
// runs on every request.
func WithMiddlewares(mws ...middleware.Adapter) RangerOption {
	return func(rng *Ranger) error {
		rng.mws = mws
		return nil
	}
}

// WithResponder sets the *resp.Responder writing responses,
// ignoring WithTemplates and WithViewOptions.
func WithResponder(r *resp.Responder) RangerOption {
	return func(rng *Ranger) error {
		if r == nil {
			return fmt.Errorf("%w: nil *resp.Responder", reply.ErrMissingData)
		}

		rng.Responder = r
		return nil
	}
}

// WithRouter sets the *router.Router the web server routes with,
// ignoring WithMiddlewares.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) error {
		if r == nil {
			return fmt.Errorf("%w: nil *router.Router", reply.ErrMissingData)
		}

		rng.Router = r
		return nil
	}
}

// WithServer sets the *http.Server serving the application.
// Its Handler is replaced with the *Ranger's router.
func WithServer(srv *http.Server) RangerOption {
	return func(rng *Ranger) error {
		if srv == nil {
			return fmt.Errorf("%w: nil *http.Server", reply.ErrMissingData)
		}

		rng.srv = srv
		return nil
	}
}

// WithTemplates sets the filesystem templates are read from,
// replacing the TEMPLATE_DIR environment variable.
func WithTemplates(files fs.FS) RangerOption {
	return func(rng *Ranger) error {
		if files == nil {
			return fmt.Errorf("%w: nil fs.FS", reply.ErrMissingData)
		}

		rng.files = files
		return nil
	}
}

// WithViewOptions configures how the default responder resolves view names into templates.
// They apply after the defaults, i.e., "tmpl/" as prefix and ".tmpl" as suffix.
func WithViewOptions(opts ...template.ResolverOptFn) RangerOption {
	return func(rng *Ranger) error {
		rng.views = append(rng.views, opts...)
		return nil
	}
}
