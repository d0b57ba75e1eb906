package resp

import (
	"github.com/xy-planning-network/reply/http/codec"
	"github.com/xy-planning-network/reply/http/template"
	"github.com/xy-planning-network/reply/logger"
	"github.com/xy-planning-network/reply/reactive"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithContactErrMsg sets the message the error template receives under "Contact".
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithCtxInjector sets the ContextInjector merging request scoped values into rendered models.
func WithCtxInjector(i ContextInjector) ResponderOptFn {
	return func(d *Responder) {
		d.ctx.Injector = i
	}
}

// WithErrTemplate sets the view name to render
// when an unexpected, unhandled error occurs before anything was written.
//
// The view receives "Contact", "Error" and "Status".
func WithErrTemplate(name string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.err = name
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithParser sets the provided implementation of template.Parser to use for parsing HTML templates.
func WithParser(p template.Parser) ResponderOptFn {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithRegistry sets the reactive.Registry handed out by Responder.Registry.
//
// Builders do not consult the Responder; they use reactive.SharedRegistry
// unless given this one with Builder.Registry(doer.Registry()).
func WithRegistry(r *reactive.Registry) ResponderOptFn {
	return func(d *Responder) {
		d.registry = r
	}
}

// WithViewResolver sets the template.ViewResolver used to render views.
func WithViewResolver(v template.ViewResolver) ResponderOptFn {
	return func(d *Responder) {
		d.ctx.Views = v
	}
}

// WithWriters sets the codec.Writers used to encode bodies, in order of precedence.
func WithWriters(ws ...codec.Writer) ResponderOptFn {
	return func(d *Responder) {
		d.ctx.Writers = ws
	}
}
