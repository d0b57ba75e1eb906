package resp

import (
	"context"

	"github.com/xy-planning-network/reply"
)

// ContextInjector is the interface for describing how values from context.Context can be
// merged with existing keys in the model of a rendered view.
type ContextInjector interface {
	Inject(model map[string]any, ctx context.Context)
}

// A DefaultInjector holds the keys required to pull values from a context.Context.
//
// DefaultInjector implements ContextInjector
type DefaultInjector struct {
	Keys []reply.Key
}

// Inject merges into model the key-value pairs pulled from ctx using i.Keys
// if the value for a certain key is not nil.
func (i DefaultInjector) Inject(model map[string]any, ctx context.Context) {
	if model == nil || ctx == nil || i.Keys == nil {
		return
	}
	for _, k := range i.Keys {
		if val := ctx.Value(k); val != nil {
			model[string(k)] = val
		}
	}
}

// A NoopInjector implements ContextInjector and performs no operation.
type NoopInjector struct{}

func (NoopInjector) Inject(_ map[string]any, _ context.Context) {}
