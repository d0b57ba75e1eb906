package reactive

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
	boolType    = reflect.TypeFor[bool]()
)

// An Adapter converts producers of one runtime shape into a Flux[any].
type Adapter struct {
	// Name identifies the shape, e.g., "channel".
	Name string

	// Multi reports whether the shape can produce more than one element.
	Multi bool

	// Match reports whether v has the shape.
	Match func(v reflect.Value) bool

	// Convert adapts a matched v.
	Convert func(v reflect.Value) Flux[any]
}

// A Registry maps runtime shapes of producers to the Adapter converting them.
// Adapters registered later are consulted first.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	adapters []Adapter
}

var shared = NewRegistry()

// SharedRegistry returns the process-wide Registry preloaded with the default adapters.
func SharedRegistry() *Registry { return shared }

// NewRegistry constructs a Registry preloaded with adapters for:
//   - Mono values
//   - any type with a method Publish(context.Context, func(T) error) error
//   - channels that can be received from
//   - iter.Seq[T] and iter.Seq2[T, error]
//   - deferred values, func(context.Context) (T, error)
func NewRegistry() *Registry {
	r := new(Registry)
	r.Register(deferredAdapter(), seq2Adapter(), seqAdapter(), channelAdapter(), publisherAdapter(), monoAdapter())
	return r
}

// Register adds the adapters to r.
// Among the adapters passed in, the last takes precedence.
func (r *Registry) Register(adapters ...Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range adapters {
		r.adapters = append([]Adapter{a}, r.adapters...)
	}
}

// Lookup finds the Adapter for the shape of v.
//
// If no Adapter matches, ErrUnsupportedType returns.
func (r *Registry) Lookup(v any) (Adapter, error) {
	if v == nil {
		return Adapter{}, fmt.Errorf("%w: <nil>", ErrUnsupportedType)
	}

	rv := reflect.ValueOf(v)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.adapters {
		if a.Match(rv) {
			return a, nil
		}
	}

	return Adapter{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

// Supports reports whether some Adapter matches v.
func (r *Registry) Supports(v any) bool {
	_, err := r.Lookup(v)
	return err == nil
}

// ToPublisher converts v into a Flux[any] using the matching Adapter.
func (r *Registry) ToPublisher(v any) (Flux[any], error) {
	a, err := r.Lookup(v)
	if err != nil {
		return nil, err
	}

	return a.Convert(reflect.ValueOf(v)), nil
}

type singleValued interface{ single() }

func monoAdapter() Adapter {
	return Adapter{
		Name: "mono",
		Match: func(v reflect.Value) bool {
			_, ok := v.Interface().(singleValued)
			return ok && publishMethod(v).IsValid()
		},
		Convert: convertPublisher,
	}
}

func publisherAdapter() Adapter {
	return Adapter{
		Name:    "publisher",
		Multi:   true,
		Match:   func(v reflect.Value) bool { return publishMethod(v).IsValid() },
		Convert: convertPublisher,
	}
}

// publishMethod finds a Publish method on v with the Publisher signature.
func publishMethod(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Func && v.IsNil() {
		return reflect.Value{}
	}

	m := v.MethodByName("Publish")
	if !m.IsValid() {
		return reflect.Value{}
	}

	t := m.Type()
	if t.NumIn() != 2 || t.NumOut() != 1 || t.In(0) != contextType || t.Out(0) != errorType {
		return reflect.Value{}
	}

	emit := t.In(1)
	if emit.Kind() != reflect.Func || emit.NumIn() != 1 || emit.NumOut() != 1 || emit.Out(0) != errorType {
		return reflect.Value{}
	}

	return m
}

func convertPublisher(v reflect.Value) Flux[any] {
	if f, ok := v.Interface().(Publisher[any]); ok {
		return FromPublisher(f)
	}

	publish := publishMethod(v)
	emitType := publish.Type().In(1)
	return func(ctx context.Context, emit func(any) error) error {
		fn := reflect.MakeFunc(emitType, func(args []reflect.Value) []reflect.Value {
			return []reflect.Value{errorValue(emit(args[0].Interface()))}
		})

		out := publish.Call([]reflect.Value{reflect.ValueOf(ctx), fn})
		return asError(out[0])
	}
}

func channelAdapter() Adapter {
	return Adapter{
		Name:  "channel",
		Multi: true,
		Match: func(v reflect.Value) bool {
			return v.Kind() == reflect.Chan && v.Type().ChanDir()&reflect.RecvDir != 0 && !v.IsNil()
		},
		Convert: func(v reflect.Value) Flux[any] {
			return func(ctx context.Context, emit func(any) error) error {
				cases := []reflect.SelectCase{
					{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())},
					{Dir: reflect.SelectRecv, Chan: v},
				}

				for {
					chosen, item, ok := reflect.Select(cases)
					if chosen == 0 {
						return ctx.Err()
					}

					if !ok {
						return nil
					}

					if err := emit(item.Interface()); err != nil {
						return err
					}
				}
			}
		},
	}
}

// yieldType returns the yield function type of an iter.Seq or iter.Seq2 shaped v.
func yieldType(v reflect.Value, arity int) (reflect.Type, bool) {
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, false
	}

	t := v.Type()
	if t.NumIn() != 1 || t.NumOut() != 0 {
		return nil, false
	}

	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumIn() != arity || yield.NumOut() != 1 || yield.Out(0) != boolType {
		return nil, false
	}

	return yield, true
}

func seqAdapter() Adapter {
	return Adapter{
		Name:  "seq",
		Multi: true,
		Match: func(v reflect.Value) bool {
			_, ok := yieldType(v, 1)
			return ok
		},
		Convert: func(v reflect.Value) Flux[any] {
			yield, _ := yieldType(v, 1)
			return func(ctx context.Context, emit func(any) error) error {
				var err error
				fn := reflect.MakeFunc(yield, func(args []reflect.Value) []reflect.Value {
					if err = ctx.Err(); err == nil {
						err = emit(args[0].Interface())
					}

					return []reflect.Value{reflect.ValueOf(err == nil)}
				})

				v.Call([]reflect.Value{fn})
				return err
			}
		},
	}
}

func seq2Adapter() Adapter {
	return Adapter{
		Name:  "seq2",
		Multi: true,
		Match: func(v reflect.Value) bool {
			yield, ok := yieldType(v, 2)
			return ok && yield.In(1) == errorType
		},
		Convert: func(v reflect.Value) Flux[any] {
			yield, _ := yieldType(v, 2)
			return func(ctx context.Context, emit func(any) error) error {
				var err error
				fn := reflect.MakeFunc(yield, func(args []reflect.Value) []reflect.Value {
					if err = asError(args[1]); err == nil {
						if err = ctx.Err(); err == nil {
							err = emit(args[0].Interface())
						}
					}

					return []reflect.Value{reflect.ValueOf(err == nil)}
				})

				v.Call([]reflect.Value{fn})
				return err
			}
		},
	}
}

func deferredAdapter() Adapter {
	return Adapter{
		Name: "deferred",
		Match: func(v reflect.Value) bool {
			if v.Kind() != reflect.Func || v.IsNil() {
				return false
			}

			t := v.Type()
			return t.NumIn() == 1 && t.In(0) == contextType && t.NumOut() == 2 && t.Out(1) == errorType
		},
		Convert: func(v reflect.Value) Flux[any] {
			return func(ctx context.Context, emit func(any) error) error {
				out := v.Call([]reflect.Value{reflect.ValueOf(ctx)})
				if err := asError(out[1]); err != nil {
					return err
				}

				return emit(out[0].Interface())
			}
		},
	}
}

func errorValue(err error) reflect.Value {
	if err == nil {
		return reflect.Zero(errorType)
	}

	return reflect.ValueOf(&err).Elem()
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}

	return v.Interface().(error)
}
