/*
Package reactive provides the small set of push-based primitives the response builder is written against.

A [Publisher] emits zero or more elements to a callback and signals completion by returning nil
or failure by returning an error.
[Flux] and [Mono] are function types implementing [Publisher];
a [Mono] emits at most one element.

# Awaiting

[AwaitSingle] bridges a [Publisher] onto a blocking call:
it waits for exactly one element, failing with [ErrNoElements] or [ErrTooManyElements] otherwise.
Cancelling the caller's context.Context cancels the publisher.

# Type descriptors

Generic type information is lost once a value is boxed in an any.
A [TypeRef] carries that information explicitly:

	ref := reactive.TypeOf[[]Order]()

# Adapter registry

A [Registry] converts arbitrary producers - channels, iter.Seq values, deferred functions,
and any type with a Publish method - into a uniform Flux[any].
*/
package reactive
