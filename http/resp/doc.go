/*
Package resp builds HTTP responses and writes them through net/http.

A [Builder] accumulates the status, headers and cookies of a response.
A terminal operation on it finalizes the response into a [reactive.Mono],
resolving to a [ServerResponse]:

  - [Builder.Body] attaches a producer the [reactive.Registry] can adapt
  - [Builder.BodyValue] attaches a single value
  - [Builder.Render] and [Builder.RenderModel] name a template to render
  - [Builder.Build] sends only the status and headers

Generic functions in this package infer the element type of a body at the call site,
e.g., [BodyPublisherWithType] and [BodyWithType],
and the *AndAwait functions wait for the single response a terminal operation produces,
e.g., [BodyAndAwait] and [RenderAndAwait].

	func (h *handler) listOrders(r *http.Request) reactive.Mono[resp.ServerResponse] {
		return resp.BodyPublisherWithType(resp.OK().JSON(), h.orders.Stream(r.Context()))
	}

A [Responder] negotiates the media type, encodes the body with a [codec.Writer],
renders views with a [template.ViewResolver] and handles failures along the way.
*/
package resp
