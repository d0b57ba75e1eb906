/*
Package router routes HTTP requests to the handlers producing their responses.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
A [resp.HandlerFunc] is the function called when a request matches a Route;
the [*resp.Responder] given to [New] writes the response it produces.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

It is often the case that many routes for a web server share identical middleware stacks,
which aid in directing, redirecting, or adding contextual information to a request.
Thus, a [Router] provides conveniences for making a single call to register many logically associated Routes,
see [Router.HandleRoutes] and [Router.OnEveryRequest].

[Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.
*/
package router
