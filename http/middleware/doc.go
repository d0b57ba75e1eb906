/*
The middleware package defines what a middleware is in reply and a set of basic middlewares.

The available middlewares are:
  - Compress
  - CORS
  - ForceHTTPS
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.ForceHTTPS(env),
		middleware.InjectIPAddress(),
		middleware.RateLimit(vs),
		middleware.RequestID(),
		middleware.LogRequest(log),
		middleware.CORS(baseURL),
	}
*/
package middleware
