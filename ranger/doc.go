/*
Package ranger initializes and manages a reply app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New].
It embeds the [*resp.Responder] writing responses and the [*router.Router] routing requests,
so routes are registered directly on it:

	rng, err := ranger.New()
	if err != nil {
		log.Fatal(err)
	}

	rng.HandleRoutes([]router.Route{{Path: "/", Method: http.MethodGet, Handler: index}})
	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}

[*Ranger.Guide] begins a reply app's web server.
By default, [*Ranger.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the web server.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown],
cancel the context.Context passed to [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Templates

Views are read from the directory TEMPLATE_DIR names, as "tmpl/<name>.tmpl".
When a template is not found there, the templates ranger embeds are used.
"tmpl/error.tmpl" is one of those, rendered whenever a handler fails before writing a response.

# Configuration

A developer configures a reply app through environment variables
and by passing [RangerOption] to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the email address end users can contact; default: hello@xyplanningnetwork.com
  - ENVIRONMENT: the environment the application is running in; cf. [reply.Environment]
  - HOST: the host the application is running on; default: localhost
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - SENTRY_DSN: the DSN errors are reported to; unset, nothing is reported
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - TEMPLATE_DIR: the directory templates are read from; default: the working directory

Streaming responses, e.g., server-sent events, outlive SERVER_WRITE_TIMEOUT;
set it to 0 or pass an [*http.Server] to [WithServer] when serving them.
*/
package ranger
