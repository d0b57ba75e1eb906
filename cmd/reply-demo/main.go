/*
reply-demo serves a small order book, responding through every form package resp offers:

  - GET /               renders the orders, named by convention
  - GET /hello?name=    renders a single attribute while awaiting the response
  - GET /health         responds with headers alone
  - GET /orders         emits the orders as JSON, NDJSON or XML, depending on Accept
  - POST /orders        stores {"item": "..."}, responding with the created order
  - GET /orders/seq     emits the orders from an iter.Seq while awaiting the response
  - GET /orders/stream  emits the orders from a channel as NDJSON
  - GET /orders/{id}    responds with one order
  - DELETE /orders/{id} removes one order
  - GET /ticks?n=       streams server-sent events
  - GET /ticks/legacy   streams the same events through the deprecated form

Configure it with the environment variables package ranger documents.
Streams outlasting SERVER_WRITE_TIMEOUT are cut short; set it to 0 for long-running ticks.
*/
package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/xy-planning-network/reply/http/req"
	"github.com/xy-planning-network/reply/ranger"
)

//go:embed tmpl/*.tmpl
var files embed.FS

func newHandler(opts ...ranger.RangerOption) (*Handler, error) {
	rng, err := ranger.New(append([]ranger.RangerOption{ranger.WithTemplates(files)}, opts...)...)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		Ranger: rng,
		parser: req.NewParser(),
		store:  newOrderStore("tea", "scone"),
		every:  tickEvery,
	}
	rng.HandleRoutes(h.routes())

	return h, nil
}

func main() {
	h, err := newHandler()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := h.Guide(); err != nil {
		h.EmitLogger().Error(err.Error(), nil)
		os.Exit(1)
	}
}
