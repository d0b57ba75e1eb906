/*
Package req decodes and validates the payload of an HTTP request.

It supports JSON-encoded bodies and payloads encoded in query parameters.
In both cases, package req expects to parse payloads into a pointer to a struct
whose tags match keys in the payload ("json" or "schema")
and set the rules its data must meet ("validate").

Failures are translated to reply sentinel errors, whatever the encoding.
[*Parser.Parse] goes a step further, wrapping them in a [*resp.StatusError]
so a handler can fail with it directly:

	var in struct {
		Item string `json:"item" validate:"required"`
	}
	if err := parser.Parse(r, &in); err != nil {
		return reactive.Error[resp.ServerResponse](err)
	}

Or respond with the [ValidationErrors] themselves:

	var verrs req.ValidationErrors
	if errors.As(err, &verrs) {
		return resp.UnprocessableEntity().BodyValue(verrs)
	}
*/
package req
