package req

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/xy-planning-network/reply"
	"github.com/xy-planning-network/reply/http/resp"
)

// A Parser decodes request payloads into structs and validates them.
type Parser struct {
	queryParamDecoder queryParamDecoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		validator:         newValidator(),
	}
}

// Parse decodes the payload of r into structPtr,
// reading query params for GET, HEAD and DELETE requests and the JSON body otherwise.
//
// Errors are *resp.StatusError, so a handler can return them as is:
// 422 for ValidationErrors, 400 for a malformed payload and 500 for anything else.
func (p *Parser) Parse(r *http.Request, structPtr any) error {
	var err error
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		err = p.ParseQueryParams(r.URL.Query(), structPtr)
	default:
		err = p.ParseBody(r.Body, structPtr)
	}

	var verrs ValidationErrors
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verrs):
		return resp.NewStatusError(http.StatusUnprocessableEntity, err)
	case errors.Is(err, reply.ErrBadFormat):
		return resp.NewStatusError(http.StatusBadRequest, err)
	default:
		return resp.NewStatusError(http.StatusInternalServerError, err)
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// ParseBody reads the entire body and it can't be read from again.
// Use a [io.TeeReader] if the body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("reply/http/req: %w: ParseBody called with non-pointer: %s", reply.ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("reply/http/req: %w: failed decoding request body: %s", reply.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("reply/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseQueryParams decodes into a pointer to a struct the query param data in params.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.queryParamDecoder.decode(structPtr, params); err != nil {
		return fmt.Errorf("reply/http/req: failed decoding request query params: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("reply/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
