package resp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply/http/resp"
)

type order struct {
	ID   int    `json:"id" xml:"id"`
	Item string `json:"item" xml:"item"`
}

var orders = []order{{ID: 1, Item: "tea"}, {ID: 2, Item: "scone"}}

func ordersChan() <-chan order {
	ch := make(chan order, len(orders))
	for _, o := range orders {
		ch <- o
	}
	close(ch)

	return ch
}

// write writes sr to a recorder for a GET request accepting accept.
func write(t *testing.T, sr resp.ServerResponse, c resp.Context, accept string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	if accept != "" {
		r.Header.Set("Accept", accept)
	}

	require.Nil(t, sr.WriteTo(w, r, c))
	return w
}
