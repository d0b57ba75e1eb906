package codec_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reply/http/codec"
	"github.com/xy-planning-network/reply/reactive"
)

func TestSSEWriterWrite(t *testing.T) {
	tcs := []struct {
		name     string
		item     any
		expected string
	}{
		{"String", "tick", "data:tick\n\n"},
		{"Multiline", "a\nb", "data:a\ndata:b\n\n"},
		{"Struct", order{ID: 1, Total: "1"}, "data:{\"id\":1,\"total\":\"1\"}\n\n"},
		{
			"Event",
			codec.ServerSentEvent[string]{ID: "7", Event: "update", Retry: 2 * time.Second, Comment: "hi", Data: "x"},
			":hi\nid:7\nevent:update\nretry:2000\ndata:x\n\n",
		},
		{"Comment-Only", codec.ServerSentEvent[any]{Comment: "keepalive"}, ":keepalive\n\n"},
		{"Nil-Pointer-Data", codec.ServerSentEvent[*order]{ID: "1"}, "id:1\n\n"},
		{"Zero-Int-Data", codec.ServerSentEvent[int]{ID: "1", Data: 0}, "id:1\ndata:0\n\n"},
		{"False-Data", codec.ServerSentEvent[bool]{Event: "flag", Data: false}, "event:flag\ndata:false\n\n"},
		{"Empty-String-Data", codec.ServerSentEvent[string]{Event: "ping"}, "event:ping\ndata:\n\n"},
		{"Zero-Int", 0, "data:0\n\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			body := codec.Body{Elements: reactive.FromSlice(tc.item)}

			// Act
			err := codec.SSEWriter{}.Write(context.Background(), w, codec.TextEventStream, body)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, w.Body.String())
			require.True(t, w.Flushed)
		})
	}
}
