// internal/line/client_test.go
package line

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientReply(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "channel-token")
	err := c.Reply(context.Background(), "reply-token-1", []Message{
		TextMessage("補貨成功"),
		MenuMessage(),
	})
	require.NoError(t, err)

	assert.Equal(t, "/v2/bot/message/reply", gotPath)
	assert.Equal(t, "Bearer channel-token", gotAuth)

	var payload struct {
		ReplyToken string    `json:"replyToken"`
		Messages   []Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "reply-token-1", payload.ReplyToken)
	require.Len(t, payload.Messages, 2)
	assert.Equal(t, "補貨成功", payload.Messages[0].Text)
	assert.Nil(t, payload.Messages[0].QuickReply)
	require.NotNil(t, payload.Messages[1].QuickReply)
	assert.Len(t, payload.Messages[1].QuickReply.Items, 8)
}

func TestClientReplyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"Invalid reply token"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "channel-token")
	err := c.Reply(context.Background(), "stale-token", []Message{TextMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid reply token")
}
