// internal/line/handler_test.go
package line

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockline/internal/interpreter"
)

type stubDialog struct {
	reply interpreter.Reply
	calls []string
}

func (d *stubDialog) Handle(_ context.Context, userID, text string) interpreter.Reply {
	d.calls = append(d.calls, userID+"|"+text)
	return d.reply
}

type stubReplier struct {
	tokens   []string
	messages [][]Message
}

func (r *stubReplier) Reply(_ context.Context, replyToken string, messages []Message) error {
	r.tokens = append(r.tokens, replyToken)
	r.messages = append(r.messages, messages)
	return nil
}

const testSecret = "test-channel-secret"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func textEventBody(userID, text string) []byte {
	return fmt.Appendf(nil, `{
		"destination": "bot",
		"events": [{
			"type": "message",
			"replyToken": "token-1",
			"source": {"userId": %q},
			"message": {"type": "text", "id": "m1", "text": %q}
		}]
	}`, userID, text)
}

func postCallback(t *testing.T, h *Handler, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewReader(body))
	req.Header.Set("X-Line-Signature", signature)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestRejectsMissingSignature(t *testing.T) {
	dialog := &stubDialog{}
	h := NewHandler(testSecret, dialog, &stubReplier{})

	rec := postCallback(t, h, textEventBody("U1", "總覽"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, dialog.calls, "nothing reaches the interpreter without a valid signature")
}

func TestRejectsForgedSignature(t *testing.T) {
	dialog := &stubDialog{}
	h := NewHandler(testSecret, dialog, &stubReplier{})

	body := textEventBody("U1", "總覽")
	forged := sign(append(body, '!'))
	rec := postCallback(t, h, body, forged)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, dialog.calls)
}

func TestDispatchesVerifiedTextEvent(t *testing.T) {
	dialog := &stubDialog{reply: interpreter.Reply{Text: "補貨成功，目前倉庫庫存：8", ShowMenu: true}}
	replier := &stubReplier{}
	h := NewHandler(testSecret, dialog, replier)

	body := textEventBody("U1", "補貨 CL00012 3")
	rec := postCallback(t, h, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"U1|補貨 CL00012 3"}, dialog.calls)

	require.Len(t, replier.messages, 1)
	assert.Equal(t, "token-1", replier.tokens[0])
	msgs := replier.messages[0]
	require.Len(t, msgs, 2, "reply text plus the function menu")
	assert.Equal(t, "補貨成功，目前倉庫庫存：8", msgs[0].Text)
	assert.NotNil(t, msgs[1].QuickReply)
}

func TestMenuOnlyReply(t *testing.T) {
	dialog := &stubDialog{reply: interpreter.Reply{ShowMenu: true}}
	replier := &stubReplier{}
	h := NewHandler(testSecret, dialog, replier)

	body := textEventBody("U1", "功能")
	postCallback(t, h, body, sign(body))

	require.Len(t, replier.messages, 1)
	msgs := replier.messages[0]
	require.Len(t, msgs, 1)
	assert.Equal(t, menuPrompt, msgs[0].Text)
	require.NotNil(t, msgs[0].QuickReply)
	assert.Len(t, msgs[0].QuickReply.Items, 8)
}

func TestSkipsNonTextEvents(t *testing.T) {
	dialog := &stubDialog{}
	h := NewHandler(testSecret, dialog, &stubReplier{})

	body := []byte(`{
		"destination": "bot",
		"events": [
			{"type": "follow", "replyToken": "t1", "source": {"userId": "U1"}},
			{"type": "message", "replyToken": "t2", "source": {"userId": "U1"},
			 "message": {"type": "sticker", "id": "m2"}}
		]
	}`)
	rec := postCallback(t, h, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dialog.calls)
}

func TestRejectsMalformedPayload(t *testing.T) {
	h := NewHandler(testSecret, &stubDialog{}, &stubReplier{})

	body := []byte("not json")
	rec := postCallback(t, h, body, sign(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimitDropsExcessMessages(t *testing.T) {
	dialog := &stubDialog{reply: interpreter.Reply{Text: "ok"}}
	h := NewHandler(testSecret, dialog, &stubReplier{})

	for i := 0; i < rateBurst+3; i++ {
		body := textEventBody("U1", "總覽")
		rec := postCallback(t, h, body, sign(body))
		assert.Equal(t, http.StatusOK, rec.Code, "over-limit events are dropped, not erred")
	}
	assert.Len(t, dialog.calls, rateBurst, "burst is served, the rest is shed")
}

func TestHealthz(t *testing.T) {
	h := NewHandler(testSecret, &stubDialog{}, &stubReplier{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
