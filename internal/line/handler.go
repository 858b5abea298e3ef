// internal/line/handler.go
package line

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"stockline/internal/interpreter"
)

// Dialog is the interpreter side of the transport boundary: one inbound
// text plus a user identity in, one reply out.
type Dialog interface {
	Handle(ctx context.Context, userID, text string) interpreter.Reply
}

// Replier delivers the outbound side. Satisfied by *Client.
type Replier interface {
	Reply(ctx context.Context, replyToken string, messages []Message) error
}

// Per-user inbound rate limit. Chat input is human-paced; anything hotter
// than this is a loop or an abuse script and gets dropped.
const (
	rateLimit = rate.Limit(1)
	rateBurst = 5
)

// Handler terminates the messaging platform webhook. It verifies message
// origin before any text reaches the interpreter, fans replies back out
// through the Replier, and renders the quick-reply menu.
type Handler struct {
	secret  []byte
	dialog  Dialog
	replier Replier

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHandler creates a webhook handler. channelSecret signs every inbound
// request body; a request that does not verify is rejected with 400 before
// the interpreter sees it.
func NewHandler(channelSecret string, dialog Dialog, replier Replier) *Handler {
	return &Handler{
		secret:   []byte(channelSecret),
		dialog:   dialog,
		replier:  replier,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Routes mounts the webhook endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/callback", h.handleCallback)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

// webhookRequest is the inbound envelope. Only text-message events are
// processed; everything else (follows, stickers, redeliveries of other
// types) is acknowledged and skipped.
type webhookRequest struct {
	Destination string         `json:"destination"`
	Events      []webhookEvent `json:"events"`
}

type webhookEvent struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"message"`
}

func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if !h.verifySignature(body, r.Header.Get("X-Line-Signature")) {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	req, err := decodeWebhook(body)
	if err != nil {
		http.Error(w, "malformed webhook payload", http.StatusBadRequest)
		return
	}

	deliveryID := uuid.NewString()
	for _, event := range req.Events {
		if event.Type != "message" || event.Message.Type != "text" {
			continue
		}
		h.handleTextEvent(r.Context(), deliveryID, event)
	}

	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "OK")
}

func (h *Handler) handleTextEvent(ctx context.Context, deliveryID string, event webhookEvent) {
	userID := event.Source.UserID
	if userID == "" || !h.limiter(userID).Allow() {
		return
	}

	reply := h.dialog.Handle(ctx, userID, event.Message.Text)

	var messages []Message
	if reply.Text != "" {
		messages = append(messages, TextMessage(reply.Text))
	}
	if reply.ShowMenu {
		messages = append(messages, MenuMessage())
	}
	if len(messages) == 0 {
		return
	}

	if err := h.replier.Reply(ctx, event.ReplyToken, messages); err != nil {
		log.Printf("delivery %s: reply to %s failed: %v", deliveryID, userID, err)
	}
}

func decodeWebhook(body []byte) (*webhookRequest, error) {
	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// verifySignature checks base64(HMAC-SHA256(secret, body)) against the
// signature header in constant time.
func (h *Handler) verifySignature(body []byte, signature string) bool {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}

func (h *Handler) limiter(userID string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rateLimit, rateBurst)
		h.limiters[userID] = l
	}
	return l
}
