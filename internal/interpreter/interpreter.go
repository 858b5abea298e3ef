// internal/interpreter/interpreter.go
package interpreter

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"stockline/internal/inventory"
	"stockline/internal/session"
)

// AuditTailer exposes the audit log's read side for the 紀錄 command.
type AuditTailer interface {
	Tail(n int) (string, error)
}

// Reply is the interpreter's answer to one inbound message. ShowMenu tells
// the transport to attach the quick-choice function menu.
type Reply struct {
	Text     string
	ShowMenu bool
}

// Interpreter parses inbound text into engine calls. Each message is either
// routed into the user's active dialogue, recognized as a menu trigger or a
// bare action trigger, or parsed as a one-shot fully-specified command.
type Interpreter struct {
	inv      inventory.Service
	sessions *session.Manager
	audit    AuditTailer
	tracer   trace.Tracer
	commands metric.Int64Counter
}

// New creates an interpreter over the given engine, session manager and
// audit log.
func New(inv inventory.Service, sessions *session.Manager, audit AuditTailer) *Interpreter {
	meter := otel.Meter("stockline/interpreter")
	commands, _ := meter.Int64Counter("interpreter.commands",
		metric.WithDescription("inbound messages handled, by entry mode"))

	return &Interpreter{
		inv:      inv,
		sessions: sessions,
		audit:    audit,
		tracer:   otel.Tracer("stockline/interpreter"),
		commands: commands,
	}
}

// menuTriggers are the tokens that open the function menu without touching
// any state. Matching is case-insensitive.
var menuTriggers = map[string]bool{
	"menu": true,
	"功能":   true,
	"選單":   true,
}

// actionTriggers map a bare keyword (no further arguments) to the guided
// dialogue it starts.
var actionTriggers = map[string]session.Action{
	"新增": session.ActionAdd,
	"查詢": session.ActionSearch,
	"補貨": session.ActionRestock,
	"販售": session.ActionSell,
	"調貨": session.ActionTransfer,
	"刪除": session.ActionDelete,
}

// Handle processes one inbound message for one user. Messages from the same
// user are serialized through the session manager; messages from different
// users run concurrently.
func (i *Interpreter) Handle(ctx context.Context, userID, text string) Reply {
	text = strings.TrimSpace(text)

	var reply Reply
	i.sessions.Do(userID, func() {
		reply = i.dispatch(ctx, userID, text)
	})
	return reply
}

func (i *Interpreter) dispatch(ctx context.Context, userID, text string) Reply {
	ctx, span := i.tracer.Start(ctx, "interpreter.dispatch")
	defer span.End()

	mode := "oneshot"
	defer func() {
		span.SetAttributes(attribute.String("entry.mode", mode))
		i.commands.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
	}()

	if sess, ok := i.sessions.Get(userID); ok {
		mode = "session"
		return Reply{Text: i.step(ctx, userID, sess, text), ShowMenu: true}
	}

	if menuTriggers[strings.ToLower(text)] {
		mode = "menu"
		return Reply{ShowMenu: true}
	}

	if action, ok := actionTriggers[text]; ok {
		mode = "trigger"
		i.sessions.Put(userID, session.New(action))
		return Reply{Text: firstPrompt(action)}
	}

	return Reply{Text: i.oneShot(ctx, userID, text), ShowMenu: true}
}

// failureText converts an engine error into the user-facing message for the
// operation that produced it. Nothing from the engine propagates past here.
func failureText(action session.Action, err error) string {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return "查無此商品代碼"
	case errors.Is(err, inventory.ErrDuplicateCode):
		return "代碼重複，請重試"
	case errors.Is(err, inventory.ErrInvalidQuantity):
		return "錯誤：數量必須為非負整數"
	case errors.Is(err, inventory.ErrInvalidLocation),
		errors.Is(err, inventory.ErrInsufficientStock) && action == session.ActionDelete:
		return "刪除失敗：數量不足或地點錯誤"
	case errors.Is(err, inventory.ErrInsufficientStock) && action == session.ActionSell:
		return "庫存不足，請到倉庫補貨"
	case errors.Is(err, inventory.ErrInsufficientStock) && action == session.ActionTransfer:
		return "倉庫庫存不足"
	default:
		return "錯誤：系統處理失敗，請稍後再試"
	}
}

// render collapses an engine (result, error) pair into reply text.
func render(action session.Action, result string, err error) string {
	if err != nil {
		return failureText(action, err)
	}
	return result
}
