// internal/interpreter/steps.go
package interpreter

import (
	"context"
	"strconv"
	"strings"

	"stockline/internal/session"
)

// Dialogue prompts. Each step's reply both acknowledges the previous answer
// and asks for the next field.
const (
	promptName       = "請輸入商品名稱："
	promptNameOrCode = "請輸入商品名稱或代碼："
	promptCode       = "請輸入商品代碼："
	promptCategory   = "請輸入分類（衣物／背包／杯具／帽子／配件／徽章磁鐵）："
	promptSize       = "請輸入尺寸（S ~ 5XL，若無尺寸請輸入 無）："
	promptQty        = "請輸入數量："
	promptLocation   = "請輸入地點（中心 或 倉庫）："

	msgBadQuantity = "請輸入正確的數字作為數量"
	msgBadLocation = "請輸入「中心」或「倉庫」"
)

// firstPrompt is the reply sent when a bare trigger opens a session.
func firstPrompt(action session.Action) string {
	switch action {
	case session.ActionAdd:
		return promptName
	case session.ActionSearch:
		return promptNameOrCode
	default:
		return promptCode
	}
}

// step routes a message into the user's active dialogue. The step machines
// are linear; the only loops are re-prompts on invalid input, which keep the
// session (and everything collected so far) at the current step. Completion
// clears the session before invoking the engine, so the outcome of the final
// call never leaves a stale dialogue behind.
func (i *Interpreter) step(ctx context.Context, userID string, sess *session.Session, text string) string {
	switch sess.Action {
	case session.ActionAdd:
		return i.addStep(ctx, userID, sess, text)
	case session.ActionRestock, session.ActionSell, session.ActionTransfer:
		return i.movementStep(ctx, userID, sess, text)
	case session.ActionDelete:
		return i.deleteStep(ctx, userID, sess, text)
	case session.ActionSearch:
		i.sessions.Clear(userID)
		result, err := i.inv.Search(ctx, text)
		return render(sess.Action, result, err)
	default:
		// Unreachable unless a session was stored with an unknown action.
		i.sessions.Clear(userID)
		return "錯誤：對話狀態異常，請重新開始"
	}
}

func (i *Interpreter) addStep(ctx context.Context, userID string, sess *session.Session, text string) string {
	switch sess.Step {
	case 1:
		sess.Data["name"] = text
		sess.Step = 2
		return promptCategory
	case 2:
		sess.Data["category"] = text
		sess.Step = 3
		return promptSize
	case 3:
		sess.Data["size"] = text
		sess.Step = 4
		return promptQty
	default:
		qty, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return msgBadQuantity
		}
		i.sessions.Clear(userID)
		result, err := i.inv.Add(ctx, userID, sess.Data["name"], sess.Data["category"], sess.Data["size"], qty)
		return render(sess.Action, result, err)
	}
}

func (i *Interpreter) movementStep(ctx context.Context, userID string, sess *session.Session, text string) string {
	switch sess.Step {
	case 1:
		sess.Data["code"] = text
		sess.Step = 2
		return promptQty
	default:
		qty, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return msgBadQuantity
		}
		i.sessions.Clear(userID)
		code := sess.Data["code"]
		switch sess.Action {
		case session.ActionRestock:
			result, err := i.inv.Restock(ctx, userID, code, qty)
			return render(sess.Action, result, err)
		case session.ActionSell:
			result, err := i.inv.Sell(ctx, userID, code, qty)
			return render(sess.Action, result, err)
		default:
			result, err := i.inv.Transfer(ctx, userID, code, qty)
			return render(sess.Action, result, err)
		}
	}
}

func (i *Interpreter) deleteStep(ctx context.Context, userID string, sess *session.Session, text string) string {
	switch sess.Step {
	case 1:
		sess.Data["code"] = text
		sess.Step = 2
		return promptQty
	case 2:
		qty, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return msgBadQuantity
		}
		sess.Data["qty"] = strconv.Itoa(qty)
		sess.Step = 3
		return promptLocation
	default:
		location := strings.TrimSpace(text)
		if location != "中心" && location != "倉庫" {
			return msgBadLocation
		}
		i.sessions.Clear(userID)
		qty, _ := strconv.Atoi(sess.Data["qty"])
		result, err := i.inv.Delete(ctx, userID, sess.Data["code"], qty, location)
		return render(sess.Action, result, err)
	}
}
