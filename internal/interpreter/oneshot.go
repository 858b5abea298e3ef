// internal/interpreter/oneshot.go
package interpreter

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"stockline/internal/session"
)

const (
	msgUnknownCommand = "無效指令，請使用『功能』選單或輸入完整指令"
	msgMissingArgs    = "錯誤：指令參數不足"
	msgArgNotNumber   = "錯誤：數量必須是數字"

	defaultTailLines = 5
)

// Parse failures in the one-shot grammar. These never leave the interpreter;
// they select the generic error reply instead of trapping a panic the way
// string-splitting parsers tend to.
var (
	errMissingArgs = errors.New("missing arguments")
	errNotANumber  = errors.New("not a number")
)

// oneShot dispatches a fully-specified single-message command:
//
//	新增 <name> <category> <size> <qty>
//	查詢 <keyword...>
//	補貨 <code> <qty>
//	販售 <code> <qty>
//	調貨 <code> <qty>
//	刪除 <code> <qty> <location>
//	總覽
//	紀錄 [n]
func (i *Interpreter) oneShot(ctx context.Context, userID, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return msgUnknownCommand
	}
	verb, args := fields[0], fields[1:]

	switch verb {
	case "查詢":
		result, err := i.inv.Search(ctx, strings.Join(args, " "))
		return render(session.ActionSearch, result, err)

	case "總覽":
		result, err := i.inv.Overview(ctx)
		return render("", result, err)

	case "補貨":
		code, qty, err := codeAndQty(args)
		if err != nil {
			return parseFailureText(err)
		}
		result, err := i.inv.Restock(ctx, userID, code, qty)
		return render(session.ActionRestock, result, err)

	case "販售":
		code, qty, err := codeAndQty(args)
		if err != nil {
			return parseFailureText(err)
		}
		result, err := i.inv.Sell(ctx, userID, code, qty)
		return render(session.ActionSell, result, err)

	case "調貨":
		code, qty, err := codeAndQty(args)
		if err != nil {
			return parseFailureText(err)
		}
		result, err := i.inv.Transfer(ctx, userID, code, qty)
		return render(session.ActionTransfer, result, err)

	case "新增":
		if len(args) < 4 {
			return msgMissingArgs
		}
		qty, err := parseQty(args[3])
		if err != nil {
			return parseFailureText(err)
		}
		result, err := i.inv.Add(ctx, userID, args[0], args[1], args[2], qty)
		return render(session.ActionAdd, result, err)

	case "刪除":
		if len(args) < 3 {
			return msgMissingArgs
		}
		qty, err := parseQty(args[1])
		if err != nil {
			return parseFailureText(err)
		}
		result, err := i.inv.Delete(ctx, userID, args[0], qty, args[2])
		return render(session.ActionDelete, result, err)

	case "紀錄":
		n := defaultTailLines
		if len(args) > 0 {
			// A non-numeric count is not an error; fall back to the default.
			if v, err := strconv.Atoi(args[0]); err == nil {
				n = v
			}
		}
		tail, err := i.audit.Tail(n)
		if err != nil {
			return "錯誤：無法讀取操作紀錄"
		}
		return tail

	default:
		return msgUnknownCommand
	}
}

func codeAndQty(args []string) (string, int, error) {
	if len(args) < 2 {
		return "", 0, errMissingArgs
	}
	qty, err := parseQty(args[1])
	if err != nil {
		return "", 0, err
	}
	return args[0], qty, nil
}

func parseQty(arg string) (int, error) {
	qty, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errNotANumber
	}
	return qty, nil
}

func parseFailureText(err error) string {
	if errors.Is(err, errMissingArgs) {
		return msgMissingArgs
	}
	return msgArgNotNumber
}
