// internal/line/menu.go
package line

// menuLabels are the quick-reply buttons, in display order. Each label's
// tap sends itself back as a message, so the labels map 1:1 to the bare
// command triggers the interpreter understands.
var menuLabels = []string{"新增", "查詢", "補貨", "販售", "調貨", "刪除", "總覽", "紀錄"}

const menuPrompt = "請選擇功能："

// MenuMessage builds the function-menu message.
func MenuMessage() Message {
	items := make([]QuickReplyItem, len(menuLabels))
	for i, label := range menuLabels {
		items[i] = QuickReplyItem{
			Type:   "action",
			Action: QuickAction{Type: "message", Label: label, Text: label},
		}
	}
	return Message{
		Type:       "text",
		Text:       menuPrompt,
		QuickReply: &QuickReply{Items: items},
	}
}
