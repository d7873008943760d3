package summarizer

import (
	"fmt"
	"strings"
)

const (
	// HeadingMark starts every section heading in the generated minutes.
	HeadingMark = "■"
	// ItemMark starts every sub-item.
	ItemMark = "・"
)

const summaryPrompt = `以下のテンプレートに従い、議事録のみを日本語で出力してください。余計な説明や挨拶は不要です。
各項目の見出し（議題、日時、議事内容、まとめ）は必ず行頭に『%s』を付けてください。
サブ項目は『%s』で始めてください。
見出しやサブ項目が分かりやすいように出力してください。
---
%s
---

内容：%s`

const minutesTemplate = `1. 議題
2. 日時
   %s
3. 議事内容
4. まとめ`

// BuildPrompt embeds the template, with the meeting date filled in, and the
// recognized text.
func BuildPrompt(text, date string) string {
	template := fmt.Sprintf(minutesTemplate, date)
	return fmt.Sprintf(summaryPrompt, HeadingMark, ItemMark, template, strings.TrimSpace(text))
}
