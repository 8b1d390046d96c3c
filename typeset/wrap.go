package typeset

import "strings"

// Wrap 把 text 拆分为宽度不超过 maxWidth 的行。
//
// 整段文本已窄于 maxWidth 时原样返回单行；否则按空白分词贪心装行，
// 行内单词以单个空格连接。单个放不下的单词独占一行且不会被拆开，
// 这是唯一可能超出 maxWidth 的情况。
func Wrap(text string, face Face, maxWidth int) []string {
	if w, _ := face.Measure(text); w < maxWidth {
		return []string{text}
	}

	words := strings.Fields(text)
	lines := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		line := ""
		for i < len(words) {
			candidate := words[i]
			if line != "" {
				candidate = line + " " + words[i]
			}
			if w, _ := face.Measure(candidate); w > maxWidth {
				break
			}
			line = candidate
			i++
		}
		if line == "" {
			line = words[i]
			i++
		}
		lines = append(lines, line)
	}
	return lines
}
