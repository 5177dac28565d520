package prompt

import (
	"fmt"
	"strings"
)

// BuildLegacyPrompt builds the prompt-list analysis prompt kept for older
// clients. The requested response sections mirror which analysis names appear
// in the prompt list.
func BuildLegacyPrompt(text string, prompts []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "请分析以下文本：\n\n%s\n\n", text)
	b.WriteString("请按照以下要求进行分析：\n\n")
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	b.WriteString("\n请严格按照以下格式提供回复：\n\n")

	if anyContains(prompts, "文本特征") {
		b.WriteString("1. 文本特征：\n[分析文本类型和语体风格]\n\n")
	}
	if anyContains(prompts, "专业术语") {
		b.WriteString("2. 专业术语：\n[列出重要术语及其中阿翻译策略]\n\n")
	}
	if anyContains(prompts, "翻译建议") {
		b.WriteString("3. 翻译建议：\n[提供具体的中阿翻译改进建议]\n")
	}

	return b.String()
}

func anyContains(prompts []string, keyword string) bool {
	for _, p := range prompts {
		if strings.Contains(p, keyword) {
			return true
		}
	}
	return false
}
