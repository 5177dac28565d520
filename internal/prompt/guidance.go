package prompt

import (
	"strings"

	"go-translation-studio/pkg/models"
)

// GuidanceSection renders the 翻译指导 block, listing only the guidance fields
// the user supplied. With no guidance at all a fixed no-requirements line is
// used instead, so the section is never empty.
func GuidanceSection(req models.Requirements) string {
	var b strings.Builder
	b.WriteString("###翻译指导\n")

	if req.HasIntent() {
		b.WriteString("- 翻译意图/受众：")
		b.WriteString(req.Intent)
		b.WriteString("\n")
	}
	if req.HasReference() {
		b.WriteString("- 参考译文风格，请总结并学习以下参考译文的风格：")
		b.WriteString(req.Reference)
		b.WriteString("\n")
	}
	if req.HasDirectRequest() {
		b.WriteString("- 直接要求：")
		b.WriteString(req.DirectRequest)
		b.WriteString("\n")
	}
	if req.GuidanceCount() == 0 {
		b.WriteString("- 无特殊要求，请按照标准翻译规范进行翻译。\n")
	}

	return b.String()
}
