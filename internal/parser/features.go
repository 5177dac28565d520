package parser

import (
	"strings"

	"go-translation-studio/pkg/models"
)

const (
	defaultTextType  = "一般文本"
	defaultTextStyle = "中性语体"
)

// ClassifyTextFeatures buckets a free-form characteristics description into a
// coarse type and register by keyword. Unknown content keeps the defaults.
func ClassifyTextFeatures(characteristics string) models.TextFeatures {
	features := models.TextFeatures{Type: defaultTextType, Style: defaultTextStyle}

	switch {
	case strings.Contains(characteristics, "商务") || strings.Contains(characteristics, "商业"):
		features.Type = "商务文本"
	case strings.Contains(characteristics, "学术") || strings.Contains(characteristics, "研究"):
		features.Type = "学术文本"
	case strings.Contains(characteristics, "法律") || strings.Contains(characteristics, "合同"):
		features.Type = "法律文本"
	}

	switch {
	case strings.Contains(characteristics, "正式") || strings.Contains(characteristics, "官方"):
		features.Style = "正式语体"
	case strings.Contains(characteristics, "礼貌") || strings.Contains(characteristics, "客气"):
		features.Style = "礼貌语体"
	}

	return features
}
