package render

import "strings"

// Labels are the fixed UI strings placed around article content.
type Labels struct {
	Authors    string
	Published  string
	Updated    string
	CodeHeader string
	Unknown    string
	Invalid    string
}

// ChineseLabels is the default label set.
var ChineseLabels = Labels{
	Authors:    "作者",
	Published:  "发布时间",
	Updated:    "最后更新",
	CodeHeader: "代码示例",
	Unknown:    "未知内容类型",
	Invalid:    "内容缺少必填字段",
}

var EnglishLabels = Labels{
	Authors:    "Authors",
	Published:  "Published",
	Updated:    "Last updated",
	CodeHeader: "Code example",
	Unknown:    "unknown content type",
	Invalid:    "missing required fields",
}

// LabelsFor picks the label set for a locale. Chinese locales get
// ChineseLabels, everything else EnglishLabels.
func LabelsFor(locale string) Labels {
	if locale == "" || strings.HasPrefix(strings.ToLower(locale), "zh") {
		return ChineseLabels
	}
	return EnglishLabels
}
