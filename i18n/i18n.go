/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package i18n

import (
	"github.com/golang/glog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys, also the English text.
const (
	Summary        = "Total issues found: %d (error: %d, warning: %d, info: %d)"
	SummaryUnknown = "Total issues found: %d (error: %d, warning: %d, info: %d, unknown: %d)"
	Clean          = "No issues found."
	Succeeded      = "** LINT SUCCEEDED ** (%s)"
	Failed         = "** LINT FAILED ** (%s)"
	LinesOfCode    = "Lines of code: %d"
	NoFiles        = "warning: %v"
)

var languageMap = map[string]language.Tag{"en": language.English, "zh": language.Chinese}

var zh = map[string]string{
	Summary:        "共发现 %d 个问题（错误：%d，警告：%d，提示：%d）",
	SummaryUnknown: "共发现 %d 个问题（错误：%d，警告：%d，提示：%d，未知：%d）",
	Clean:          "未发现问题。",
	Succeeded:      "** 检查通过 ** (%s)",
	Failed:         "** 检查未通过 ** (%s)",
	LinesOfCode:    "代码行数：%d",
	NoFiles:        "警告：%v",
}

func init() {
	for key, msg := range zh {
		if err := message.SetString(language.Chinese, key, msg); err != nil {
			glog.Errorf("message.SetString(%s): %v", key, err)
		}
	}
}

// GetPrinter returns the printer for lang, falling back to English.
func GetPrinter(lang string) *message.Printer {
	tag, ok := languageMap[lang]
	if !ok {
		if lang != "" {
			glog.Warningf("unsupported language %s, using en", lang)
		}
		tag = language.English
	}
	return message.NewPrinter(tag)
}

func Supported(lang string) bool {
	_, ok := languageMap[lang]
	return ok
}
