package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleZH = "zh-CN"
	LocaleTW = "zh-TW"
	LocaleEN = "en-US"
)

// DefaultLocale 未识别语言时的回退
const DefaultLocale = LocaleZH

const localeHeader = "X-Locale"

var catalogs = map[string]map[string]string{
	LocaleZH: zhCN,
	LocaleTW: zhTW,
	LocaleEN: enUS,
}

// NormalizeLocale 把 zh / zh_tw / en-GB 等写法归一到支持的语言
func NormalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.ReplaceAll(value, "_", "-")
	switch {
	case value == "":
		return ""
	case strings.HasPrefix(value, "zh-tw"), strings.HasPrefix(value, "zh-hk"), strings.HasPrefix(value, "zh-hant"):
		return LocaleTW
	case strings.HasPrefix(value, "zh"):
		return LocaleZH
	case strings.HasPrefix(value, "en"):
		return LocaleEN
	default:
		return ""
	}
}

// ResolveLocale 依次读取 lang 参数、X-Locale 与 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale := NormalizeLocale(c.Query("lang")); locale != "" {
		return locale
	}
	if locale := NormalizeLocale(c.GetHeader(localeHeader)); locale != "" {
		return locale
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := NormalizeLocale(tag); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// T 取文案，缺失时回退默认语言，再缺失返回键本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 取文案并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func lookup(locale, key string) (string, bool) {
	normalized := NormalizeLocale(locale)
	if normalized == "" {
		normalized = DefaultLocale
	}
	catalog, ok := catalogs[normalized]
	if !ok {
		return "", false
	}
	msg, ok := catalog[key]
	return msg, ok
}
