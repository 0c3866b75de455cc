package middleware

import (
	"strings"

	"github.com/haierkeys/portfolio-dash/pkg/code"

	"github.com/gin-gonic/gin"
)

// LangKey 请求语言在 gin.Context 中的键
const LangKey = "lang"

// Lang 从 query 或 header 读取语言并写入上下文
// 不支持的语言回退到全局默认语言
func Lang() gin.HandlerFunc {
	supported := map[string]bool{}
	for _, l := range code.GetSupportedLanguages() {
		supported[l] = true
	}

	return func(c *gin.Context) {
		var lang string
		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		} else if s = c.GetHeader("Accept-Language"); len(s) != 0 {
			lang = strings.SplitN(s, ",", 2)[0]
		}

		lang = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), "-", "_"))
		if lang == "zh" {
			lang = "zh_cn"
		}
		if !supported[lang] {
			lang = code.GetGlobalDefaultLang()
		}

		c.Set(LangKey, lang)
		c.Next()
	}
}

// GetLang 获取当前请求语言
func GetLang(c *gin.Context) string {
	if v, ok := c.Get(LangKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return code.GetGlobalDefaultLang()
}
