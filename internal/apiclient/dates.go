package apiclient

import (
	"regexp"
	"time"
)

// ISO-8601 日期时间前缀（后端的所有时间字段都以此格式序列化）
var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)

// 依次尝试的解析布局：带时区、不带时区
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// NormalizeDates 递归遍历解码后的应答对象，把 ISO 日期形态的字符串换成 time.Time
// 非日期值原样返回；遍历覆盖嵌套的 map 与 slice
func NormalizeDates(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		if isoDatePrefix.MatchString(val) {
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, val); err == nil {
					return t
				}
			}
		}
		return val
	case map[string]interface{}:
		for k, item := range val {
			val[k] = NormalizeDates(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = NormalizeDates(item)
		}
		return val
	default:
		return v
	}
}
