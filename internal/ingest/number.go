package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)

// CleanNumber 把任意单元格转换成有限数字，无法解析时返回 0，不会报错
func CleanNumber(c Cell) float64 {
	switch c.Kind {
	case CellNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return 0
		}
		return c.Number
	case CellText:
		f, err := strconv.ParseFloat(numericPrefix(c.Text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// CleanDecimal 与 CleanNumber 规则一致，文本直接解析为 decimal 以保留金额精度
func CleanDecimal(c Cell) decimal.Decimal {
	switch c.Kind {
	case CellNumber:
		return decimal.NewFromFloat(CleanNumber(c))
	case CellText:
		d, err := decimal.NewFromString(numericPrefix(c.Text))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// numericPrefix 清理货币符号与分隔符后取出开头的数字部分，没有时返回空串
func numericPrefix(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '$' || r == '€' {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return ""
	}

	s = normalizeSeparators(s)
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}
		return -1
	}, s)

	m := leadingNumber.FindString(s)
	if strings.HasSuffix(m, ".") {
		m = strings.TrimSuffix(m, ".")
	}
	if strings.HasPrefix(m, ".") {
		m = "0" + m
	} else if strings.HasPrefix(m, "-.") {
		m = "-0" + m[1:]
	}
	return m
}

// normalizeSeparators 统一小数点：
// 同时出现 , 与 . 时靠右的一个是小数点；
// 只有逗号时，多个逗号或唯一逗号后恰好三位数字视为千分位，否则视为小数点。
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	if lastComma < 0 {
		return s
	}
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		return commaAsDecimal(s)
	case lastDot >= 0:
		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") > 1 || isThousandsGroup(s[lastComma+1:]):
		return strings.ReplaceAll(s, ",", "")
	default:
		return commaAsDecimal(s)
	}
}

// commaAsDecimal 最后一个逗号作小数点，其余逗号丢弃
func commaAsDecimal(s string) string {
	i := strings.LastIndex(s, ",")
	return strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
}

func isThousandsGroup(tail string) bool {
	digits := 0
	for _, r := range tail {
		if r < '0' || r > '9' {
			break
		}
		digits++
	}
	return digits == 3
}
