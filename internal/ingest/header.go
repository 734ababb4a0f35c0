package ingest

import (
	"strings"
	"unicode"
)

// minSubstringAlias 短于该长度的别名只做整词匹配（例如 id 不应命中 width）
const minSubstringAlias = 3

// NormalizeHeader 去掉空白、下划线、连字符后转小写
func NormalizeHeader(header string) string {
	var b strings.Builder
	b.Grow(len(header))
	for _, r := range header {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Resolve 在一行中查找与别名匹配的列并返回其单元格。
//
// 匹配分两轮，每轮都按列的原始顺序扫描：
//  1. 规范化后的表头与任一别名完全相等；
//  2. 规范化后的表头包含任一别名（仅限长度 >= 3 的别名）。
//
// 第一轮命中即返回，因此 "Stone ID" 会优先于 "Stone ID Old Ref" 之类的列。
// 同一轮内多列命中时取最靠左的一列。
func Resolve(row RawRow, aliases []string) (Cell, bool) {
	keys := normalizeAliases(aliases)
	if len(keys) == 0 {
		return Cell{}, false
	}
	normalized := make([]string, len(row))
	for i, f := range row {
		normalized[i] = NormalizeHeader(f.Header)
	}

	for i, h := range normalized {
		for _, k := range keys {
			if h == k {
				return row[i].Value, true
			}
		}
	}
	for i, h := range normalized {
		for _, k := range keys {
			if len(k) >= minSubstringAlias && strings.Contains(h, k) {
				return row[i].Value, true
			}
		}
	}
	return Cell{}, false
}

// ResolveHeader 返回命中的表头名，用于诊断映射结果
func ResolveHeader(headers []string, aliases []string) (string, bool) {
	row := make(RawRow, len(headers))
	for i, h := range headers {
		row[i] = Field{Header: h, Value: TextCell(h)}
	}
	cell, ok := Resolve(row, aliases)
	if !ok {
		return "", false
	}
	return cell.Text, true
}

func normalizeAliases(aliases []string) []string {
	keys := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if k := NormalizeHeader(a); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
