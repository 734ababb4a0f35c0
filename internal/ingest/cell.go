package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellKind 单元格取值类型
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell 表格单元格，取值为空、文本或数字之一
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell 文本单元格，空白文本视为空
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell 数字单元格
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Number: f}
}

// IsBlank 单元格是否没有可用内容
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	case CellNumber:
		return false
	default:
		return true
	}
}

// String 返回单元格的文本形式，数字不带多余的零
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return ""
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON 按原始类型输出
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellText:
		return json.Marshal(c.Text)
	case CellNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(c.Number)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON 接受 string / number / null，布尔值按文本处理
func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = Cell{}
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = TextCell(s)
		return nil
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*c = TextCell(strconv.FormatBool(v))
		return nil
	case '{', '[':
		return fmt.Errorf("ingest: unsupported cell value %s", string(b))
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*c = NumberCell(f)
		return nil
	}
}

// Field 表头与单元格
type Field struct {
	Header string `json:"header"`
	Value  Cell   `json:"value"`
}

// RawRow 未经映射的一行数据，保持表格中的列顺序
type RawRow []Field

// NewRawRow 按表头顺序组装一行，缺失的单元格视为空
func NewRawRow(headers []string, values []Cell) RawRow {
	row := make(RawRow, 0, len(headers))
	for i, h := range headers {
		if strings.TrimSpace(h) == "" {
			continue
		}
		var v Cell
		if i < len(values) {
			v = values[i]
		}
		row = append(row, Field{Header: h, Value: v})
	}
	return row
}

// IsBlank 整行都为空
func (r RawRow) IsBlank() bool {
	for _, f := range r {
		if !f.Value.IsBlank() {
			return false
		}
	}
	return true
}
