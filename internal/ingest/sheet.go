package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadSheet 读取上传文件的第一个工作表，首个非空行作为表头
func ReadSheet(r io.Reader, filename string) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Reason: "read upload", Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Reason: "file is empty"}
	}

	var (
		sheet string
		rows  [][]string
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		rows, err = readCSV(data)
	default:
		sheet, rows, err = readWorkbook(data)
	}
	if err != nil {
		return nil, err
	}
	batch, err := BuildBatch(rows)
	if err != nil {
		return nil, err
	}
	batch.Sheet = sheet
	return batch, nil
}

// BuildBatch 把二维字符串表转成 Batch，空行被忽略
func BuildBatch(rows [][]string) (*Batch, error) {
	headerAt := -1
	for i, row := range rows {
		if !blankStrings(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, &ParseError{Reason: "no header row"}
	}

	headers := make([]string, len(rows[headerAt]))
	for i, h := range rows[headerAt] {
		headers[i] = strings.TrimSpace(h)
	}
	batch := &Batch{Headers: nonBlank(headers)}
	for _, raw := range rows[headerAt+1:] {
		cells := make([]Cell, len(raw))
		for i, v := range raw {
			cells[i] = TextCell(v)
		}
		row := NewRawRow(headers, cells)
		if row.IsBlank() {
			continue
		}
		batch.Rows = append(batch.Rows, row)
	}
	if len(batch.Rows) == 0 {
		return nil, &ParseError{Reason: "no data rows"}
	}
	return batch, nil
}

// NewBatch 由客户端预解析的表头和单元格组装 Batch
func NewBatch(headers []string, values [][]Cell) (*Batch, error) {
	if len(nonBlank(headers)) == 0 {
		return nil, &ParseError{Reason: "no header row"}
	}
	batch := &Batch{Headers: nonBlank(headers)}
	for _, v := range values {
		row := NewRawRow(headers, v)
		if row.IsBlank() {
			continue
		}
		batch.Rows = append(batch.Rows, row)
	}
	if len(batch.Rows) == 0 {
		return nil, &ParseError{Reason: "no data rows"}
	}
	return batch, nil
}

func readWorkbook(data []byte) (string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, &ParseError{Reason: "open workbook", Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, &ParseError{Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, &ParseError{Reason: "read sheet " + sheets[0], Err: err}
	}
	return sheets[0], rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Reason: "read csv", Err: err}
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func blankStrings(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
