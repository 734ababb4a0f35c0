package ingest

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name failed: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("set row failed: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook failed: %v", err)
	}
	return buf.Bytes()
}

func TestReadSheetXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"StoneID", "Carat", "Amount$"},
		{"S1", "1,20", "$1,000"},
		{nil, nil, nil},
		{"s2", 1.5, 2200},
	})
	batch, err := ReadSheet(bytes.NewReader(data), "vendor.xlsx")
	if err != nil {
		t.Fatalf("read sheet failed: %v", err)
	}
	if batch.Sheet != "Sheet1" {
		t.Fatalf("unexpected sheet: %s", batch.Sheet)
	}
	if len(batch.Headers) != 3 || len(batch.Rows) != 2 {
		t.Fatalf("unexpected batch: headers=%v rows=%d", batch.Headers, len(batch.Rows))
	}
	rec, ok := NormalizeRow(batch.Rows[1])
	if !ok || rec.SKU != "S2" || rec.Carat != 1.5 || rec.TotalAmount.StringFixed(2) != "2200.00" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestReadSheetCSVWithBOM(t *testing.T) {
	data := "\xEF\xBB\xBFStone ID,Shape,Price\nab1,oval,\"1,500\"\n,,\n"
	batch, err := ReadSheet(strings.NewReader(data), "stones.csv")
	if err != nil {
		t.Fatalf("read csv failed: %v", err)
	}
	if batch.Headers[0] != "Stone ID" {
		t.Fatalf("bom should be stripped: %q", batch.Headers[0])
	}
	if len(batch.Rows) != 1 {
		t.Fatalf("blank rows should be skipped: %d", len(batch.Rows))
	}
	rec, ok := NormalizeRow(batch.Rows[0])
	if !ok || rec.SKU != "AB1" || rec.Shape != "OVAL" || rec.TotalAmount.StringFixed(2) != "1500.00" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestReadSheetParseErrors(t *testing.T) {
	cases := map[string]struct {
		data string
		name string
	}{
		"empty":       {data: "", name: "a.xlsx"},
		"corrupt":     {data: "not a zip", name: "a.xlsx"},
		"header only": {data: "SKU,Carat\n", name: "a.csv"},
	}
	for name, tc := range cases {
		_, err := ReadSheet(strings.NewReader(tc.data), tc.name)
		if !errors.Is(err, ErrParse) {
			t.Fatalf("%s: expected parse error, got %v", name, err)
		}
	}
}

func TestNewBatchFromClientRows(t *testing.T) {
	batch, err := NewBatch([]string{"SKU", "", "Carat"}, [][]Cell{
		{TextCell("x1"), TextCell("ignored"), NumberCell(0.7)},
		{},
	})
	if err != nil {
		t.Fatalf("new batch failed: %v", err)
	}
	if len(batch.Rows) != 1 || len(batch.Rows[0]) != 2 {
		t.Fatalf("unexpected rows: %+v", batch.Rows)
	}
	if _, err := NewBatch(nil, nil); !errors.Is(err, ErrParse) {
		t.Fatalf("missing headers should be a parse error")
	}
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		t.Fatalf("write template failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open template failed: %v", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(templateSheet)
	if err != nil {
		t.Fatalf("get rows failed: %v", err)
	}
	if len(rows) != 1 || len(rows[0]) != len(TemplateHeaders) {
		t.Fatalf("unexpected template rows: %v", rows)
	}

	headers := rows[0]
	row := NewRawRow(headers, []Cell{TextCell("T-1"), {}, TextCell("pear"), TextCell("2.01")})
	out, err := NewReconciler(newMemoryStore(), nil).Propose(context.Background(), Batch{Headers: headers, Rows: []RawRow{row}})
	if err != nil || !out.Completed() {
		t.Fatalf("template headers should import cleanly: %v", err)
	}
}
