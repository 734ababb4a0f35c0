package ingest

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCleanNumber(t *testing.T) {
	cases := []struct {
		name string
		in   Cell
		want float64
	}{
		{name: "null", in: Cell{}, want: 0},
		{name: "empty", in: TextCell(""), want: 0},
		{name: "letters", in: TextCell("abc"), want: 0},
		{name: "decimal comma", in: TextCell("1,5"), want: 1.5},
		{name: "two decimals comma", in: TextCell("1,20"), want: 1.2},
		{name: "dollar thousands", in: TextCell("$2,000"), want: 2000},
		{name: "euro", in: TextCell("€ 1.250,50"), want: 1250.5},
		{name: "us grouping", in: TextCell("12,345.67"), want: 12345.67},
		{name: "many groups", in: TextCell("1,234,567"), want: 1234567},
		{name: "spaces", in: TextCell(" 3 000 "), want: 3000},
		{name: "suffix", in: TextCell("1.01ct"), want: 1.01},
		{name: "negative", in: TextCell("-4.5"), want: -4.5},
		{name: "leading dot", in: TextCell(".75"), want: 0.75},
		{name: "number cell", in: NumberCell(1.3), want: 1.3},
		{name: "nan cell", in: NumberCell(math.NaN()), want: 0},
		{name: "inf cell", in: NumberCell(math.Inf(1)), want: 0},
		{name: "only minus", in: TextCell("-"), want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanNumber(tc.in)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("CleanNumber(%q) = %v, want %v", tc.in.String(), got, tc.want)
			}
		})
	}
}

func TestCleanDecimalKeepsPrecision(t *testing.T) {
	if got := CleanDecimal(TextCell("$1,000")).String(); got != "1000" {
		t.Fatalf("unexpected amount: %s", got)
	}
	if got := CleanDecimal(TextCell("0,10")).StringFixed(2); got != "0.10" {
		t.Fatalf("unexpected amount: %s", got)
	}
	if !CleanDecimal(TextCell("n/a")).IsZero() {
		t.Fatalf("unparseable amount should be zero")
	}
}

func TestCellJSONVariants(t *testing.T) {
	var cells []Cell
	if err := json.Unmarshal([]byte(`["S1", 1.2, null, "", true]`), &cells); err != nil {
		t.Fatalf("unmarshal cells failed: %v", err)
	}
	if cells[0].Kind != CellText || cells[0].Text != "S1" {
		t.Fatalf("unexpected text cell: %+v", cells[0])
	}
	if cells[1].Kind != CellNumber || cells[1].Number != 1.2 {
		t.Fatalf("unexpected number cell: %+v", cells[1])
	}
	if cells[2].Kind != CellEmpty || cells[3].Kind != CellEmpty {
		t.Fatalf("null and blank should be empty")
	}
	if cells[4].Text != "true" {
		t.Fatalf("bool should become text")
	}
	if err := json.Unmarshal([]byte(`[{"a":1}]`), &cells); err == nil {
		t.Fatalf("object cell should be rejected")
	}
}
