package ingest

import "testing"

func TestNormalizeRowAppliesDefaultsAndCase(t *testing.T) {
	row := NewRawRow(
		[]string{"Stone No", "Stock ID", "shape ", "Clr", "Purity", "Weight", "Photo", "Price"},
		[]Cell{TextCell("x"), TextCell("  ab12 "), TextCell("round"), TextCell("f"), TextCell("vs2"), TextCell("0,90"), TextCell(" https://cdn/x.jpg "), TextCell("$3,400")},
	)
	rec, ok := NormalizeRow(row)
	if !ok {
		t.Fatalf("row should normalize")
	}
	if rec.SKU != "AB12" {
		t.Fatalf("unexpected sku: %q", rec.SKU)
	}
	if rec.Lab != "GLI" {
		t.Fatalf("lab should default to GLI, got %q", rec.Lab)
	}
	if rec.Shape != "ROUND" || rec.Color != "F" || rec.Clarity != "VS2" {
		t.Fatalf("text fields should be uppercased: %+v", rec)
	}
	if rec.Cut != "" {
		t.Fatalf("import flow leaves cut empty, got %q", rec.Cut)
	}
	if rec.Carat != 0.9 {
		t.Fatalf("unexpected carat: %v", rec.Carat)
	}
	if rec.TotalAmount.StringFixed(2) != "3400.00" {
		t.Fatalf("unexpected amount: %s", rec.TotalAmount)
	}
	if rec.ImageURL != "https://cdn/x.jpg" {
		t.Fatalf("image url should only be trimmed: %q", rec.ImageURL)
	}
	if rec.Status != "In Stock" || rec.Priority != 0 {
		t.Fatalf("unexpected status/priority: %q %d", rec.Status, rec.Priority)
	}
	if rec.Length != 0 || rec.Width != 0 || rec.Height != 0 {
		t.Fatalf("missing measurements should be zero")
	}
}

func TestNormalizeRowRejectsMissingSKU(t *testing.T) {
	rows := []RawRow{
		NewRawRow([]string{"Shape", "Carat"}, []Cell{TextCell("OVAL"), TextCell("1")}),
		NewRawRow([]string{"SKU", "Carat"}, []Cell{TextCell("   "), TextCell("1")}),
		NewRawRow([]string{"SKU", "Carat"}, []Cell{{}, TextCell("1")}),
	}
	for i, row := range rows {
		if _, ok := NormalizeRow(row); ok {
			t.Fatalf("row %d should be rejected", i)
		}
	}
}

func TestNormalizerCustomDefaults(t *testing.T) {
	n := DefaultNormalizer()
	n.Defaults.Cut = "EX"
	rec, ok := n.Normalize(NewRawRow([]string{"sku"}, []Cell{NumberCell(1001)}))
	if !ok {
		t.Fatalf("numeric sku should normalize")
	}
	if rec.SKU != "1001" || rec.Cut != "EX" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestDedupLastWriteWins(t *testing.T) {
	in := []Record{{SKU: "A", Carat: 1}, {SKU: "A", Carat: 2}}
	out, report := Dedup(in)
	if len(out) != 1 || out[0].SKU != "A" || out[0].Carat != 2 {
		t.Fatalf("unexpected dedup result: %+v", out)
	}
	if report.Removed != 1 || len(report.SKUs) != 1 || report.SKUs[0] != "A" {
		t.Fatalf("unexpected report: %+v", report)
	}

	again, second := Dedup(out)
	if len(again) != 1 || again[0].Carat != 2 || second.Removed != 0 {
		t.Fatalf("dedup should be idempotent")
	}
}

func TestDedupKeepsFirstPosition(t *testing.T) {
	in := []Record{{SKU: "A", Carat: 1}, {SKU: "B"}, {SKU: "A", Carat: 3}, {SKU: "C"}, {SKU: "A", Carat: 4}}
	out, report := Dedup(in)
	got := SKUs(out)
	want := []string{"A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
	if out[0].Carat != 4 || report.Removed != 2 || len(report.SKUs) != 1 {
		t.Fatalf("unexpected result: %+v %+v", out, report)
	}
}
