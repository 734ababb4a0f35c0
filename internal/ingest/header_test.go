package ingest

import "testing"

func TestResolveMatchesNormalizedHeader(t *testing.T) {
	row := RawRow{{Header: "Stone_ID ", Value: TextCell("ABC1")}}
	got, ok := Resolve(row, []string{"stoneid", "sku"})
	if !ok {
		t.Fatalf("expected header to resolve")
	}
	if got.String() != "ABC1" {
		t.Fatalf("unexpected value: %q", got.String())
	}
}

func TestResolveHeaderVariants(t *testing.T) {
	variants := []string{"SKU", " sku ", "S-K-U", "s_k_u", "Sku"}
	for _, h := range variants {
		row := RawRow{{Header: "Shape", Value: TextCell("ROUND")}, {Header: h, Value: TextCell("X1")}}
		got, ok := Resolve(row, []string{"stoneid", "sku"})
		if !ok || got.String() != "X1" {
			t.Fatalf("header %q: got %q ok=%v", h, got.String(), ok)
		}
	}
}

func TestResolveExactBeatsSubstring(t *testing.T) {
	row := RawRow{
		{Header: "Amount Per Carat", Value: TextCell("500")},
		{Header: "Amount", Value: TextCell("1000")},
	}
	got, ok := Resolve(row, []string{"amount"})
	if !ok || got.String() != "1000" {
		t.Fatalf("exact header should win, got %q", got.String())
	}
}

func TestResolveSubstringUsesColumnOrder(t *testing.T) {
	row := RawRow{
		{Header: "Amount$", Value: TextCell("$1,000")},
		{Header: "Price USD", Value: TextCell("900")},
	}
	got, ok := Resolve(row, []string{"totalamount", "amount", "price"})
	if !ok || got.String() != "$1,000" {
		t.Fatalf("leftmost substring match should win, got %q", got.String())
	}
}

func TestResolveShortAliasOnlyExact(t *testing.T) {
	row := RawRow{{Header: "Width", Value: TextCell("6.5")}}
	if _, ok := Resolve(row, DefaultAliases[FieldSKU]); ok {
		t.Fatalf("id must not match width")
	}
	// 短别名放弃包含匹配："Lot ID" 不解析为 sku
	lot := RawRow{{Header: "Lot ID", Value: TextCell("L1")}}
	if _, ok := Resolve(lot, DefaultAliases[FieldSKU]); ok {
		t.Fatalf("short alias id must not match inside lot id")
	}
	row = append(row, Field{Header: "ID", Value: TextCell("K9")})
	got, ok := Resolve(row, DefaultAliases[FieldSKU])
	if !ok || got.String() != "K9" {
		t.Fatalf("exact id should resolve, got %q", got.String())
	}
}

func TestResolveNotFound(t *testing.T) {
	row := RawRow{{Header: "Notes", Value: TextCell("x")}}
	if _, ok := Resolve(row, []string{"stoneid", "sku"}); ok {
		t.Fatalf("expected not found")
	}
	if _, ok := Resolve(row, nil); ok {
		t.Fatalf("empty alias list should not match")
	}
}

func TestDefaultAliasesTemplateHeadersResolveExactly(t *testing.T) {
	for field, aliases := range DefaultAliases {
		h, ok := ResolveHeader(TemplateHeaders, aliases)
		if !ok {
			t.Fatalf("field %s has no template header", field)
		}
		if NormalizeHeader(h) == "" {
			t.Fatalf("field %s resolved to blank header", field)
		}
	}
}

func TestDefaultAliasesDoNotOverlap(t *testing.T) {
	owner := map[string]StoneField{}
	for field, aliases := range DefaultAliases {
		for _, a := range aliases {
			if prev, ok := owner[a]; ok {
				t.Fatalf("alias %q shared by %s and %s", a, prev, field)
			}
			owner[a] = field
		}
	}
}
