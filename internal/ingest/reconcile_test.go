package ingest

import (
	"context"
	"errors"
	"sort"
	"testing"
)

type memoryStore struct {
	records   map[string]Record
	calls     []string
	inserted  [][]string
	upserted  [][]string
	queried   [][]string
	insertErr error
	queryErr  error
}

func newMemoryStore(existing ...string) *memoryStore {
	s := &memoryStore{records: map[string]Record{}}
	for _, sku := range existing {
		s.records[sku] = Record{SKU: sku, Carat: 9}
	}
	return s
}

func (s *memoryStore) ExistingSKUs(_ context.Context, skus []string) ([]string, error) {
	s.calls = append(s.calls, "query")
	s.queried = append(s.queried, append([]string(nil), skus...))
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var found []string
	for _, sku := range skus {
		if _, ok := s.records[sku]; ok {
			found = append(found, sku)
		}
	}
	return found, nil
}

func (s *memoryStore) Insert(_ context.Context, records []Record) error {
	s.calls = append(s.calls, "insert")
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, r := range records {
		if _, ok := s.records[r.SKU]; ok {
			return errors.New("UNIQUE constraint failed: stones.sku")
		}
	}
	s.inserted = append(s.inserted, SKUs(records))
	for _, r := range records {
		s.records[r.SKU] = r
	}
	return nil
}

func (s *memoryStore) Upsert(_ context.Context, records []Record) error {
	s.calls = append(s.calls, "upsert")
	s.upserted = append(s.upserted, SKUs(records))
	for _, r := range records {
		s.records[r.SKU] = r
	}
	return nil
}

func skuBatch(skus ...string) Batch {
	headers := []string{"SKU", "Carat"}
	b := Batch{Headers: headers}
	for _, sku := range skus {
		b.Rows = append(b.Rows, NewRawRow(headers, []Cell{TextCell(sku), TextCell("1")}))
	}
	return b
}

func TestProposeWithoutConflictsInsertsDirectly(t *testing.T) {
	store := newMemoryStore()
	out, err := NewReconciler(store, nil).Propose(context.Background(), skuBatch("A", "B"))
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if !out.Completed() || out.Pending != nil {
		t.Fatalf("expected completed outcome")
	}
	if out.Report.Inserted != 2 || out.Report.Message != "2 new" {
		t.Fatalf("unexpected report: %+v", out.Report)
	}
	if len(store.calls) != 2 || store.calls[0] != "query" || store.calls[1] != "insert" {
		t.Fatalf("lookup must precede write: %v", store.calls)
	}
}

func TestProposeWithConflictsWaitsForDecision(t *testing.T) {
	store := newMemoryStore("B", "Z")
	out, err := NewReconciler(store, nil).Propose(context.Background(), skuBatch("A", "B"))
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if out.Completed() || out.Pending == nil {
		t.Fatalf("expected pending decision")
	}
	if len(out.Pending.ConflictingSKUs) != 1 || out.Pending.ConflictingSKUs[0] != "B" {
		t.Fatalf("unexpected conflicts: %v", out.Pending.ConflictingSKUs)
	}
	if len(out.Pending.Options) != 2 {
		t.Fatalf("unexpected options: %v", out.Pending.Options)
	}
	for _, c := range store.calls {
		if c != "query" {
			t.Fatalf("no write may happen before the decision: %v", store.calls)
		}
	}
	q := append([]string(nil), store.queried[0]...)
	sort.Strings(q)
	if len(q) != 2 || q[0] != "A" || q[1] != "B" {
		t.Fatalf("lookup must cover exactly the batch skus: %v", q)
	}
}

func TestResolveOverwriteUpsertsAll(t *testing.T) {
	store := newMemoryStore("B")
	r := NewReconciler(store, nil)
	out, err := r.Propose(context.Background(), skuBatch("A", "B"))
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	report, err := r.Resolve(context.Background(), out.Pending, DecisionOverwrite)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(store.upserted) != 1 || len(store.upserted[0]) != 2 {
		t.Fatalf("expected one upsert of A and B, got %v", store.upserted)
	}
	if len(store.inserted) != 0 {
		t.Fatalf("overwrite must not insert separately")
	}
	if report.Inserted != 1 || report.Updated != 1 || report.Skipped != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Message != "1 new, 1 updated" {
		t.Fatalf("unexpected message: %q", report.Message)
	}
	if store.records["B"].Carat != 1 {
		t.Fatalf("B should be overwritten")
	}
}

func TestResolveAddNewOnlyInsertsMissing(t *testing.T) {
	store := newMemoryStore("B")
	r := NewReconciler(store, nil)
	out, _ := r.Propose(context.Background(), skuBatch("A", "B"))
	report, err := r.Resolve(context.Background(), out.Pending, DecisionAddNewOnly)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(store.inserted) != 1 || len(store.inserted[0]) != 1 || store.inserted[0][0] != "A" {
		t.Fatalf("expected insert of A only, got %v", store.inserted)
	}
	if len(store.upserted) != 0 {
		t.Fatalf("add-new-only must not upsert")
	}
	if store.records["B"].Carat != 9 {
		t.Fatalf("B must be untouched")
	}
	if report.Inserted != 1 || report.Skipped != 1 || report.Message != "1 new, 1 skipped" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestAddNewOnlyAllExistingWritesNothing(t *testing.T) {
	store := newMemoryStore("S9")
	r := NewReconciler(store, nil)
	out, err := r.Propose(context.Background(), skuBatch("s9"))
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	report, err := r.Resolve(context.Background(), out.Pending, DecisionAddNewOnly)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	for _, c := range store.calls {
		if c != "query" {
			t.Fatalf("expected zero writes, got %v", store.calls)
		}
	}
	if report.Message != "0 new, 1 skipped" {
		t.Fatalf("unexpected message: %q", report.Message)
	}
}

func TestResolveCancelAbandonsBatch(t *testing.T) {
	store := newMemoryStore("B")
	r := NewReconciler(store, nil)
	out, _ := r.Propose(context.Background(), skuBatch("A", "B"))
	_, err := r.Resolve(context.Background(), out.Pending, DecisionCancel)
	if !errors.Is(err, ErrConflictUnresolved) {
		t.Fatalf("expected unresolved error, got %v", err)
	}
	if !NothingWritten(err) {
		t.Fatalf("cancel must report nothing written")
	}
	if len(store.inserted)+len(store.upserted) != 0 {
		t.Fatalf("cancel must not write")
	}
	if _, err := r.Resolve(context.Background(), out.Pending, Decision("merge")); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected invalid decision, got %v", err)
	}
}

func TestProposeEndToEndDedupAcrossCase(t *testing.T) {
	headers := []string{"StoneID", "Carat", "Amount$", "Amount $"}
	batch := Batch{Headers: headers, Rows: []RawRow{
		{{Header: "StoneID", Value: TextCell("S1")}, {Header: "Carat", Value: TextCell("1,20")}, {Header: "Amount$", Value: TextCell("$1,000")}},
		{{Header: "StoneID", Value: TextCell("s1")}, {Header: "Carat", Value: TextCell("1.30")}, {Header: "Amount $", Value: TextCell("1100")}},
	}}
	store := newMemoryStore()
	out, err := NewReconciler(store, nil).Propose(context.Background(), batch)
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if !out.Completed() {
		t.Fatalf("expected direct insert")
	}
	if len(store.records) != 1 {
		t.Fatalf("expected one record, got %d", len(store.records))
	}
	rec := store.records["S1"]
	if rec.Carat != 1.3 || rec.TotalAmount.StringFixed(2) != "1100.00" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if out.Report.TotalRows != 2 || out.Report.Duplicates != 1 || out.Report.Inserted != 1 {
		t.Fatalf("unexpected report: %+v", out.Report)
	}
}

func TestProposeErrorsAreTyped(t *testing.T) {
	r := NewReconciler(newMemoryStore(), nil)

	_, err := r.Propose(context.Background(), Batch{Headers: []string{"SKU"}})
	if !errors.Is(err, ErrParse) || !NothingWritten(err) {
		t.Fatalf("empty batch should be a parse error, got %v", err)
	}

	headers := []string{"Shape", "Carat"}
	_, err = r.Propose(context.Background(), Batch{Headers: headers, Rows: []RawRow{
		NewRawRow(headers, []Cell{TextCell("OVAL"), TextCell("1")}),
	}})
	var me *MappingError
	if !errors.As(err, &me) || len(me.Headers) != 2 {
		t.Fatalf("expected mapping error with headers, got %v", err)
	}

	store := newMemoryStore()
	store.insertErr = errors.New("connection reset by peer")
	_, err = NewReconciler(store, nil).Propose(context.Background(), skuBatch("A"))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if err.Error() != "connection reset by peer" {
		t.Fatalf("storage message should be verbatim, got %q", err.Error())
	}
	if NothingWritten(err) {
		t.Fatalf("failed write is not a nothing-written error")
	}

	store = newMemoryStore()
	store.queryErr = errors.New("timeout")
	_, err = NewReconciler(store, nil).Propose(context.Background(), skuBatch("A"))
	if !errors.Is(err, ErrStorage) || !NothingWritten(err) {
		t.Fatalf("lookup failure writes nothing, got %v", err)
	}
}

func TestParseDecision(t *testing.T) {
	cases := map[string]Decision{
		"overwrite":    DecisionOverwrite,
		" Add-New ":    DecisionAddNewOnly,
		"add_new_only": DecisionAddNewOnly,
		"cancel":       DecisionCancel,
	}
	for in, want := range cases {
		got, err := ParseDecision(in)
		if err != nil || got != want {
			t.Fatalf("ParseDecision(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDecision("merge"); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected invalid decision error")
	}
}
