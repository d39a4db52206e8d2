package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"points/internal/core"
	"points/internal/kv/memory"
	"points/internal/records"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC) }

// countingStore wraps a record store and counts saves.
type countingStore struct {
	*records.Store
	saves int
}

func (c *countingStore) Save(ctx context.Context, child string, recs []core.Record) error {
	c.saves++
	return c.Store.Save(ctx, child, recs)
}

func newLedger(t *testing.T) (*Ledger, *countingStore) {
	t.Helper()
	store := &countingStore{Store: records.NewStore(memory.New())}
	l, err := OpenLedger(context.Background(), store, "Ada", fixedNow, nil)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return l, store
}

func form(label, price, qty, date string) ItemForm {
	d, _ := time.Parse(core.DateKeyLayout, date)
	return ItemForm{Label: label, Price: price, Quantity: qty, Date: d}
}

func TestOpenLedgerExpandsToday(t *testing.T) {
	l, _ := newLedger(t)
	if !l.Expanded().IsExpanded("2025-03-01") {
		t.Fatalf("expected today's day to be expanded")
	}
	if got := l.NewItemForm(); got.Quantity != "1" || core.DateKey(got.Date) != "2025-03-01" {
		t.Fatalf("unexpected default form %+v", got)
	}
}

func TestEndToEndChoresScenario(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)

	if _, err := l.AddItem(ctx, form("chores", "5", "2", "2025-03-01")); err != nil {
		t.Fatalf("add: %v", err)
	}

	stored, _ := store.Load(ctx, "Ada")
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(stored))
	}
	s := l.Summary()
	if len(s.Days) != 1 || !s.Days[0].Total.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected day total 10, got %+v", s.Days)
	}
	if !s.GrandTotal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected grand total 10, got %s", s.GrandTotal)
	}

	if n, err := l.DeleteDay(ctx, "2025-03-01"); err != nil || n != 1 {
		t.Fatalf("delete day: n=%d err=%v", n, err)
	}
	stored, _ = store.Load(ctx, "Ada")
	if len(stored) != 0 || !l.Summary().GrandTotal.IsZero() {
		t.Fatalf("expected empty ledger, got %v", stored)
	}
}

func TestAddItemRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		form  ItemForm
		field string
		err   error
	}{
		{"empty label", form("", "5", "1", "2025-03-01"), "label", core.ErrEmptyLabel},
		{"blank label", form("   ", "5", "1", "2025-03-01"), "label", core.ErrEmptyLabel},
		{"unparsable price", form("chores", "five", "1", "2025-03-01"), "price", core.ErrInvalidPrice},
		{"empty price", form("chores", "", "1", "2025-03-01"), "price", core.ErrInvalidPrice},
		{"empty quantity", form("chores", "5", "", "2025-03-01"), "quantity", core.ErrInvalidQuantity},
		{"fractional quantity", form("chores", "5", "1.5", "2025-03-01"), "quantity", core.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, store := newLedger(t)
			_, err := l.AddItem(ctx, tt.form)

			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field || !errors.Is(err, tt.err) {
				t.Fatalf("expected %s rejection wrapping %v, got %v", tt.field, tt.err, err)
			}
			if len(l.Records()) != 0 || store.saves != 0 {
				t.Fatalf("rejected add must not change or save the collection")
			}
		})
	}
}

func TestAddItemDefaultsDateToToday(t *testing.T) {
	l, _ := newLedger(t)
	rec, err := l.AddItem(context.Background(), ItemForm{Label: "reading", Price: "1,25", Quantity: "4"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Date != "2025-03-01" || !rec.Total().Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestAddItemAcceptsLongLabels(t *testing.T) {
	l, store := newLedger(t)
	label := strings.Repeat("x", 201)

	rec, err := l.AddItem(context.Background(), form("  "+label+" ", "1", "1", "2025-03-01"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Label != label {
		t.Fatalf("expected trimmed label of %d bytes, got %d", len(label), len(rec.Label))
	}
	if len(l.Records()) != 1 || store.saves != 1 {
		t.Fatalf("expected 1 saved record, got %d records and %d saves", len(l.Records()), store.saves)
	}
}

func TestDeleteDayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	for _, f := range []ItemForm{
		form("a", "1", "1", "2025-02-28"),
		form("b", "2", "1", "2025-03-01"),
		form("c", "3", "1", "2025-02-28"),
	} {
		if _, err := l.AddItem(ctx, f); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	if n, _ := l.DeleteDay(ctx, "2025-02-28"); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	once := l.Records()
	savesAfterFirst := store.saves

	if n, err := l.DeleteDay(ctx, "2025-02-28"); err != nil || n != 0 {
		t.Fatalf("second delete should be a no-op, n=%d err=%v", n, err)
	}
	twice := l.Records()
	if len(once) != 1 || len(twice) != 1 || once[0].ID != twice[0].ID {
		t.Fatalf("expected identical collections, got %v and %v", once, twice)
	}
	if store.saves != savesAfterFirst {
		t.Fatalf("no-op delete must not save")
	}
	if l.Expanded().IsExpanded("2025-02-28") {
		t.Fatalf("deleted day should be collapsed")
	}
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	a, _ := l.AddItem(ctx, form("a", "1", "1", "2025-02-28"))
	b, _ := l.AddItem(ctx, form("b", "2", "1", "2025-02-28"))

	if ok, err := l.DeleteItem(ctx, uuid.New()); err != nil || ok {
		t.Fatalf("unknown id should be a no-op, ok=%v err=%v", ok, err)
	}

	if ok, err := l.DeleteItem(ctx, a.ID); err != nil || !ok {
		t.Fatalf("delete a: ok=%v err=%v", ok, err)
	}
	if !l.Expanded().IsExpanded("2025-02-28") {
		t.Fatalf("day still has records and should stay expanded")
	}

	if ok, _ := l.DeleteItem(ctx, b.ID); !ok {
		t.Fatalf("delete b failed")
	}
	if l.Expanded().IsExpanded("2025-02-28") {
		t.Fatalf("emptied day should collapse")
	}

	stored, _ := store.Load(ctx, "Ada")
	if len(stored) != 0 {
		t.Fatalf("expected empty store, got %v", stored)
	}
}

func TestLedgerReopenSeesSavedRecords(t *testing.T) {
	ctx := context.Background()
	store := records.NewStore(memory.New())
	l, _ := OpenLedger(ctx, store, "Ben", fixedNow, nil)
	rec, _ := l.AddItem(ctx, form("3-pointer", "2.50", "3", "2025-01-01"))

	again, err := OpenLedger(ctx, store, "Ben", fixedNow, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := again.Records()
	if len(got) != 1 || got[0].ID != rec.ID || !again.Summary().GrandTotal.Equal(decimal.RequireFromString("7.5")) {
		t.Fatalf("unexpected reopened ledger %+v", got)
	}
}

type brokenStore struct{ RecordStore }

func (brokenStore) Save(context.Context, string, []core.Record) error { return errors.New("read-only") }

func TestSaveFailureLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	inner := records.NewStore(memory.New())
	l, _ := OpenLedger(ctx, brokenStore{inner}, "Ada", fixedNow, nil)

	if _, err := l.AddItem(ctx, form("chores", "5", "2", "2025-03-01")); err == nil {
		t.Fatalf("expected save error")
	}
	if len(l.Records()) != 0 {
		t.Fatalf("failed save must not change the in-memory collection")
	}
}
