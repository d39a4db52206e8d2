// Package services provides the per-child ledger that sits between the
// presentation layer and the record store.
//
// A Ledger owns the in-memory record collection of one child. Every
// successful mutation is followed by a full save; rejected or no-op
// mutations never touch the store.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"points/internal/aggregate"
	"points/internal/core"
	applog "points/internal/log"
)

// RecordStore is the persistence a Ledger needs.
type RecordStore interface {
	Load(ctx context.Context, childName string) ([]core.Record, error)
	Save(ctx context.Context, childName string, records []core.Record) error
}

// ItemForm is the raw add-item input as typed by the user.
type ItemForm struct {
	Label    string
	Price    string
	Quantity string
	Date     time.Time
}

// ValidationError reports why an add-item submit was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type Ledger struct {
	child    string
	store    RecordStore
	now      func() time.Time
	logger   *applog.Logger
	records  []core.Record
	expanded *ExpandedDays
}

// OpenLedger loads the child's collection and expands today's day.
func OpenLedger(ctx context.Context, store RecordStore, child string, now func() time.Time, logger *applog.Logger) (*Ledger, error) {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = applog.Discard()
	}
	recs, err := store.Load(ctx, child)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		child:    child,
		store:    store,
		now:      now,
		logger:   logger.WithComponent(applog.ComponentLedger).With(applog.FieldChild, child),
		records:  recs,
		expanded: NewExpandedDays(),
	}
	l.expanded.Expand(core.DateKey(now()))
	return l, nil
}

// Child returns the name this ledger belongs to.
func (l *Ledger) Child() string { return l.child }

// NewItemForm returns an empty form with quantity 1 and today's date.
func (l *Ledger) NewItemForm() ItemForm {
	return ItemForm{Quantity: "1", Date: l.now()}
}

// Records returns a copy of the current collection in insertion order.
func (l *Ledger) Records() []core.Record {
	return append([]core.Record(nil), l.records...)
}

// Summary recomputes the grouped view and totals.
func (l *Ledger) Summary() core.Summary {
	return aggregate.Summarize(l.child, l.records)
}

// Expanded exposes the transient expanded-day state.
func (l *Ledger) Expanded() *ExpandedDays { return l.expanded }

// AddItem validates the form and appends a new record. On rejection the
// collection is left untouched and a *ValidationError is returned.
func (l *Ledger) AddItem(ctx context.Context, form ItemForm) (core.Record, error) {
	label := strings.TrimSpace(form.Label)
	if label == "" {
		return core.Record{}, &ValidationError{Field: "label", Err: core.ErrEmptyLabel}
	}
	price, err := core.ParsePrice(form.Price)
	if err != nil {
		return core.Record{}, &ValidationError{Field: "price", Err: err}
	}
	qty, err := core.ParseQuantity(form.Quantity)
	if err != nil {
		return core.Record{}, &ValidationError{Field: "quantity", Err: err}
	}
	date := form.Date
	if date.IsZero() {
		date = l.now()
	}

	rec := core.NewRecord(label, price, qty, core.DateKey(date))
	if err := rec.Validate(); err != nil {
		return core.Record{}, &ValidationError{Field: "record", Err: err}
	}
	next := append(l.Records(), rec)
	if err := l.store.Save(ctx, l.child, next); err != nil {
		return core.Record{}, err
	}
	l.records = next
	l.expanded.Expand(rec.Date)

	l.logger.InfoContext(ctx, "Item added",
		applog.FieldOperation, applog.OpAdd,
		applog.FieldRecordID, rec.ID.String(),
		applog.FieldLabel, rec.Label,
		applog.FieldDate, rec.Date)
	return rec, nil
}

// DeleteItem removes the record with id. Unknown ids are a no-op and
// report false.
func (l *Ledger) DeleteItem(ctx context.Context, id uuid.UUID) (bool, error) {
	idx := -1
	for i, r := range l.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	date := l.records[idx].Date
	next := make([]core.Record, 0, len(l.records)-1)
	next = append(next, l.records[:idx]...)
	next = append(next, l.records[idx+1:]...)
	if err := l.store.Save(ctx, l.child, next); err != nil {
		return false, err
	}
	l.records = next
	if !l.hasDate(date) {
		l.expanded.Collapse(date)
	}

	l.logger.InfoContext(ctx, "Item deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldRecordID, id.String())
	return true, nil
}

// DeleteDay removes every record dated date and returns how many went.
// A date with no records is a no-op.
func (l *Ledger) DeleteDay(ctx context.Context, date string) (int, error) {
	next := make([]core.Record, 0, len(l.records))
	for _, r := range l.records {
		if r.Date != date {
			next = append(next, r)
		}
	}
	removed := len(l.records) - len(next)
	l.expanded.Collapse(date)
	if removed == 0 {
		return 0, nil
	}
	if err := l.store.Save(ctx, l.child, next); err != nil {
		return 0, err
	}
	l.records = next

	l.logger.InfoContext(ctx, "Day deleted",
		applog.FieldOperation, applog.OpDeleteDay,
		applog.FieldDate, date,
		applog.FieldCount, removed)
	return removed, nil
}

func (l *Ledger) hasDate(date string) bool {
	for _, r := range l.records {
		if r.Date == date {
			return true
		}
	}
	return false
}
