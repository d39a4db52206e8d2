// This file implements the record-entry state machine of a ledger view.
// States are display-only; the only persistence happens through the Ledger
// calls made by Submit and ConfirmDayDelete.

package services

import (
	"context"
	"errors"
	"fmt"

	"points/internal/core"
)

// EntryState is where the record-entry view currently is.
type EntryState int

const (
	Idle EntryState = iota
	Adding
	ConfirmingDayDelete
)

func (s EntryState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Adding:
		return "adding"
	case ConfirmingDayDelete:
		return "confirming_day_delete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidTransition is returned when an action is not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid entry transition")

type entryAction string

const (
	actionOpenForm       entryAction = "open_form"
	actionSubmit         entryAction = "submit"
	actionCancel         entryAction = "cancel"
	actionRequestDayDrop entryAction = "request_day_delete"
	actionConfirm        entryAction = "confirm"
)

// entryTransitions lists the legal actions per state.
var entryTransitions = map[EntryState]map[entryAction]struct{}{
	Idle: {
		actionOpenForm:       {},
		actionRequestDayDrop: {},
	},
	Adding: {
		actionSubmit: {},
		actionCancel: {},
	},
	ConfirmingDayDelete: {
		actionConfirm: {},
		actionCancel:  {},
	},
}

// EntryFlow drives a Ledger through the add-item form and the delete-day
// confirmation.
type EntryFlow struct {
	ledger     *Ledger
	state      EntryState
	form       ItemForm
	pendingDay string
}

func NewEntryFlow(l *Ledger) *EntryFlow {
	return &EntryFlow{ledger: l, state: Idle}
}

func (f *EntryFlow) State() EntryState { return f.state }

// Form returns the form being edited while Adding.
func (f *EntryFlow) Form() ItemForm { return f.form }

// PendingDay returns the day awaiting confirmation.
func (f *EntryFlow) PendingDay() string { return f.pendingDay }

func (f *EntryFlow) check(a entryAction) error {
	if _, ok := entryTransitions[f.state][a]; !ok {
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, a, f.state)
	}
	return nil
}

// OpenForm moves Idle -> Adding with a fresh form.
func (f *EntryFlow) OpenForm() error {
	if err := f.check(actionOpenForm); err != nil {
		return err
	}
	f.form = f.ledger.NewItemForm()
	f.state = Adding
	return nil
}

// Submit tries to add the form. Success returns to Idle and resets the
// form; a rejected form keeps the flow in Adding so it can be corrected.
func (f *EntryFlow) Submit(ctx context.Context, form ItemForm) (core.Record, error) {
	if err := f.check(actionSubmit); err != nil {
		return core.Record{}, err
	}
	f.form = form
	rec, err := f.ledger.AddItem(ctx, form)
	if err != nil {
		return core.Record{}, err
	}
	f.form = ItemForm{}
	f.state = Idle
	return rec, nil
}

// RequestDayDelete moves Idle -> ConfirmingDayDelete for date.
func (f *EntryFlow) RequestDayDelete(date string) error {
	if err := f.check(actionRequestDayDrop); err != nil {
		return err
	}
	f.pendingDay = date
	f.state = ConfirmingDayDelete
	return nil
}

// ConfirmDayDelete deletes the pending day and returns to Idle.
func (f *EntryFlow) ConfirmDayDelete(ctx context.Context) (int, error) {
	if err := f.check(actionConfirm); err != nil {
		return 0, err
	}
	n, err := f.ledger.DeleteDay(ctx, f.pendingDay)
	if err != nil {
		return 0, err
	}
	f.pendingDay = ""
	f.state = Idle
	return n, nil
}

// Cancel abandons the form or the pending confirmation.
func (f *EntryFlow) Cancel() error {
	if err := f.check(actionCancel); err != nil {
		return err
	}
	f.form = ItemForm{}
	f.pendingDay = ""
	f.state = Idle
	return nil
}
