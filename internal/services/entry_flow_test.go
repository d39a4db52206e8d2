package services

import (
	"context"
	"errors"
	"testing"
)

func TestEntryFlowAddCycle(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	f := NewEntryFlow(l)

	if _, err := f.Submit(ctx, form("a", "1", "1", "2025-03-01")); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("submit while idle should be rejected, got %v", err)
	}

	if err := f.OpenForm(); err != nil || f.State() != Adding {
		t.Fatalf("open form: state=%s err=%v", f.State(), err)
	}
	if f.Form().Quantity != "1" {
		t.Fatalf("expected default quantity 1, got %q", f.Form().Quantity)
	}

	// A rejected submit keeps the form open.
	if _, err := f.Submit(ctx, form("", "1", "1", "2025-03-01")); err == nil || f.State() != Adding {
		t.Fatalf("expected rejection while staying in Adding, state=%s err=%v", f.State(), err)
	}

	if _, err := f.Submit(ctx, form("chores", "5", "2", "2025-03-01")); err != nil || f.State() != Idle {
		t.Fatalf("submit: state=%s err=%v", f.State(), err)
	}
	if len(l.Records()) != 1 {
		t.Fatalf("expected 1 record")
	}

	_ = f.OpenForm()
	if err := f.Cancel(); err != nil || f.State() != Idle {
		t.Fatalf("cancel: state=%s err=%v", f.State(), err)
	}
}

func TestEntryFlowDayDeleteCycle(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	_, _ = l.AddItem(ctx, form("chores", "5", "2", "2025-03-01"))
	f := NewEntryFlow(l)

	if err := f.RequestDayDelete("2025-03-01"); err != nil || f.State() != ConfirmingDayDelete {
		t.Fatalf("request: state=%s err=%v", f.State(), err)
	}
	if err := f.OpenForm(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("opening the form while confirming should fail, got %v", err)
	}
	if err := f.Cancel(); err != nil || f.State() != Idle || len(l.Records()) != 1 {
		t.Fatalf("cancel must keep records, state=%s err=%v", f.State(), err)
	}

	_ = f.RequestDayDelete("2025-03-01")
	if f.PendingDay() != "2025-03-01" {
		t.Fatalf("unexpected pending day %q", f.PendingDay())
	}
	n, err := f.ConfirmDayDelete(ctx)
	if err != nil || n != 1 || f.State() != Idle || len(l.Records()) != 0 {
		t.Fatalf("confirm: n=%d state=%s err=%v", n, f.State(), err)
	}

	if _, err := f.ConfirmDayDelete(ctx); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("confirm while idle should fail, got %v", err)
	}
}

func TestEntryStateString(t *testing.T) {
	if Idle.String() != "idle" || Adding.String() != "adding" || ConfirmingDayDelete.String() != "confirming_day_delete" {
		t.Fatalf("unexpected state names")
	}
}
