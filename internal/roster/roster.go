// Package roster keeps the ordered list of child names.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"points/internal/aggregate"
	"points/internal/core"
	"points/internal/kv"
	applog "points/internal/log"
	"points/internal/records"
)

// Key is where the roster lives in the key-value store.
const Key = "kids"

// RemovePolicy decides what happens to a child's records when the child is
// removed from the roster.
type RemovePolicy int

const (
	// KeepRecords leaves the collection in place; re-adding the same name
	// brings the records back.
	KeepRecords RemovePolicy = iota
	// PurgeRecords deletes the collection together with the name.
	PurgeRecords
)

func (p RemovePolicy) String() string {
	if p == PurgeRecords {
		return "purge"
	}
	return "keep"
}

type Roster struct {
	kv          kv.Store
	records     *records.Store
	policy      RemovePolicy
	concurrency int
	logger      *applog.Logger
}

func New(backend kv.Store, recs *records.Store, policy RemovePolicy, logger *applog.Logger) *Roster {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Roster{
		kv:          backend,
		records:     recs,
		policy:      policy,
		concurrency: 4,
		logger:      logger.WithComponent(applog.ComponentRoster),
	}
}

// SetConcurrency bounds how many collections Overview loads at once.
func (r *Roster) SetConcurrency(n int) {
	if n > 0 {
		r.concurrency = n
	}
}

// List returns the names in insertion order. Missing or unreadable data is
// an empty roster.
func (r *Roster) List(ctx context.Context) ([]string, error) {
	raw, err := r.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		r.logger.WarnContext(ctx, "Stored roster is unreadable, treating as empty",
			applog.FieldOperation, applog.OpDecode,
			applog.FieldError, err)
		return []string{}, nil
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (r *Roster) save(ctx context.Context, names []string) error {
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	if err := r.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

// Add appends a child name. Blank and duplicate names are rejected.
func (r *Roster) Add(ctx context.Context, name string) (string, error) {
	name, err := core.ValidateChildName(name)
	if err != nil {
		return "", err
	}
	names, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	for _, n := range names {
		if n == name {
			return "", fmt.Errorf("%w: %s", core.ErrDuplicateChild, name)
		}
	}
	if err := r.save(ctx, append(names, name)); err != nil {
		return "", err
	}
	r.logger.InfoContext(ctx, "Child added", applog.FieldChild, name, applog.FieldCount, len(names)+1)
	return name, nil
}

// Remove drops the first entry equal to the trimmed name. A missing or
// blank name is a no-op and reports false.
func (r *Roster) Remove(ctx context.Context, name string) (bool, error) {
	name, err := core.ValidateChildName(name)
	if err != nil {
		return false, nil
	}
	names, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	idx := -1
	for i, n := range names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	names = append(names[:idx], names[idx+1:]...)
	if err := r.save(ctx, names); err != nil {
		return false, err
	}
	if r.policy == PurgeRecords {
		if err := r.records.Purge(ctx, name); err != nil {
			return true, err
		}
	}
	r.logger.InfoContext(ctx, "Child removed",
		applog.FieldChild, name,
		"policy", r.policy.String())
	return true, nil
}

// Overview returns every child with its grand total, in roster order.
func (r *Roster) Overview(ctx context.Context) ([]core.ChildTotal, error) {
	names, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.ChildTotal, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, name := range names {
		g.Go(func() error {
			recs, err := r.records.Load(gctx, name)
			if err != nil {
				return err
			}
			out[i] = core.ChildTotal{
				Name:        name,
				Total:       aggregate.GrandTotal(recs),
				RecordCount: len(recs),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Orphans lists stored record collections whose child is not on the roster.
// Collections holding no records are skipped.
func (r *Roster) Orphans(ctx context.Context) ([]string, error) {
	names, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[n] = struct{}{}
	}
	stored, err := r.records.Children(ctx)
	if err != nil {
		return nil, err
	}
	var orphans []string
	for _, s := range stored {
		if _, ok := known[s]; ok {
			continue
		}
		recs, err := r.records.Load(ctx, s)
		if err != nil {
			return nil, err
		}
		if len(recs) > 0 {
			orphans = append(orphans, s)
		}
	}
	return orphans, nil
}
