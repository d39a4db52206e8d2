// Package records persists one child's record collection as a whole under a
// per-child key.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"points/internal/core"
	"points/internal/kv"
	applog "points/internal/log"
)

// KeyPrefix namespaces record collections in the key-value store.
const KeyPrefix = "calculations_"

// Key returns the storage key for a child's collection.
func Key(childName string) string {
	return KeyPrefix + childName
}

// wireRecord is the persisted shape of a record. Price travels as a JSON
// number and is decoded back into an exact decimal.
type wireRecord struct {
	ID       uuid.UUID   `json:"id"`
	Label    string      `json:"label"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
	Date     string      `json:"date"`
}

// Store loads and saves whole record collections.
type Store struct {
	kv     kv.Store
	logger *applog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recovered decode failures.
func WithLogger(l *applog.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(applog.ComponentRecords) }
}

func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     backend,
		logger: applog.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the child's records. A missing or undecodable value yields an
// empty collection; only backend failures are returned as errors.
func (s *Store) Load(ctx context.Context, childName string) ([]core.Record, error) {
	key := Key(childName)
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return []core.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load records for %s: %w", childName, err)
	}

	out, err := Decode(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored records are unreadable, treating as empty",
			applog.NewFields().WithOperation(applog.OpDecode).WithChild(childName, key).WithError(err).ToSlice()...)
		return []core.Record{}, nil
	}

	return out, nil
}

// Save replaces the child's whole collection.
func (s *Store) Save(ctx context.Context, childName string, recs []core.Record) error {
	key := Key(childName)
	raw, err := Encode(recs)
	if err != nil {
		return fmt.Errorf("encode records for %s: %w", childName, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save records for %s: %w", childName, err)
	}
	s.logger.DebugContext(ctx, "Records saved",
		applog.FieldOperation, applog.OpSave,
		applog.FieldChild, childName,
		applog.FieldCount, len(recs),
		applog.FieldBytes, len(raw))
	return nil
}

// Purge deletes the child's collection key entirely.
func (s *Store) Purge(ctx context.Context, childName string) error {
	key := Key(childName)
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("purge records for %s: %w", childName, err)
	}
	s.logger.InfoContext(ctx, "Records purged",
		applog.FieldOperation, applog.OpPurge,
		applog.FieldChild, childName,
		applog.FieldKey, key)
	return nil
}

// Children lists every child name that has a stored collection.
func (s *Store) Children(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list record collections: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k[len(KeyPrefix):])
	}
	return names, nil
}

// Encode serializes a collection to its stored JSON form.
func Encode(recs []core.Record) ([]byte, error) {
	wire := make([]wireRecord, len(recs))
	for i, r := range recs {
		wire[i] = wireRecord{
			ID:       r.ID,
			Label:    r.Label,
			Price:    json.Number(r.Price.String()),
			Quantity: r.Quantity,
			Date:     r.Date,
		}
	}
	return json.Marshal(wire)
}

// Decode parses the stored JSON form of a collection.
func Decode(raw []byte) ([]core.Record, error) {
	var wire []wireRecord
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	out := make([]core.Record, len(wire))
	for i, w := range wire {
		price, err := decimal.NewFromString(w.Price.String())
		if err != nil {
			return nil, fmt.Errorf("record %d: price %q: %w", i, w.Price, err)
		}
		out[i] = core.Record{
			ID:       w.ID,
			Label:    w.Label,
			Price:    price,
			Quantity: w.Quantity,
			Date:     w.Date,
		}
	}
	return out, nil
}
