package core

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	// Record is one priced line item attributed to one day for one child.
	Record struct {
		ID       uuid.UUID
		Label    string
		Price    decimal.Decimal
		Quantity int
		Date     string // YYYY-MM-DD
	}

	// DayGroup is the subset of a child's records sharing one date key.
	DayGroup struct {
		Date    string
		Records []Record
		Total   decimal.Decimal
	}
)

var (
	ErrEmptyLabel      = errors.New("empty label")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyName       = errors.New("empty child name")
	ErrDuplicateChild  = errors.New("child already exists")
)

// NewRecord creates a record with a fresh identifier.
func NewRecord(label string, price decimal.Decimal, quantity int, date string) Record {
	return Record{
		ID:       uuid.New(),
		Label:    label,
		Price:    price,
		Quantity: quantity,
		Date:     date,
	}
}

// Total returns price * quantity. It is never stored.
func (r Record) Total() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.Label) == "" {
		return ErrEmptyLabel
	}
	if r.ID == uuid.Nil {
		return errors.New("record id cannot be nil")
	}
	if _, err := ParseDateKey(r.Date); err != nil {
		return err
	}
	return nil
}

// ValidateChildName trims the name and rejects blanks.
func ValidateChildName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}
