package core

import "github.com/shopspring/decimal"

// Summary is everything a display needs for one child's ledger.
type Summary struct {
	Child       string
	Days        []DayGroup
	GrandTotal  decimal.Decimal
	RecordCount int
}

// ChildTotal is one row of the roster overview.
type ChildTotal struct {
	Name        string
	Total       decimal.Decimal
	RecordCount int
}
