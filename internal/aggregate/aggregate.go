// Package aggregate derives the display values of a ledger from its
// records. Nothing here is cached; callers recompute on every read.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"points/internal/core"
)

// GroupByDate partitions records by date key. Within a group records keep
// their order from the input.
func GroupByDate(records []core.Record) map[string][]core.Record {
	grouped := make(map[string][]core.Record)
	for _, r := range records {
		grouped[r.Date] = append(grouped[r.Date], r)
	}
	return grouped
}

// SortedDateKeys returns the group keys newest first. Keys are zero-padded
// YYYY-MM-DD, so a descending string sort is a descending date sort.
func SortedDateKeys(grouped map[string][]core.Record) []string {
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// DayTotal sums price * quantity over one day's records.
func DayTotal(records []core.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Total())
	}
	return total
}

// GrandTotal sums every record's total.
func GrandTotal(records []core.Record) decimal.Decimal {
	return DayTotal(records)
}

// Days returns the day groups in display order with their subtotals.
func Days(records []core.Record) []core.DayGroup {
	grouped := GroupByDate(records)
	keys := SortedDateKeys(grouped)
	days := make([]core.DayGroup, 0, len(keys))
	for _, k := range keys {
		days = append(days, core.DayGroup{
			Date:    k,
			Records: grouped[k],
			Total:   DayTotal(grouped[k]),
		})
	}
	return days
}

// Summarize builds the full view of one child's ledger.
func Summarize(child string, records []core.Record) core.Summary {
	return core.Summary{
		Child:       child,
		Days:        Days(records),
		GrandTotal:  GrandTotal(records),
		RecordCount: len(records),
	}
}
