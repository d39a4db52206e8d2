package output

import (
	"encoding/json"
	"io"

	"points/internal/core"
)

type jsonRecord struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

type jsonDay struct {
	Date    string       `json:"date"`
	Total   string       `json:"total"`
	Records []jsonRecord `json:"records"`
}

type jsonSummary struct {
	Child       string    `json:"child"`
	GrandTotal  string    `json:"grand_total"`
	RecordCount int       `json:"record_count"`
	Days        []jsonDay `json:"days"`
}

type jsonChildTotal struct {
	Name        string `json:"name"`
	Total       string `json:"total"`
	RecordCount int    `json:"record_count"`
}

// SummaryJSON converts a summary into its JSON view. Amounts are strings
// with two decimals.
func SummaryJSON(s core.Summary) any {
	out := jsonSummary{
		Child:       s.Child,
		GrandTotal:  s.GrandTotal.StringFixed(2),
		RecordCount: s.RecordCount,
		Days:        make([]jsonDay, 0, len(s.Days)),
	}
	for _, d := range s.Days {
		day := jsonDay{Date: d.Date, Total: d.Total.StringFixed(2), Records: make([]jsonRecord, 0, len(d.Records))}
		for _, r := range d.Records {
			day.Records = append(day.Records, jsonRecord{
				ID:       r.ID.String(),
				Label:    r.Label,
				Price:    r.Price.StringFixed(2),
				Quantity: r.Quantity,
				Total:    r.Total().StringFixed(2),
			})
		}
		out.Days = append(out.Days, day)
	}
	return out
}

// RosterJSON converts roster totals into their JSON view.
func RosterJSON(totals []core.ChildTotal) any {
	out := make([]jsonChildTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, jsonChildTotal{Name: t.Name, Total: t.Total.StringFixed(2), RecordCount: t.RecordCount})
	}
	return out
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
