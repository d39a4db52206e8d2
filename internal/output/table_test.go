package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"points/internal/aggregate"
	"points/internal/core"
)

func sampleSummary() core.Summary {
	return aggregate.Summarize("Ada", []core.Record{
		core.NewRecord("chores", decimal.NewFromInt(5), 2, "2025-03-01"),
		core.NewRecord("reading", decimal.RequireFromString("2.5"), 3, "2025-02-28"),
	})
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleSummary(), SummaryOptions{
		IsExpanded: func(date string) bool { return date == "2025-03-01" },
	})
	out := buf.String()

	for _, want := range []string{"Ada", "March 1, 2025", "February 28, 2025", "$10.00", "$7.50", "$17.50", "chores", "Qty: 2 × $5.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "reading") {
		t.Errorf("collapsed day should not list its items:\n%s", out)
	}
	if strings.Index(out, "March 1, 2025") > strings.Index(out, "February 28, 2025") {
		t.Errorf("days should be newest first:\n%s", out)
	}
}

func TestPrintSummaryShowAllAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleSummary(), SummaryOptions{ShowAll: true})
	if !strings.Contains(buf.String(), "reading") {
		t.Errorf("ShowAll should list every item")
	}

	buf.Reset()
	PrintSummary(&buf, aggregate.Summarize("Ben", nil), SummaryOptions{})
	if !strings.Contains(buf.String(), "No records yet.") || !strings.Contains(buf.String(), "$0.00") {
		t.Errorf("unexpected empty output:\n%s", buf.String())
	}
}

func TestPrintRoster(t *testing.T) {
	var buf bytes.Buffer
	PrintRoster(&buf, []core.ChildTotal{
		{Name: "Ada", Total: decimal.RequireFromString("8.5"), RecordCount: 2},
		{Name: "Benjamin", Total: decimal.Zero},
	})
	out := buf.String()
	if !strings.Contains(out, "$8.50") || !strings.Contains(out, "Benjamin") {
		t.Errorf("unexpected roster output:\n%s", out)
	}

	buf.Reset()
	PrintRoster(&buf, nil)
	if !strings.Contains(buf.String(), "No kids yet") {
		t.Errorf("expected empty roster hint, got %q", buf.String())
	}
}

func TestPrintJSONSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, SummaryJSON(sampleSummary())); err != nil {
		t.Fatalf("print json: %v", err)
	}

	var got jsonSummary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.GrandTotal != "17.50" || got.RecordCount != 2 || len(got.Days) != 2 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if got.Days[0].Date != "2025-03-01" || got.Days[0].Records[0].Total != "10.00" {
		t.Errorf("unexpected first day %+v", got.Days[0])
	}
}
