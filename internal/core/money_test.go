package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"2.50", "2.5", true},
		{"2,50", "2.5", true},
		{" 0.01 ", "0.01", true},
		{"0", "0", true},
		{"-3", "-3", true},
		{"10.", "10", true},
		{".5", "0.5", true},
		{"+2", "2", true},
		{"1e3", "1000", true},
		{"2.5E-1", "0.25", true},
		{"1,5e2", "150", true},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1e", "", false},
		{"e3", "", false},
		{"1e400", "", false},
		{"NaN", "", false},
		{"Inf", "", false},
		{"1_000", "", false},
		{"0x10", "", false},
		{"1,000.50", "", false},
		{".", "", false},
		{"--1", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err != ErrInvalidPrice {
			t.Fatalf("%q expected ErrInvalidPrice, got %v", tc.in, err)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in  string
		out int
		ok  bool
	}{
		{"1", 1, true},
		{" 12 ", 12, true},
		{"0", 0, true},
		{"", 0, false},
		{"1.5", 0, false},
		{"two", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseQuantity(tc.in)
		if tc.ok && (err != nil || got != tc.out) {
			t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
		}
		if !tc.ok && err != ErrInvalidQuantity {
			t.Fatalf("%q expected ErrInvalidQuantity, got %v", tc.in, err)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"8.5":   "$8.50",
		"0":     "$0.00",
		"10":    "$10.00",
		"1.005": "$1.01",
		"-4":    "-$4.00",
	}
	for in, want := range cases {
		if got := FormatAmount(decimal.RequireFromString(in)); got != want {
			t.Fatalf("%s expected %s, got %s", in, want, got)
		}
	}
}

func TestFormatDateHeader(t *testing.T) {
	if got := FormatDateHeader("2025-03-01"); got != "March 1, 2025" {
		t.Fatalf("unexpected header %q", got)
	}
	if got := FormatDateHeader("someday"); got != "someday" {
		t.Fatalf("expected raw key fallback, got %q", got)
	}
}
