package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
	}{
		{"120000", 120000},
		{"120,000", 120000},
		{"₩1,200,000", 1200000},
		{"120000원", 120000},
		{" 5 0 0 ", 500},
		{"", 0},
		{"abc", 0},
		{"-100", 100}, // sign stripped, amounts are never negative
		{"99999999999999999999999999", 0}, // overflow collapses to zero
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.out {
			t.Fatalf("%q: expected %d, got %d", tc.in, tc.out, got)
		}
	}
}

func TestWithholding(t *testing.T) {
	cases := []struct {
		amount, tax int64
	}{
		{0, 0},
		{1000, 33},
		{120000, 3960},
		{1234567, 40740}, // floor of 40740.711
		{100, 3},         // floor of 3.3
		{1, 0},
	}
	for _, tc := range cases {
		if got := Withholding(tc.amount); got != tc.tax {
			t.Fatalf("Withholding(%d): expected %d, got %d", tc.amount, tc.tax, got)
		}
		if Withholding(tc.amount)+Net(tc.amount) != tc.amount {
			t.Fatalf("withholding+net != amount for %d", tc.amount)
		}
	}
}

func TestFormatWon(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{116040, "116,040"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tc := range cases {
		if got := FormatWon(tc.in); got != tc.out {
			t.Fatalf("%d: expected %q, got %q", tc.in, tc.out, got)
		}
	}
}
