package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/hourbook/internal/models"
)

// floatEquals compares two floats with tolerance
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"", 0, true},
		{"  ", 0, true},
		{"2", 2, true},
		{" 1.5 ", 1.5, true},
		{"2,5", 2.5, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"two", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseHours(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseHours(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if !floatEquals(got, tt.want) {
				t.Errorf("ParseHours(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSummarizeHours(t *testing.T) {
	entries := []models.Entry{
		{Name: "bob", Location: "Park", Hours: "2", Timestamp: "2024-03-01"},
		{Name: "Alice"},
		{Name: "BOB", Event: "Cleanup", Hours: "1.5", Timestamp: "2024-01-15"},
		{Name: "Bob", Location: "Library", Hours: "a lot", Timestamp: "2024-02-01"},
		{Name: "", Location: "Nowhere", Hours: "10"},
		{Name: "Carol", Location: "Shelter", Hours: "4"},
	}

	totals := SummarizeHours(entries)
	if len(totals) != 3 {
		t.Fatalf("Expected 3 people, got %d: %+v", len(totals), totals)
	}

	alice, bob, carol := totals[0], totals[1], totals[2]

	t.Run("placeholder-only person is listed with zero hours", func(t *testing.T) {
		if alice.Name != "Alice" || alice.Hours != 0 || alice.Entries != 0 {
			t.Errorf("alice = %+v", alice)
		}
	})

	t.Run("case-insensitive grouping keeps first-seen casing", func(t *testing.T) {
		if bob.Name != "bob" {
			t.Errorf("Expected name bob, got %q", bob.Name)
		}
		if !floatEquals(bob.Hours, 3.5) {
			t.Errorf("Expected 3.5 hours, got %v", bob.Hours)
		}
		if bob.Entries != 3 || bob.Unparsed != 1 {
			t.Errorf("Expected 3 entries with 1 unparsed, got %d/%d", bob.Entries, bob.Unparsed)
		}
		if bob.FirstDate != "2024-01-15" || bob.LastDate != "2024-03-01" {
			t.Errorf("Expected date range 2024-01-15..2024-03-01, got %s..%s", bob.FirstDate, bob.LastDate)
		}
	})

	t.Run("missing timestamps leave the range empty", func(t *testing.T) {
		if carol.FirstDate != "" || carol.LastDate != "" {
			t.Errorf("carol range = %q..%q", carol.FirstDate, carol.LastDate)
		}
	})

	t.Run("grand total", func(t *testing.T) {
		if got := GrandTotal(totals); !floatEquals(got, 7.5) {
			t.Errorf("GrandTotal = %v, want 7.5", got)
		}
	})
}
