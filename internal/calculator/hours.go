package calculator

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mmynk/hourbook/internal/models"
)

// PersonTotal represents the aggregated hours for one volunteer
type PersonTotal struct {
	Name      string  // First-seen casing
	Hours     float64 // Sum of every parseable Hours value
	Entries   int     // Rows carrying activity data (placeholders excluded)
	Unparsed  int     // Rows whose Hours could not be read as a number
	FirstDate string  // Earliest non-empty timestamp, YYYY-MM-DD
	LastDate  string  // Latest non-empty timestamp, YYYY-MM-DD
}

// ParseHours reads an hours cell. Blank cells count as zero; values may use
// a comma as the decimal separator. ok is false for anything else that is
// not a finite, non-negative number.
func ParseHours(raw string) (hours float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// SummarizeHours computes per-person totals over entries.
// People are grouped case-insensitively; the result is sorted by name,
// case-insensitively. People with only placeholder rows are reported with
// zero hours and zero entries.
func SummarizeHours(entries []models.Entry) []PersonTotal {
	totals := make(map[string]*PersonTotal)

	for _, name := range models.DistinctNames(entries) {
		totals[models.NameKey(name)] = &PersonTotal{Name: name}
	}

	for _, e := range entries {
		total, ok := totals[models.NameKey(e.Name)]
		if !ok || e.IsEmpty() {
			continue
		}
		total.Entries++

		if h, ok := ParseHours(e.Hours); ok {
			total.Hours += h
		} else {
			total.Unparsed++
		}

		if e.Timestamp == "" {
			continue
		}
		// YYYY-MM-DD compares correctly as text
		if total.FirstDate == "" || e.Timestamp < total.FirstDate {
			total.FirstDate = e.Timestamp
		}
		if e.Timestamp > total.LastDate {
			total.LastDate = e.Timestamp
		}
	}

	result := make([]PersonTotal, 0, len(totals))
	for _, t := range totals {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		return models.NameKey(result[i].Name) < models.NameKey(result[j].Name)
	})
	return result
}

// GrandTotal sums the hours of every person.
func GrandTotal(totals []PersonTotal) float64 {
	var sum float64
	for _, t := range totals {
		sum += t.Hours
	}
	return sum
}
