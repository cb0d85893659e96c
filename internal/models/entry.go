package models

import "strings"

// Column names of the backing table, in the order they are written.
const (
	ColumnName      = "Name"
	ColumnLocation  = "Location"
	ColumnEvent     = "Event"
	ColumnHours     = "Hours"
	ColumnTimestamp = "Timestamp"
)

// Columns is the canonical header of the backing table.
var Columns = []string{ColumnName, ColumnLocation, ColumnEvent, ColumnHours, ColumnTimestamp}

// DateLayout is the layout used for Entry.Timestamp.
const DateLayout = "2006-01-02"

// Entry is one row of the volunteer table.
// All fields are text; a missing value is the empty string.
type Entry struct {
	// Name is the volunteer's display name.
	Name string `json:"name"`

	// Location is where the activity happened (optional).
	Location string `json:"location"`

	// Event is what the activity was (optional).
	Event string `json:"event"`

	// Hours is the amount of time spent, kept as entered (optional).
	Hours string `json:"hours"`

	// Timestamp is the activity date as YYYY-MM-DD.
	// Empty for placeholder rows.
	Timestamp string `json:"timestamp"`
}

// IsEmpty reports whether the entry carries no activity data, i.e. location,
// event and hours are all empty. Placeholders are empty entries.
func (e Entry) IsEmpty() bool {
	return e.Location == "" && e.Event == "" && e.Hours == ""
}

// Values returns the entry's fields in Columns order.
func (e Entry) Values() []string {
	return []string{e.Name, e.Location, e.Event, e.Hours, e.Timestamp}
}

// EntryFromValues builds an Entry from a row laid out in Columns order.
// Short rows leave the trailing fields empty.
func EntryFromValues(values []string) Entry {
	get := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return Entry{
		Name:      get(0),
		Location:  get(1),
		Event:     get(2),
		Hours:     get(3),
		Timestamp: get(4),
	}
}

// NameKey returns the identity key used to compare volunteer names.
func NameKey(name string) string {
	return strings.ToLower(name)
}

// SameName reports whether a and b refer to the same volunteer.
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}

// DistinctNames returns the non-blank names of entries, deduplicated by
// case-insensitive identity, keeping the first-seen casing and file order.
func DistinctNames(entries []Entry) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		key := NameKey(e.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, e.Name)
	}
	return names
}
