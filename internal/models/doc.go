// Package models defines the core domain models for Hourbook.
//
// # Entries
//
// The whole data set is a single flat table of Entry rows. A volunteer has
// no record of their own; the set of people is derived from the Name column.
//
//   - Entry: one row of the table (name, location, event, hours, timestamp)
//   - Columns: the canonical header, in file order
//
// # Identity
//
// Two names refer to the same person when they differ only in letter case.
// The first-seen casing is the one displayed and written thereafter. Use
// SameName rather than comparing names directly.
//
// # Placeholders
//
// Adding a person writes a placeholder row (empty location, event, hours and
// timestamp) so the name shows up in listings before any activity exists.
// The first activity recorded for that person fills the placeholder in place.
package models
