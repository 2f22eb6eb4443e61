package model

import "time"

// DateFormat is the canonical format for DATE columns. Dates are kept
// as ISO strings so they compare and sort the same way in Go and SQLite.
const DateFormat = "2006-01-02"

// TimeFormat is the canonical format for TIME columns.
const TimeFormat = "15:04"

// Base contains common fields for all persisted entities. IDs are the
// auto-incrementing integer rowids assigned by SQLite.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Audited extends Base with the creating user.
type Audited struct {
	Base
	CreatedBy *int64 `json:"created_by,omitempty" db:"created_by"`
}

// ValidDate reports whether s is a well-formed ISO date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateFormat, s)
	return err == nil
}

// ValidTime reports whether s is a well-formed HH:MM time.
func ValidTime(s string) bool {
	_, err := time.Parse(TimeFormat, s)
	return err == nil
}

// Today returns the current date as an ISO string.
func Today() string {
	return time.Now().Format(DateFormat)
}
