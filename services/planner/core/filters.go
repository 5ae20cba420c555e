package core

import "time"

// SessionFilter selects sessions either on one Date or in the inclusive From..To range.
type SessionFilter struct {
	Date *time.Time `json:"date"`
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}
