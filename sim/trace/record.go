// Package trace provides generation-trace recording for call-log runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import "time"

// TruncationRecord captures a (phone line, day) group whose time cursor
// reached the end of the business window before every planned status was
// placed.
type TruncationRecord struct {
	PhoneLine       string
	Day             time.Time
	Planned         int // size of the shuffled status multiset
	Emitted         int // events actually produced
	DroppedAnswered int // Answered entries among the discarded tail
}

// Dropped returns how many planned calls were discarded.
func (r TruncationRecord) Dropped() int {
	return r.Planned - r.Emitted
}
