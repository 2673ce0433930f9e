package sim

import (
	"fmt"
	"time"
)

// Status is the outcome of a single call attempt.
type Status int

const (
	StatusAnswered Status = iota
	StatusBusy
	StatusNotAnswered
	StatusOther
)

// unansweredStatuses is the pool non-answered slots are drawn from, uniformly.
var unansweredStatuses = []Status{StatusBusy, StatusNotAnswered, StatusOther}

var statusLabels = map[Status]string{
	StatusAnswered:    "Answered",
	StatusBusy:        "Busy",
	StatusNotAnswered: "Not Answered",
	StatusOther:       "Others",
}

// AllStatuses returns every status in enumeration order.
func AllStatuses() []Status {
	return []Status{StatusAnswered, StatusBusy, StatusNotAnswered, StatusOther}
}

// String returns the label printed in reports ("Not Answered", "Others", ...).
func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus maps a report label back to its Status.
func ParseStatus(label string) (Status, error) {
	for s, l := range statusLabels {
		if l == label {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown call status %q; valid: Answered, Busy, Not Answered, Others", label)
}

// MarshalText encodes the status by label for JSON and YAML.
func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusLabels[s]; !ok {
		return nil, fmt.Errorf("cannot marshal unknown call status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status label.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CallEvent is one simulated call attempt.
// Events are created once by GenerateCallEvents and never mutated afterwards.
type CallEvent struct {
	Timestamp       time.Time `json:"timestamp"` // call start, second precision
	Attempt         int       `json:"attempt"`   // 1-based within (phone line, day)
	LeadID          int       `json:"lead_id"`   // shared by all events of a (phone line, day)
	Status          Status    `json:"status"`
	DurationSeconds int       `json:"duration_seconds"` // 0 unless Answered
	PhoneLine       string    `json:"phone_line"`
}

// Day returns the calendar date of the event, truncated to midnight in the
// event's location.
func (e CallEvent) Day() time.Time {
	return truncateToDay(e.Timestamp)
}

// IsAnswered reports whether the call connected.
func (e CallEvent) IsAnswered() bool {
	return e.Status == StatusAnswered
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
