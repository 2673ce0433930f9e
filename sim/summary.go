package sim

import "fmt"

// Summary aggregates a generated call log for status reporting.
type Summary struct {
	Records     int            `json:"records"`
	Days        int            `json:"days"`        // distinct calendar dates present in the log
	PhoneLines  int            `json:"phone_lines"` // distinct phone lines present in the log
	Answered    int            `json:"answered"`
	TalkSeconds int            `json:"talk_seconds"`
	ByStatus    map[Status]int `json:"by_status"`
}

// Summarize computes aggregate statistics over events.
// Safe for nil or empty logs (returns zero-value fields).
func Summarize(events []CallEvent) Summary {
	s := Summary{ByStatus: make(map[Status]int)}
	days := make(map[string]struct{})
	lines := make(map[string]struct{})
	for _, e := range events {
		s.Records++
		s.ByStatus[e.Status]++
		s.TalkSeconds += e.DurationSeconds
		if e.IsAnswered() {
			s.Answered++
		}
		days[e.Timestamp.Format("2006-01-02")] = struct{}{}
		lines[e.PhoneLine] = struct{}{}
	}
	s.Days = len(days)
	s.PhoneLines = len(lines)
	return s
}

// String returns the human status line shown after a run.
func (s Summary) String() string {
	return fmt.Sprintf("Generated %d records for %d days", s.Records, s.Days)
}
