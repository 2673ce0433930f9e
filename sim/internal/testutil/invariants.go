// Package testutil provides shared test infrastructure for calllog-sim.
// It consolidates the call-log invariant checks used across the sim/ and
// sim/report/ test packages.
package testutil

import (
	"testing"
	"time"

	"github.com/calllog-sim/calllog-sim/sim"
)

// GroupKey identifies a (phone line, calendar day) group.
type GroupKey struct {
	PhoneLine string
	Day       string // YYYY-MM-DD
}

// GroupByLineDay partitions events by (phone line, day), preserving the
// generation order inside each group.
func GroupByLineDay(events []sim.CallEvent) map[GroupKey][]sim.CallEvent {
	groups := make(map[GroupKey][]sim.CallEvent)
	for _, e := range events {
		k := GroupKey{PhoneLine: e.PhoneLine, Day: e.Timestamp.Format(time.DateOnly)}
		groups[k] = append(groups[k], e)
	}
	return groups
}

// Date returns midnight UTC of the given YYYY-MM-DD date.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// AssertCallLogInvariants checks every per-event and per-group invariant of
// a generated log against the params it was generated from:
//   - attempts are 1..k per group with strictly increasing timestamps
//   - timestamps fall inside the day's business window, at second precision
//   - durations are 0 unless Answered, and within talk bounds when Answered
//   - lead id is constant per group and inside the lead id range
//   - Answered count per group never exceeds min(answered, calls)
func AssertCallLogInvariants(t *testing.T, events []sim.CallEvent, params sim.GenerationParams) {
	t.Helper()
	answeredCap := min(params.AnsweredPerDay, params.CallsPerDay)

	for key, group := range GroupByLineDay(events) {
		answered := 0
		for i, e := range group {
			if e.Attempt != i+1 {
				t.Errorf("%v: event %d has attempt %d, want %d", key, i, e.Attempt, i+1)
			}
			if i > 0 && !e.Timestamp.After(group[i-1].Timestamp) {
				t.Errorf("%v: timestamp %s not after previous %s", key, e.Timestamp, group[i-1].Timestamp)
			}
			if e.Timestamp.Nanosecond() != 0 {
				t.Errorf("%v: timestamp %s is not second precision", key, e.Timestamp)
			}
			y, m, d := e.Timestamp.Date()
			loc := e.Timestamp.Location()
			dayStart := time.Date(y, m, d, params.BusinessStartHour, 0, 0, 0, loc)
			dayEnd := time.Date(y, m, d, params.BusinessEndHour, 0, 0, 0, loc)
			if e.Timestamp.Before(dayStart) || !e.Timestamp.Before(dayEnd) {
				t.Errorf("%v: timestamp %s outside business window [%s, %s)", key, e.Timestamp, dayStart, dayEnd)
			}
			if e.LeadID != group[0].LeadID {
				t.Errorf("%v: lead id %d differs from group lead id %d", key, e.LeadID, group[0].LeadID)
			}
			if e.LeadID < sim.LeadIDMin || e.LeadID > sim.LeadIDMax {
				t.Errorf("%v: lead id %d outside [%d, %d]", key, e.LeadID, sim.LeadIDMin, sim.LeadIDMax)
			}
			if e.IsAnswered() {
				answered++
				if e.DurationSeconds < sim.MinTalkSeconds || e.DurationSeconds > sim.MaxTalkSeconds {
					t.Errorf("%v: answered duration %d outside [%d, %d]", key, e.DurationSeconds, sim.MinTalkSeconds, sim.MaxTalkSeconds)
				}
			} else if e.DurationSeconds != 0 {
				t.Errorf("%v: %s call has duration %d, want 0", key, e.Status, e.DurationSeconds)
			}
		}
		if answered > answeredCap {
			t.Errorf("%v: %d answered calls, cap is %d", key, answered, answeredCap)
		}
	}
}
