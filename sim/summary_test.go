package sim

import (
	"testing"
	"time"
)

func TestSummarize_EmptyLog_ZeroValues(t *testing.T) {
	s := Summarize(nil)
	if s.Records != 0 || s.Days != 0 || s.PhoneLines != 0 || s.Answered != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
	if s.String() != "Generated 0 records for 0 days" {
		t.Errorf("unexpected status line %q", s.String())
	}
}

func TestSummarize_CountsRecordsDaysAndStatuses(t *testing.T) {
	// GIVEN events on two days across two lines
	d1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	events := []CallEvent{
		{Timestamp: d1, PhoneLine: "a", Status: StatusAnswered, DurationSeconds: 5},
		{Timestamp: d1.Add(time.Minute), PhoneLine: "a", Status: StatusBusy},
		{Timestamp: d1.Add(2 * time.Minute), PhoneLine: "b", Status: StatusAnswered, DurationSeconds: 9},
		{Timestamp: d2, PhoneLine: "a", Status: StatusOther},
	}

	// WHEN summarized
	s := Summarize(events)

	// THEN counts match
	if s.Records != 4 {
		t.Errorf("Records = %d, want 4", s.Records)
	}
	if s.Days != 2 {
		t.Errorf("Days = %d, want 2", s.Days)
	}
	if s.PhoneLines != 2 {
		t.Errorf("PhoneLines = %d, want 2", s.PhoneLines)
	}
	if s.Answered != 2 || s.ByStatus[StatusAnswered] != 2 {
		t.Errorf("Answered = %d (by status %d), want 2", s.Answered, s.ByStatus[StatusAnswered])
	}
	if s.TalkSeconds != 14 {
		t.Errorf("TalkSeconds = %d, want 14", s.TalkSeconds)
	}
	if s.String() != "Generated 4 records for 2 days" {
		t.Errorf("unexpected status line %q", s.String())
	}
}
