package sim

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidParams is wrapped by every GenerationParams.Validate failure.
var ErrInvalidParams = errors.New("invalid generation parameters")

// Defaults used by the CLI and HTTP surfaces when a value is not supplied.
const (
	DefaultBusinessStartHour = 9
	DefaultBusinessEndHour   = 21
	DefaultCallsPerDay       = 80
	DefaultAnsweredPerDay    = 7
	DefaultMaxJitterSeconds  = 10

	// Lead ids are drawn uniformly from [LeadIDMin, LeadIDMax].
	LeadIDMin = 300000
	LeadIDMax = 400000

	// Answered call durations are drawn uniformly from [MinTalkSeconds, MaxTalkSeconds].
	MinTalkSeconds = 1
	MaxTalkSeconds = 14
)

// GenerationParams groups the inputs of GenerateCallEvents.
// Collaborators call Validate before generation; GenerateCallEvents itself
// assumes the preconditions hold and never fails.
type GenerationParams struct {
	PhoneLines        []string  // raw identifiers; trimmed, blanks skipped
	StartDate         time.Time // first day, truncated to midnight
	EndDate           time.Time // last day (inclusive), truncated to midnight
	BusinessStartHour int       // [0,23]
	BusinessEndHour   int       // [0,23], > BusinessStartHour
	CallsPerDay       int       // planned attempts per (line, day), >= 1
	AnsweredPerDay    int       // [0, CallsPerDay]
	MaxJitterSeconds  float64   // >= 0
}

// BusinessSeconds returns the length of the daily business window in seconds.
func (p GenerationParams) BusinessSeconds() int {
	return (p.BusinessEndHour - p.BusinessStartHour) * 3600
}

// UniformIntervalSeconds returns the nominal spacing between consecutive
// attempts if CallsPerDay were spread evenly across the business window.
func (p GenerationParams) UniformIntervalSeconds() float64 {
	return float64(p.BusinessSeconds()) / float64(p.CallsPerDay)
}

// DayCount returns the number of calendar days in the inclusive range, or 0
// when StartDate is after EndDate.
func (p GenerationParams) DayCount() int {
	start, end := truncateToDay(p.StartDate), truncateToDay(p.EndDate.In(p.StartDate.Location()))
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// MaxRecords returns the upper bound on the number of events a run can emit,
// saturating at math.MaxInt.
func (p GenerationParams) MaxRecords() int {
	return saturatingMul(saturatingMul(p.DayCount(), len(NormalizePhoneLines(p.PhoneLines))), max(p.CallsPerDay, 0))
}

func saturatingMul(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// Validate checks the preconditions of GenerateCallEvents.
func (p GenerationParams) Validate() error {
	if len(NormalizePhoneLines(p.PhoneLines)) == 0 {
		return fmt.Errorf("%w: at least one phone number is required", ErrInvalidParams)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: both a start and an end date are required", ErrInvalidParams)
	}
	if truncateToDay(p.StartDate).After(truncateToDay(p.EndDate.In(p.StartDate.Location()))) {
		return fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidParams,
			p.StartDate.Format(time.DateOnly), p.EndDate.Format(time.DateOnly))
	}
	if err := validateHour("business_start_hour", p.BusinessStartHour); err != nil {
		return err
	}
	if err := validateHour("business_end_hour", p.BusinessEndHour); err != nil {
		return err
	}
	if p.BusinessEndHour <= p.BusinessStartHour {
		return fmt.Errorf("%w: business_end_hour (%d) must be after business_start_hour (%d)",
			ErrInvalidParams, p.BusinessEndHour, p.BusinessStartHour)
	}
	// The cursor advances at least one second per call, so a window of n
	// seconds never holds more than n calls.
	if p.CallsPerDay < 1 || p.CallsPerDay > p.BusinessSeconds() {
		return fmt.Errorf("%w: calls_per_day must be in [1, %d], got %d",
			ErrInvalidParams, p.BusinessSeconds(), p.CallsPerDay)
	}
	if p.AnsweredPerDay < 0 || p.AnsweredPerDay > p.CallsPerDay {
		return fmt.Errorf("%w: answered_per_day must be in [0, %d], got %d",
			ErrInvalidParams, p.CallsPerDay, p.AnsweredPerDay)
	}
	if math.IsNaN(p.MaxJitterSeconds) || math.IsInf(p.MaxJitterSeconds, 0) || p.MaxJitterSeconds < 0 {
		return fmt.Errorf("%w: max_jitter_seconds must be a non-negative finite number, got %f",
			ErrInvalidParams, p.MaxJitterSeconds)
	}
	return nil
}

func validateHour(name string, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: %s must be in [0, 23], got %d", ErrInvalidParams, name, hour)
	}
	return nil
}
