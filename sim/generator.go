package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/calllog-sim/calllog-sim/sim/trace"
)

// minAdvanceSeconds is the smallest step the time cursor may take. Jitter
// larger than the uniform interval would otherwise move the cursor backwards.
const minAdvanceSeconds = 1.0

// businessWindow is the [start, end) interval of one calendar day during
// which calls may be placed.
type businessWindow struct {
	start, end time.Time
}

func newBusinessWindow(day time.Time, startHour, endHour int) businessWindow {
	y, m, d := day.Date()
	return businessWindow{
		start: time.Date(y, m, d, startHour, 0, 0, 0, day.Location()),
		end:   time.Date(y, m, d, endHour, 0, 0, 0, day.Location()),
	}
}

// GenerateCallEvents synthesizes the call log described by params.
//
// Days run from StartDate to EndDate inclusive; within a day, phone lines are
// visited in input order; within a (line, day) group, events follow the time
// cursor. A StartDate after EndDate yields an empty log. Groups whose cursor
// reaches the end of the business window stop early and, when tr is non-nil,
// are recorded as truncations.
//
// Deterministic given the same params and rng seed.
func GenerateCallEvents(params GenerationParams, rng *PartitionedRNG, tr *trace.GenerationTrace) []CallEvent {
	lines := NormalizePhoneLines(params.PhoneLines)
	if len(lines) == 0 || params.CallsPerDay < 1 {
		return nil
	}

	loc := params.StartDate.Location()
	firstDay := truncateToDay(params.StartDate)
	lastDay := truncateToDay(params.EndDate.In(loc))
	interval := params.UniformIntervalSeconds()

	g := &lineDayGenerator{
		params:      params,
		interval:    interval,
		leadRNG:     rng.ForSubsystem(SubsystemLead),
		statusRNG:   rng.ForSubsystem(SubsystemStatus),
		scheduleRNG: rng.ForSubsystem(SubsystemSchedule),
		durationRNG: rng.ForSubsystem(SubsystemDuration),
		trace:       tr,
	}

	var events []CallEvent
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		window := newBusinessWindow(day, params.BusinessStartHour, params.BusinessEndHour)
		for _, line := range lines {
			events = g.appendLineDay(events, line, day, window)
		}
	}
	return events
}

// lineDayGenerator holds the per-run state shared by every (line, day) group.
type lineDayGenerator struct {
	params      GenerationParams
	interval    float64
	leadRNG     *rand.Rand
	statusRNG   *rand.Rand
	scheduleRNG *rand.Rand
	durationRNG *rand.Rand
	trace       *trace.GenerationTrace
}

func (g *lineDayGenerator) appendLineDay(events []CallEvent, line string, day time.Time, window businessWindow) []CallEvent {
	leadID := LeadIDMin + g.leadRNG.Intn(LeadIDMax-LeadIDMin+1)

	statuses := BuildStatusMultiset(g.params.CallsPerDay, g.params.AnsweredPerDay, g.statusRNG)
	ShuffleStatuses(statuses, g.statusRNG)

	windowSeconds := window.end.Sub(window.start).Seconds()
	offset := 0.0
	emitted := 0
	for _, status := range statuses {
		offset += g.nextAdvance()
		if offset >= windowSeconds {
			break
		}
		duration := 0
		if status == StatusAnswered {
			duration = MinTalkSeconds + g.durationRNG.Intn(MaxTalkSeconds-MinTalkSeconds+1)
		}
		emitted++
		events = append(events, CallEvent{
			Timestamp:       window.start.Add(time.Duration(math.Floor(offset)) * time.Second),
			Attempt:         emitted,
			LeadID:          leadID,
			Status:          status,
			DurationSeconds: duration,
			PhoneLine:       line,
		})
	}

	if emitted < len(statuses) {
		dropped := CountStatus(statuses[emitted:], StatusAnswered)
		logrus.Debugf("%s %s: business window closed after %d of %d calls (%d answered dropped)",
			line, day.Format(time.DateOnly), emitted, len(statuses), dropped)
		g.trace.RecordTruncation(trace.TruncationRecord{
			PhoneLine:       line,
			Day:             day,
			Planned:         len(statuses),
			Emitted:         emitted,
			DroppedAnswered: dropped,
		})
	}
	return events
}

// nextAdvance returns the uniform interval perturbed by jitter drawn
// uniformly from [-MaxJitterSeconds, +MaxJitterSeconds], never below
// minAdvanceSeconds.
func (g *lineDayGenerator) nextAdvance() float64 {
	advance := g.interval
	if g.params.MaxJitterSeconds > 0 {
		advance += (2*g.scheduleRNG.Float64() - 1) * g.params.MaxJitterSeconds
	}
	return math.Max(advance, minAdvanceSeconds)
}
