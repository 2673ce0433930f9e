package cmd

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/calllog-sim/calllog-sim/sim"
	"github.com/calllog-sim/calllog-sim/sim/report"
	"github.com/calllog-sim/calllog-sim/sim/scenario"
	"github.com/calllog-sim/calllog-sim/sim/trace"
)

// generation is one validated, generated call log.
type generation struct {
	Params  sim.GenerationParams
	Key     sim.SimulationKey
	Events  []sim.CallEvent
	Summary sim.Summary
	Trace   *trace.TraceSummary
}

// generateFromScenario validates s and runs the generator. A zero seed is
// replaced by a clock-derived key, which is logged so the run can be replayed.
func generateFromScenario(s *scenario.Scenario) (*generation, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	params, err := s.Params()
	if err != nil {
		return nil, err
	}

	key := sim.KeyFromSeedOrClock(s.Seed)
	if s.Seed == 0 {
		logrus.Infof("No seed given; using clock-derived seed %d", int64(key))
	}

	gt := trace.NewGenerationTrace(trace.TraceLevel(s.Trace))
	events := sim.GenerateCallEvents(params, sim.NewPartitionedRNG(key), gt)

	g := &generation{
		Params:  params,
		Key:     key,
		Events:  events,
		Summary: sim.Summarize(events),
		Trace:   trace.Summarize(gt),
	}
	logTruncations(g.Trace)
	if len(events) == 0 {
		logrus.Warnf("No call records generated for %d days x %d lines; check business hours, calls_per_day and max_jitter_seconds",
			params.DayCount(), len(params.PhoneLines))
	}
	return g, nil
}

func logTruncations(ts *trace.TraceSummary) {
	if ts.TruncatedGroups == 0 {
		return
	}
	logrus.Warnf("%d line-days ran past business hours: %d planned calls dropped (%d answered) across %d lines",
		ts.TruncatedGroups, ts.DroppedCalls, ts.DroppedAnswered, ts.AffectedLines)
	lines := make([]string, 0, len(ts.LineDistribution))
	for line := range ts.LineDistribution {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	for _, line := range lines {
		logrus.Debugf("  %s: %d truncated days", line, ts.LineDistribution[line])
	}
}

// renderScenario renders events with the scenario's report layout.
func renderScenario(s *scenario.Scenario, events []sim.CallEvent) (*report.Document, error) {
	columns, err := s.Columns()
	if err != nil {
		return nil, err
	}
	opts := s.ReportOptions()
	opts.DocumentID = uuid.NewString()
	r, err := report.NewRenderer(opts, columns)
	if err != nil {
		return nil, err
	}
	doc, err := r.Render(events)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", opts.DocumentID, err)
	}
	return doc, nil
}
