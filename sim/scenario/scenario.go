// Package scenario loads call-log generation scenarios from YAML files.
// A scenario bundles the generator parameters, the seed and the report
// layout so a run can be reproduced from a single file.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/calllog-sim/calllog-sim/sim"
	"github.com/calllog-sim/calllog-sim/sim/report"
	"github.com/calllog-sim/calllog-sim/sim/trace"
)

// CurrentVersion is written by Default and accepted by Validate.
const CurrentVersion = "1"

// Scenario is the top-level scenario configuration.
// Loaded from YAML via Load(path); the HTTP service accepts the same
// document as JSON.
type Scenario struct {
	Version          string        `yaml:"version" json:"version"`
	Seed             int64         `yaml:"seed" json:"seed"` // 0 = derive from the clock
	PhoneLines       []string      `yaml:"phone_lines" json:"phone_lines"`
	StartDate        string        `yaml:"start_date" json:"start_date"` // YYYY-MM-DD
	EndDate          string        `yaml:"end_date" json:"end_date"`     // YYYY-MM-DD, inclusive
	Timezone         string        `yaml:"timezone,omitempty" json:"timezone,omitempty"`
	BusinessHours    BusinessHours `yaml:"business_hours" json:"business_hours"`
	CallsPerDay      int           `yaml:"calls_per_day" json:"calls_per_day"`
	AnsweredPerDay   int           `yaml:"answered_per_day" json:"answered_per_day"`
	MaxJitterSeconds float64       `yaml:"max_jitter_seconds" json:"max_jitter_seconds"`
	Trace            string        `yaml:"trace,omitempty" json:"trace,omitempty"`
	Report           ReportSpec    `yaml:"report" json:"report"`
}

// BusinessHours is the daily calling window, as whole hours.
type BusinessHours struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// ReportSpec configures the rendered outputs.
type ReportSpec struct {
	FileName     string    `yaml:"file_name" json:"file_name"`
	Title        string    `yaml:"title,omitempty" json:"title,omitempty"`
	Author       string    `yaml:"author,omitempty" json:"author,omitempty"`
	Orientation  string    `yaml:"orientation,omitempty" json:"orientation,omitempty"`
	PageSize     string    `yaml:"page_size,omitempty" json:"page_size,omitempty"`
	Columns      []string  `yaml:"columns,omitempty" json:"columns,omitempty"`
	ColumnWidths []float64 `yaml:"column_widths,omitempty" json:"column_widths,omitempty"`
	CSV          string    `yaml:"csv,omitempty" json:"csv,omitempty"`
}

// Default returns a scenario populated with the generator defaults. Phone
// lines and the date range have no default and must be supplied. Fields
// absent from a loaded file keep these values.
func Default() *Scenario {
	return &Scenario{
		Version: CurrentVersion,
		BusinessHours: BusinessHours{
			Start: sim.DefaultBusinessStartHour,
			End:   sim.DefaultBusinessEndHour,
		},
		CallsPerDay:      sim.DefaultCallsPerDay,
		AnsweredPerDay:   sim.DefaultAnsweredPerDay,
		MaxJitterSeconds: sim.DefaultMaxJitterSeconds,
		Trace:            string(trace.TraceLevelTruncations),
		Report:           ReportSpec{FileName: report.DefaultFileName},
	}
}

// Load reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario over Default().
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return s, nil
}

// Marshal encodes the scenario as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Location returns the scenario time zone (UTC when unset).
func (s *Scenario) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

// Params converts the scenario into generator parameters. Dates are parsed
// in the scenario time zone; an empty date yields a zero time, which
// GenerationParams.Validate rejects.
func (s *Scenario) Params() (sim.GenerationParams, error) {
	loc, err := s.Location()
	if err != nil {
		return sim.GenerationParams{}, err
	}
	start, err := parseDate("start_date", s.StartDate, loc)
	if err != nil {
		return sim.GenerationParams{}, err
	}
	end, err := parseDate("end_date", s.EndDate, loc)
	if err != nil {
		return sim.GenerationParams{}, err
	}
	return sim.GenerationParams{
		PhoneLines:        sim.NormalizePhoneLines(s.PhoneLines),
		StartDate:         start,
		EndDate:           end,
		BusinessStartHour: s.BusinessHours.Start,
		BusinessEndHour:   s.BusinessHours.End,
		CallsPerDay:       s.CallsPerDay,
		AnsweredPerDay:    s.AnsweredPerDay,
		MaxJitterSeconds:  s.MaxJitterSeconds,
	}, nil
}

// Columns returns the report column layout.
func (s *Scenario) Columns() ([]report.Column, error) {
	return report.ParseColumns(s.Report.Columns, s.Report.ColumnWidths)
}

// ReportOptions overlays the scenario's report settings on report.DefaultOptions.
func (s *Scenario) ReportOptions() report.Options {
	opts := report.DefaultOptions()
	if s.Report.Title != "" {
		opts.Title = s.Report.Title
	}
	if s.Report.Author != "" {
		opts.Author = s.Report.Author
	}
	if s.Report.Orientation != "" {
		opts.Orientation = s.Report.Orientation
	}
	if s.Report.PageSize != "" {
		opts.PageSize = s.Report.PageSize
	}
	return opts
}

// Validate checks that every field of the scenario is usable.
func (s *Scenario) Validate() error {
	if s.Version != "" && s.Version != CurrentVersion {
		return fmt.Errorf("unsupported scenario version %q; valid: %s", s.Version, CurrentVersion)
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, truncations", s.Trace)
	}
	params, err := s.Params()
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if _, err := s.Columns(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := s.ReportOptions().Validate(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

func parseDate(field, value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD, got %q", field, value)
	}
	return d, nil
}
