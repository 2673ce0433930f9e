package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/calllog-sim/calllog-sim/sim"
	"github.com/calllog-sim/calllog-sim/sim/report"
	"github.com/calllog-sim/calllog-sim/sim/scenario"
)

// stdoutPath selects standard output for --output.
const stdoutPath = "-"

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic call log and render it as a PDF table",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := buildScenario(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		g, err := generateFromScenario(s)
		if err != nil {
			logrus.Fatalf("Invalid input: %v", err)
		}

		// The status line must not interleave with a PDF on stdout.
		status := cmd.OutOrStdout()
		if s.Report.FileName == stdoutPath {
			status = cmd.ErrOrStderr()
		}

		if preview, _ := cmd.Flags().GetInt("preview"); preview > 0 {
			columns, _ := s.Columns()
			if err := report.WriteTable(status, g.Events, columns, preview); err != nil {
				logrus.Fatalf("Failed to print preview: %v", err)
			}
		}

		if s.Report.CSV != "" {
			if err := writeCSVFile(s, g.Events); err != nil {
				logrus.Fatalf("Failed to write CSV: %v", err)
			}
			logrus.Infof("CSV written to %s", s.Report.CSV)
		}

		doc, err := renderScenario(s, g.Events)
		if err != nil {
			logrus.Fatalf("Failed to render report: %v", err)
		}
		dest, err := writeDocument(s.Report.FileName, doc.Bytes, os.Stdout)
		if err != nil {
			logrus.Fatalf("Failed to write report: %v", err)
		}
		logrus.Infof("Report %s: %d pages written to %s", doc.ID, doc.Pages, dest)

		fmt.Fprintln(status, g.Summary.String())
	},
}

// registerGenerateFlags declares the generate flags on fs. Values are read
// back with the FlagSet getters so the set can be rebuilt in tests.
func registerGenerateFlags(fs *pflag.FlagSet) {
	fs.String("scenario", "", "YAML scenario file; explicit flags override its values")

	// Phone lines
	fs.StringArray("phone", nil, "Phone line to simulate (repeatable)")
	fs.String("phones", "", "Phone lines separated by newlines, commas or semicolons")
	fs.String("phones-file", "", "File listing phone lines, one per line")

	// Date range and business hours
	fs.String("start", "", "First day to simulate (YYYY-MM-DD)")
	fs.String("end", "", "Last day to simulate, inclusive (YYYY-MM-DD)")
	fs.String("timezone", "", "IANA time zone for dates and business hours (default UTC)")
	fs.Int("business-start", sim.DefaultBusinessStartHour, "Business day start hour (0-23)")
	fs.Int("business-end", sim.DefaultBusinessEndHour, "Business day end hour (0-23)")

	// Call plan
	fs.Int("calls-per-day", sim.DefaultCallsPerDay, "Planned calls per phone line per day")
	fs.Int("answered-per-day", sim.DefaultAnsweredPerDay, "Answered calls per phone line per day")
	fs.Float64("jitter", sim.DefaultMaxJitterSeconds, "Maximum spacing jitter in seconds")
	fs.Int64("seed", 0, "Seed for reproducible runs (0 = derive from the clock)")
	fs.String("trace", "", "Trace level (none, truncations)")

	// Outputs
	fs.String("output", report.DefaultFileName, "PDF file name ('-' for stdout)")
	fs.String("title", "", "PDF document title")
	fs.StringSlice("columns", nil, "Comma-separated column order (date_time,attempt,lead_id,status,length,phone)")
	fs.Float64Slice("column-widths", nil, "Comma-separated column widths in mm, one per column")
	fs.String("csv", "", "Also export the rows as CSV to this file")
	fs.Int("preview", 0, "Print the first N rows as a text table")
}

// buildScenario loads --scenario (or the defaults) and overlays every flag
// the user set explicitly.
func buildScenario(fs *pflag.FlagSet) (*scenario.Scenario, error) {
	s := scenario.Default()
	if path, _ := fs.GetString("scenario"); path != "" {
		loaded, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		s = loaded
		logrus.Infof("Loaded scenario from %s", path)
	}
	if err := applyGenerateFlags(s, fs); err != nil {
		return nil, err
	}
	return s, nil
}

func applyGenerateFlags(s *scenario.Scenario, fs *pflag.FlagSet) error {
	if fs.Changed("phone") || fs.Changed("phones") || fs.Changed("phones-file") {
		lines, err := phoneLinesFromFlags(fs)
		if err != nil {
			return err
		}
		s.PhoneLines = lines
	}
	if fs.Changed("start") {
		s.StartDate, _ = fs.GetString("start")
	}
	if fs.Changed("end") {
		s.EndDate, _ = fs.GetString("end")
	}
	if fs.Changed("timezone") {
		s.Timezone, _ = fs.GetString("timezone")
	}
	if fs.Changed("business-start") {
		s.BusinessHours.Start, _ = fs.GetInt("business-start")
	}
	if fs.Changed("business-end") {
		s.BusinessHours.End, _ = fs.GetInt("business-end")
	}
	if fs.Changed("calls-per-day") {
		s.CallsPerDay, _ = fs.GetInt("calls-per-day")
	}
	if fs.Changed("answered-per-day") {
		s.AnsweredPerDay, _ = fs.GetInt("answered-per-day")
	}
	if fs.Changed("jitter") {
		s.MaxJitterSeconds, _ = fs.GetFloat64("jitter")
	}
	if fs.Changed("seed") {
		s.Seed, _ = fs.GetInt64("seed")
	}
	if fs.Changed("trace") {
		s.Trace, _ = fs.GetString("trace")
	}
	if fs.Changed("output") {
		s.Report.FileName, _ = fs.GetString("output")
	}
	if fs.Changed("title") {
		s.Report.Title, _ = fs.GetString("title")
	}
	if fs.Changed("columns") {
		s.Report.Columns, _ = fs.GetStringSlice("columns")
	}
	if fs.Changed("column-widths") {
		s.Report.ColumnWidths, _ = fs.GetFloat64Slice("column-widths")
	}
	if fs.Changed("csv") {
		s.Report.CSV, _ = fs.GetString("csv")
	}
	return nil
}

// phoneLinesFromFlags merges --phone, --phones and --phones-file, in that order.
func phoneLinesFromFlags(fs *pflag.FlagSet) ([]string, error) {
	lines, _ := fs.GetStringArray("phone")
	raw, _ := fs.GetString("phones")
	lines = append(lines, sim.ParsePhoneLines(raw)...)
	if path, _ := fs.GetString("phones-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading phones file: %w", err)
		}
		lines = append(lines, sim.ParsePhoneLines(string(data))...)
	}
	return sim.NormalizePhoneLines(lines), nil
}

// writeDocument writes data to the resolved PDF file name, or to stdout when
// name is "-". Binary output to an interactive terminal is refused. Returns
// where the document went.
func writeDocument(name string, data []byte, stdout *os.File) (string, error) {
	if name == stdoutPath {
		if term.IsTerminal(int(stdout.Fd())) {
			return "", errors.New("refusing to write PDF to a terminal; redirect stdout or use --output FILE")
		}
		if _, err := stdout.Write(data); err != nil {
			return "", err
		}
		return "stdout", nil
	}
	path := report.ResolveFileName(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func writeCSVFile(s *scenario.Scenario, events []sim.CallEvent) error {
	columns, err := s.Columns()
	if err != nil {
		return err
	}
	f, err := os.Create(s.Report.CSV)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, events, columns); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	registerGenerateFlags(generateCmd.Flags())
	rootCmd.AddCommand(generateCmd)
}
