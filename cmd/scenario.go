package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/calllog-sim/calllog-sim/sim/scenario"
)

var validateScenarioPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Strictly parse and validate a scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		if validateScenarioPath == "" {
			logrus.Fatalf("--scenario is required")
		}
		s, err := scenario.Load(validateScenarioPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := s.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		params, _ := s.Params()
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d lines x %d days, at most %d records\n",
			len(params.PhoneLines), params.DayCount(), params.MaxRecords())
	},
}

var initScenarioCmd = &cobra.Command{
	Use:   "init-scenario",
	Short: "Print a starter scenario YAML to stdout",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := exampleScenario(time.Now()).Marshal()
		if err != nil {
			logrus.Fatalf("YAML marshal failed: %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

// exampleScenario is a valid one-week scenario starting at now's date.
func exampleScenario(now time.Time) *scenario.Scenario {
	s := scenario.Default()
	s.PhoneLines = []string{"555-0100", "555-0101"}
	s.StartDate = now.Format(time.DateOnly)
	s.EndDate = now.AddDate(0, 0, 6).Format(time.DateOnly)
	s.Report.Title = "Call Log"
	return s
}

func init() {
	validateCmd.Flags().StringVar(&validateScenarioPath, "scenario", "", "Path to the scenario YAML file")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initScenarioCmd)
}
