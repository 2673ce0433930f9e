package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calllog-sim/calllog-sim/sim/scenario"
)

func TestExampleScenario_IsValid(t *testing.T) {
	s := exampleScenario(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, s.Validate())
	params, err := s.Params()
	require.NoError(t, err)
	assert.Equal(t, 7, params.DayCount())
}

func TestInitScenario_OutputValidates(t *testing.T) {
	// GIVEN init-scenario output written to a file
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"init-scenario"})
	require.NoError(t, rootCmd.Execute())

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0o644))

	// WHEN it is loaded strictly
	s, err := scenario.Load(path)

	// THEN it parses and validates
	require.NoError(t, err)
	assert.NoError(t, s.Validate())
	assert.Len(t, s.PhoneLines, 2)
}

func TestValidateCommand_ReportsBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
phone_lines: ["555-0100", "555-0101"]
start_date: "2024-01-01"
end_date: "2024-01-10"
calls_per_day: 50
answered_per_day: 5
`), 0o644))
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"validate", "--scenario", path})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "OK: 2 lines x 10 days, at most 1000 records\n", out.String())
}
