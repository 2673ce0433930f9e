package cmd

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseGenerateFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	registerGenerateFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestBuildScenario_FlagsOnly(t *testing.T) {
	fs := parseGenerateFlags(t,
		"--phone", "555-0100", "--phone", "555-0101",
		"--phones", "555-0102;555-0100\n555-0103",
		"--start", "2024-01-01", "--end", "2024-01-05",
		"--calls-per-day", "20", "--answered-per-day", "3",
		"--seed", "99", "--columns", "phone,status",
	)

	s, err := buildScenario(fs)

	require.NoError(t, err)
	assert.Equal(t, []string{"555-0100", "555-0101", "555-0102", "555-0100", "555-0103"}, s.PhoneLines)
	assert.Equal(t, "2024-01-01", s.StartDate)
	assert.Equal(t, "2024-01-05", s.EndDate)
	assert.Equal(t, 20, s.CallsPerDay)
	assert.Equal(t, 3, s.AnsweredPerDay)
	assert.Equal(t, int64(99), s.Seed)
	assert.Equal(t, []string{"phone", "status"}, s.Report.Columns)
	assert.NoError(t, s.Validate())
}

func TestBuildScenario_ExplicitFlagsOverrideYAML_OthersKept(t *testing.T) {
	// GIVEN a scenario file with seed 42 and 40 calls per day
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 42
phone_lines: ["555-0100"]
start_date: "2024-01-01"
end_date: "2024-01-02"
calls_per_day: 40
max_jitter_seconds: 3
`), 0o644))

	// WHEN only --seed is passed explicitly
	fs := parseGenerateFlags(t, "--scenario", path, "--seed", "7")
	s, err := buildScenario(fs)

	// THEN the seed is overridden and every other YAML value survives,
	// including values that differ from the flag defaults
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.Seed)
	assert.Equal(t, 40, s.CallsPerDay)
	assert.Equal(t, 3.0, s.MaxJitterSeconds)
	assert.Equal(t, []string{"555-0100"}, s.PhoneLines)
}

func TestBuildScenario_UnknownYAMLKey_Fails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("phone_line: [\"555\"]\n"), 0o644))

	_, err := buildScenario(parseGenerateFlags(t, "--scenario", path))

	assert.Error(t, err)
}

func TestPhoneLinesFromFlags_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phones.txt")
	require.NoError(t, os.WriteFile(path, []byte("555-0200\r\n\r\n 555-0201 \n"), 0o644))
	fs := parseGenerateFlags(t, "--phone", "555-0100", "--phones-file", path)

	lines, err := phoneLinesFromFlags(fs)

	require.NoError(t, err)
	assert.Equal(t, []string{"555-0100", "555-0200", "555-0201"}, lines)
}

func TestPhoneLinesFromFlags_MissingFile(t *testing.T) {
	fs := parseGenerateFlags(t, "--phones-file", filepath.Join(t.TempDir(), "none.txt"))
	_, err := phoneLinesFromFlags(fs)
	assert.Error(t, err)
}

func TestGenerateFromScenario_MissingInputsRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no phone lines", []string{"--start", "2024-01-01", "--end", "2024-01-01"}, "phone number"},
		{"no end date", []string{"--phone", "555-0100", "--start", "2024-01-01"}, "end date"},
		{"reversed range", []string{"--phone", "555-0100", "--start", "2024-01-02", "--end", "2024-01-01"}, "after end date"},
		{"answered above planned", []string{"--phone", "1", "--start", "2024-01-01", "--end", "2024-01-01",
			"--calls-per-day", "5", "--answered-per-day", "6"}, "answered_per_day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := buildScenario(parseGenerateFlags(t, tt.args...))
			require.NoError(t, err)

			g, err := generateFromScenario(s)

			require.Error(t, err)
			assert.Nil(t, g)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerateFromScenario_SameSeed_SameLog(t *testing.T) {
	args := []string{"--phone", "555-0100", "--phone", "555-0101",
		"--start", "2024-01-01", "--end", "2024-01-03", "--seed", "42"}
	s1, err := buildScenario(parseGenerateFlags(t, args...))
	require.NoError(t, err)
	s2, err := buildScenario(parseGenerateFlags(t, args...))
	require.NoError(t, err)

	g1, err := generateFromScenario(s1)
	require.NoError(t, err)
	g2, err := generateFromScenario(s2)
	require.NoError(t, err)

	assert.Equal(t, g1.Events, g2.Events)
	assert.Equal(t, 3, g1.Summary.Days)
	assert.Equal(t, g1.Summary.Records, len(g1.Events))
}

func TestGenerateFromScenario_EmptyLog_Warns(t *testing.T) {
	// GIVEN one call per day with no jitter, so the only slot hits business end
	hook := logtest.NewGlobal()
	defer hook.Reset()
	s, err := buildScenario(parseGenerateFlags(t, "--phone", "555-0100",
		"--start", "2024-01-01", "--end", "2024-01-02",
		"--calls-per-day", "1", "--answered-per-day", "0", "--jitter", "0", "--seed", "5"))
	require.NoError(t, err)

	// WHEN generated
	g, err := generateFromScenario(s)

	// THEN nothing is emitted and a warning says so
	require.NoError(t, err)
	assert.Empty(t, g.Events)
	assert.Equal(t, 0, g.Summary.Days)
	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.Contains(e.Message, "No call records generated") {
			warned = true
		}
	}
	assert.True(t, warned, "missing empty-log warning")
}

func TestWriteDocument_File_ResolvesExtension(t *testing.T) {
	dir := t.TempDir()

	dest, err := writeDocument(filepath.Join(dir, "january"), []byte("%PDF-1.3"), os.Stdout)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "january.pdf"), dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestWriteDocument_StdoutPipe_Writes(t *testing.T) {
	// GIVEN stdout redirected to a pipe (not a terminal)
	r, w, err := os.Pipe()
	require.NoError(t, err)

	// WHEN the document goes to "-"
	dest, err := writeDocument(stdoutPath, []byte("%PDF-1.3"), w)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// THEN the bytes arrive on the pipe
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	assert.Equal(t, "stdout", dest)
	assert.Equal(t, "%PDF-1.3", buf.String())
}

func TestGenerateCommand_WritesPDFAndCSV(t *testing.T) {
	// GIVEN an output directory
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "calls")
	csvPath := filepath.Join(dir, "calls.csv")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	// WHEN generate runs for two lines over two days
	rootCmd.SetArgs([]string{"generate",
		"--phone", "555-0100", "--phone", "555-0101",
		"--start", "2024-01-01", "--end", "2024-01-02",
		"--seed", "42", "--output", pdfPath, "--csv", csvPath, "--preview", "3",
	})
	require.NoError(t, rootCmd.Execute())

	// THEN a PDF and a matching CSV are written and the status line printed
	pdf, err := os.ReadFile(pdfPath + ".pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Generated ")
	assert.Contains(t, output, " records for 2 days")
	assert.True(t, strings.Contains(output, "Date Time"), "preview header missing")
	assert.Contains(t, output, "Generated "+strconv.Itoa(len(rows)-1)+" records")
}
