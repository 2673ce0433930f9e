package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	// GIVEN three events
	events := makeEvents(3)
	var buf bytes.Buffer

	// WHEN exported
	require.NoError(t, WriteCSV(&buf, events, DefaultColumns()))

	// THEN the CSV has a header plus one line per event, in column order
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, headers(DefaultColumns()), records[0])
	assert.Equal(t, values(DefaultColumns(), events[2]), records[3])
}

func TestWriteCSV_EmptyLog_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, DefaultColumns()))
	assert.Equal(t, "Date Time,Attempt,Lead ID,Status,Length (s),Phone\n", buf.String())
}

func TestWriteTable_LimitsRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, makeEvents(10), DefaultColumns(), 4))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+4+1)
	assert.True(t, strings.HasPrefix(lines[0], "Date Time"))
	assert.Equal(t, "... 6 more rows", strings.TrimSpace(lines[5]))
}

func TestWriteTable_NoLimit_AllRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, makeEvents(5), DefaultColumns(), 0))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 6)
}
