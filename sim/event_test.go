package sim

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusAnswered, "Answered"},
		{StatusBusy, "Busy"},
		{StatusNotAnswered, "Not Answered"},
		{StatusOther, "Others"},
		{Status(99), "Status(99)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestParseStatus_RoundTripsEveryLabel(t *testing.T) {
	for _, s := range AllStatuses() {
		got, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStatus("Voicemail")
	assert.Error(t, err)
}

func TestCallEvent_JSON_UsesStatusLabel(t *testing.T) {
	// GIVEN an answered event
	e := CallEvent{
		Timestamp:       time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
		Attempt:         1,
		LeadID:          312345,
		Status:          StatusNotAnswered,
		DurationSeconds: 0,
		PhoneLine:       "555-0100",
	}

	// WHEN marshalled
	data, err := json.Marshal(e)
	require.NoError(t, err)

	// THEN the status is written by label and decodes back
	assert.Contains(t, string(data), `"status":"Not Answered"`)
	var back CallEvent
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, StatusNotAnswered, back.Status)
	assert.True(t, back.Timestamp.Equal(e.Timestamp))
}

func TestStatus_YAML_DecodesLabel(t *testing.T) {
	var v struct {
		Status Status `yaml:"status"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("status: Busy\n"), &v))
	assert.Equal(t, StatusBusy, v.Status)

	err := yaml.Unmarshal([]byte("status: Ringing\n"), &v)
	assert.Error(t, err)
}

func TestStatus_MarshalUnknown_Fails(t *testing.T) {
	_, err := json.Marshal(Status(42))
	assert.Error(t, err)
}

func TestCallEvent_Day_TruncatesToMidnight(t *testing.T) {
	e := CallEvent{Timestamp: time.Date(2024, 2, 29, 17, 4, 5, 0, time.UTC)}
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), e.Day())
}
