package trace

// TraceLevel controls the verbosity of generation tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTruncations captures every (phone line, day) group that ran
	// out of business hours before its planned calls were placed.
	TraceLevelTruncations TraceLevel = "truncations"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTruncations: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// GenerationTrace collects truncation records during call-log generation.
// A nil *GenerationTrace is valid and records nothing.
type GenerationTrace struct {
	Level       TraceLevel
	Truncations []TruncationRecord
}

// NewGenerationTrace creates a GenerationTrace ready for recording.
func NewGenerationTrace(level TraceLevel) *GenerationTrace {
	return &GenerationTrace{
		Level:       level,
		Truncations: make([]TruncationRecord, 0),
	}
}

// RecordTruncation appends a truncation record. No-op on a nil trace or when
// the level is none.
func (gt *GenerationTrace) RecordTruncation(record TruncationRecord) {
	if gt == nil || gt.Level == TraceLevelNone || gt.Level == "" {
		return
	}
	gt.Truncations = append(gt.Truncations, record)
}
