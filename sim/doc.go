// Package sim provides the synthetic call-activity generator for calllog-sim.
//
// # Reading Guide
//
// Start with these files to understand the generator:
//   - event.go: CallEvent records and the Status enumeration
//   - statuses.go: per-day status multiset construction and shuffle
//   - generator.go: the day/line/time-cursor walk that emits events
//
// # Architecture
//
// The sim package owns generation only; everything downstream lives in
// sub-packages:
//   - sim/report/: PDF table rendering, column schema, CSV export
//   - sim/scenario/: YAML scenario files that feed GenerationParams
//   - sim/trace/: truncation records collected during generation
//
// Randomness flows through PartitionedRNG (rng.go). Each concern (lead ids,
// statuses, schedule jitter, durations) draws from its own seeded stream, so
// a run is reproducible from its seed and tuning one knob does not reshuffle
// the draws of the others.
package sim
