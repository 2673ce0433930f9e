package sim

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible generation run.
// Two runs with the same SimulationKey and identical GenerationParams
// MUST produce identical call logs.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// KeyFromSeedOrClock returns NewSimulationKey(seed) for a non-zero seed and a
// wall-clock derived key otherwise. The chosen key is returned so callers can
// log it and replay the run.
func KeyFromSeedOrClock(seed int64) SimulationKey {
	if seed != 0 {
		return NewSimulationKey(seed)
	}
	return NewSimulationKey(time.Now().UnixNano())
}

// === Subsystem Constants ===

const (
	// SubsystemLead draws one lead id per (phone line, day).
	SubsystemLead = "lead"

	// SubsystemStatus fills and shuffles the per-day status multiset.
	SubsystemStatus = "status"

	// SubsystemSchedule draws the jitter applied to each cursor advance.
	SubsystemSchedule = "schedule"

	// SubsystemDuration draws answered-call talk time.
	SubsystemDuration = "duration"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Create one per generation request.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
