package sim

import "math/rand"

// BuildStatusMultiset returns the planned outcomes for one (phone line, day):
// min(answered, total) Answered entries first, then total-answered entries
// each drawn uniformly from Busy, Not Answered and Others.
// The result is unshuffled; see ShuffleStatuses.
func BuildStatusMultiset(total, answered int, rng *rand.Rand) []Status {
	if total <= 0 {
		return nil
	}
	answered = max(0, min(answered, total))
	statuses := make([]Status, 0, total)
	for i := 0; i < answered; i++ {
		statuses = append(statuses, StatusAnswered)
	}
	for i := answered; i < total; i++ {
		statuses = append(statuses, unansweredStatuses[rng.Intn(len(unansweredStatuses))])
	}
	return statuses
}

// ShuffleStatuses permutes statuses in place (Fisher-Yates). The resulting
// order is the order in which statuses are assigned to time slots.
func ShuffleStatuses(statuses []Status, rng *rand.Rand) {
	for i := len(statuses) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		statuses[i], statuses[j] = statuses[j], statuses[i]
	}
}

// CountStatus returns how many entries equal s.
func CountStatus(statuses []Status, s Status) int {
	n := 0
	for _, st := range statuses {
		if st == s {
			n++
		}
	}
	return n
}
