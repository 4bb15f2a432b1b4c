package gridreport

import "fmt"

// Broadcast expands a per-call knob vector to exactly targetCount values by
// cyclic repetition: a single value repeats, a shorter vector cycles
// ([a b] over 5 targets gives [a b a b a]). Style objects broadcast as one
// object per target, never per cell.
func Broadcast[T any](values []T, targetCount int) ([]T, error) {
	if targetCount < 0 {
		return nil, fmt.Errorf("target count must be >= 0, got %d", targetCount)
	}
	if targetCount == 0 {
		return []T{}, nil
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("cannot broadcast an empty vector over %d targets", targetCount)
	}
	out := make([]T, targetCount)
	for i := range out {
		out[i] = values[i%len(values)]
	}
	return out, nil
}
