package gridreport

import "fmt"

// SheetNames turns per-target requested names into final worksheet names.
// Empty entries synthesize "Sheet {index}" (1-based), duplicates get a
// " (n)" suffix until unique, and every final name is checked against the
// worksheet name limit before any worksheet exists.
func SheetNames(requested []string, targetCount int) ([]string, error) {
	if len(requested) == 0 {
		requested = []string{""}
	}
	names, err := Broadcast(requested, targetCount)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, targetCount)
	out := make([]string, targetCount)
	for i, name := range names {
		if name == "" {
			name = fmt.Sprintf("Sheet %d", i+1)
		}
		unique := name
		for n := 2; ; n++ {
			if _, dup := seen[unique]; !dup {
				break
			}
			unique = fmt.Sprintf("%s (%d)", name, n)
		}
		if len(unique) > MaxSheetNameLength {
			return nil, &SheetNameTooLongError{Name: unique}
		}
		seen[unique] = struct{}{}
		out[i] = unique
	}
	return out, nil
}
