package core

// DedupeLegs drops legs whose id was already seen, keeping the first.
func DedupeLegs(legs []FlightLeg) []FlightLeg {
	seen := make(map[string]bool, len(legs))
	out := make([]FlightLeg, 0, len(legs))
	for _, l := range legs {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		out = append(out, l)
	}
	return out
}
