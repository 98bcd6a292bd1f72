package kitchen

import "sort"

// UnlockPolicy maps recipe IDs to the total star count that unlocks them.
type UnlockPolicy map[string]int

// Unlocked returns the recipes whose threshold is at most total, sorted by
// threshold and then ID.
func (p UnlockPolicy) Unlocked(total int) []string {
	out := make([]string, 0, len(p))
	for id, need := range p {
		if need <= total {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if p[out[i]] != p[out[j]] {
			return p[out[i]] < p[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// Free returns the recipes that are unlocked from the start.
func (p UnlockPolicy) Free() []string {
	return p.Unlocked(0)
}

// NextUnlock returns the cheapest recipe still locked at total and how many
// more stars it needs. ok is false when everything is unlocked.
func (p UnlockPolicy) NextUnlock(total int) (id string, missing int, ok bool) {
	best := -1
	for rid, need := range p {
		if need <= total {
			continue
		}
		if best < 0 || need < best || (need == best && rid < id) {
			best = need
			id = rid
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return id, best - total, true
}
