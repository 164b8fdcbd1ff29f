package resolution

import (
	"sort"
)

// VoteResult is the outcome of a day vote
type VoteResult struct {
	// ExecutedID is the entry to execute, empty when nobody is
	ExecutedID string

	// TopWeight is the highest tally
	TopWeight int

	// Tied is set when more than one target shares the top tally
	Tied bool
}

// ResolveVotes executes the unique top target when its weight is a strict
// majority of the alive count
func ResolveVotes(tally map[string]int, aliveCount int) *VoteResult {
	targets := make([]string, 0, len(tally))
	for id := range tally {
		targets = append(targets, id)
	}
	sort.Strings(targets)

	result := &VoteResult{}
	leader := ""
	for _, id := range targets {
		weight := tally[id]
		switch {
		case weight > result.TopWeight:
			result.TopWeight = weight
			result.Tied = false
			leader = id
		case weight == result.TopWeight && weight > 0:
			result.Tied = true
		}
	}

	if leader != "" && !result.Tied && 2*result.TopWeight > aliveCount {
		result.ExecutedID = leader
	}
	return result
}
