package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveVotes(t *testing.T) {
	tests := []struct {
		name     string
		tally    map[string]int
		alive    int
		executed string
		tied     bool
	}{
		{name: "strict majority", tally: map[string]int{"a": 3, "b": 1}, alive: 5, executed: "a"},
		{name: "tie at two", tally: map[string]int{"a": 2, "b": 2}, alive: 5, tied: true},
		{name: "exactly half", tally: map[string]int{"a": 2, "b": 1}, alive: 4},
		{name: "plurality only", tally: map[string]int{"a": 2, "b": 1}, alive: 5},
		{name: "no votes", tally: map[string]int{}, alive: 5},
		{name: "mayor pushes over", tally: map[string]int{"a": 3}, alive: 4, executed: "a"},
		{name: "tie above half", tally: map[string]int{"a": 3, "b": 3}, alive: 5, tied: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ResolveVotes(tc.tally, tc.alive)
			assert.Equal(t, tc.executed, result.ExecutedID)
			assert.Equal(t, tc.tied, result.Tied)
		})
	}
}
