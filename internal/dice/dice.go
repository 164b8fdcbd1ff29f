package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/mafia/internal/dice Roller

// Roller is the single source of randomness for the engine. Role
// assignment and event selection draw from it; resolution never does.
type Roller interface {
	// Roll returns a value in [1, sides]
	Roll(sides int) int

	// Shuffle permutes n elements uniformly using swap
	Shuffle(n int, swap func(i, j int))

	// Chance reports true with probability p
	Chance(p float64) bool
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// RandRoller is a Roller backed by math/rand, safe for concurrent use
type RandRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) *RandRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &RandRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random value with the specified number of sides
func (r *RandRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

// Shuffle performs a Fisher-Yates shuffle over n elements
func (r *RandRoller) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.random.Shuffle(n, swap)
}

// Chance reports true with probability p
func (r *RandRoller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Float64() < p
}
