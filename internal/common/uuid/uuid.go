package uuid

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/mafia/internal/common/uuid UUID

type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using the uuid package
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random (v4) UUID string
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// Sequential hands out predictable ids with a fixed prefix, for tests
// that need to know generated ids up front.
type Sequential struct {
	Prefix string

	mu   sync.Mutex
	next int
}

// NewUUID returns Prefix-1, Prefix-2, ...
func (s *Sequential) NewUUID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.Prefix + "-" + strconv.Itoa(s.next)
}
