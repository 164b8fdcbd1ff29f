package events

// EventError is a custom error type for event errors
type EventError string

// Error implements the error interface
func (e EventError) Error() string {
	return string(e)
}

const (
	ErrInvalidEventKind EventError = "invalid event kind"
	ErrMatchEnded       EventError = "match has ended"
	ErrNilRoller        EventError = "dice roller cannot be nil"
	ErrNilUUIDGenerator EventError = "UUID generator cannot be nil"
)
