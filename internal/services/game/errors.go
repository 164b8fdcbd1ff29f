package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrMatchNotFound       GameError = "match not found"
	ErrLobbyBusy           GameError = "lobby already has an unfinished match"
	ErrInvalidMatchState   GameError = "invalid match state"
	ErrMatchEnded          GameError = "match has ended"
	ErrMatchPaused         GameError = "match is paused"
	ErrMatchFull           GameError = "match is at maximum capacity"
	ErrNotEnoughPlayers    GameError = "not enough participants to start"
	ErrAlreadyInMatch      GameError = "participant already in match"
	ErrInAnotherMatch      GameError = "participant is playing another match"
	ErrNotInMatch          GameError = "participant not in match"
	ErrRolesNotAssigned    GameError = "roles have not been assigned yet"
	ErrResolutionFailed    GameError = "resolution failed, match flagged for review"
	ErrMatchBusy           GameError = "match is busy, try again"
	ErrNilConfig           GameError = "config cannot be nil"
	ErrNilCatalog          GameError = "catalog cannot be nil"
	ErrNilMatchRepo        GameError = "match repository cannot be nil"
	ErrNilPlayerRepo       GameError = "player repository cannot be nil"
	ErrNilMessagingService GameError = "messaging service cannot be nil"
	ErrNilEventInjector    GameError = "event injector cannot be nil"
	ErrNilDiceRoller       GameError = "dice roller cannot be nil"
	ErrNilClock            GameError = "clock cannot be nil"
	ErrNilUUIDGenerator    GameError = "UUID generator cannot be nil"
)

// persistError carries a failure whose state changes must still be
// committed, such as a match paused for review
type persistError struct {
	err error
}

func (e *persistError) Error() string {
	return e.err.Error()
}

func (e *persistError) Unwrap() error {
	return e.err
}
