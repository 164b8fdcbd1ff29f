package ledger

// LedgerError is a custom error type for submission errors
type LedgerError string

// Error implements the error interface
func (e LedgerError) Error() string {
	return string(e)
}

const (
	ErrMatchEnded            LedgerError = "match has ended"
	ErrPhaseClosed           LedgerError = "phase does not accept this submission"
	ErrNotInMatch            LedgerError = "participant is not on the roster"
	ErrDeadActor             LedgerError = "actor is dead"
	ErrUnauthorizedAction    LedgerError = "role cannot perform this action"
	ErrInvalidActionKind     LedgerError = "invalid action kind"
	ErrAbilitySuppressed     LedgerError = "ability is suppressed this cycle"
	ErrTargetRequired        LedgerError = "action requires a target"
	ErrTargetNotFound        LedgerError = "target is not on the roster"
	ErrDeadTarget            LedgerError = "target is dead"
	ErrExtraTargetNotAllowed LedgerError = "extra target not allowed"
	ErrNilState              LedgerError = "match state cannot be nil"
	ErrNilRoster             LedgerError = "roster cannot be nil"
	ErrNilUUIDGenerator      LedgerError = "UUID generator cannot be nil"
)
