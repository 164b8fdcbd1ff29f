package roster

// RosterError is a custom error type for roster errors
type RosterError string

// Error implements the error interface
func (e RosterError) Error() string {
	return string(e)
}

const (
	ErrInsufficientRoles    RosterError = "insufficient roles for block"
	ErrAlreadyDead          RosterError = "roster entry already dead"
	ErrEntryNotFound        RosterError = "roster entry not found"
	ErrDuplicateParticipant RosterError = "participant already has a roster entry"
	ErrNoParticipants       RosterError = "no participants to deal roles to"
	ErrNilCatalog           RosterError = "catalog cannot be nil"
	ErrNilRoller            RosterError = "dice roller cannot be nil"
	ErrNilUUIDGenerator     RosterError = "UUID generator cannot be nil"
)
