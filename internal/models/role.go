package models

// Faction is the alignment that decides who wins
type Faction string

const (
	// FactionMafia wins on parity with everyone else
	FactionMafia Faction = "mafia"

	// FactionTown wins once no mafia is alive
	FactionTown Faction = "town"

	// FactionNeutral plays for itself alongside the town coalition
	FactionNeutral Faction = "neutral"
)

// IsValid reports whether the faction is one of the known values
func (f Faction) IsValid() bool {
	switch f {
	case FactionMafia, FactionTown, FactionNeutral:
		return true
	}
	return false
}

// RoleTemplate describes a role that can be dealt to a participant
type RoleTemplate struct {
	// ID is the stable key of the role, e.g. "doctor"
	ID string

	// Name is the display name of the role
	Name string

	// Description is the text shown to the participant on assignment
	Description string

	// Faction is the alignment the role plays for
	Faction Faction

	// Abilities lists the night action kinds the role may submit
	Abilities []ActionKind

	// Priority orders night resolution; lower resolves first
	Priority int

	// UnlockLevel is the minimum participant level to be dealt this role
	UnlockLevel int

	// Special roles are only handed out by events, never drawn
	Special bool

	// Weight is the relative draw weight inside the role's pool
	Weight int
}

// Can reports whether the role may submit an action of the given kind
func (r *RoleTemplate) Can(kind ActionKind) bool {
	if r == nil {
		return false
	}
	for _, ability := range r.Abilities {
		if ability == kind {
			return true
		}
	}
	return false
}

// IsMafia reports whether the role belongs to the mafia faction
func (r *RoleTemplate) IsMafia() bool {
	return r != nil && r.Faction == FactionMafia
}
