// Package roster tracks who plays which role in a match and who is
// still alive.
package roster

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/mafia/internal/catalog"
	"github.com/KirkDiggler/mafia/internal/models"
)

// Roster indexes the entries of one match. It works on the entries it was
// given; callers persist them after mutating.
type Roster struct {
	catalog       *catalog.Catalog
	entries       []*models.RosterEntry
	byID          map[string]*models.RosterEntry
	byParticipant map[string]*models.RosterEntry
}

// New indexes the entries. Every participant may appear at most once.
func New(cat *catalog.Catalog, entries []*models.RosterEntry) (*Roster, error) {
	if cat == nil {
		return nil, ErrNilCatalog
	}

	r := &Roster{
		catalog:       cat,
		entries:       entries,
		byID:          make(map[string]*models.RosterEntry, len(entries)),
		byParticipant: make(map[string]*models.RosterEntry, len(entries)),
	}

	for _, e := range entries {
		if _, ok := r.byParticipant[e.ParticipantID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, e.ParticipantID)
		}
		r.byID[e.ID] = e
		r.byParticipant[e.ParticipantID] = e
	}

	return r, nil
}

// Entries returns every entry
func (r *Roster) Entries() []*models.RosterEntry {
	return r.entries
}

// Entry looks an entry up by id
func (r *Roster) Entry(id string) (*models.RosterEntry, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// ByParticipant looks an entry up by participant id
func (r *Roster) ByParticipant(participantID string) (*models.RosterEntry, bool) {
	e, ok := r.byParticipant[participantID]
	return e, ok
}

// Role returns the template dealt to the entry
func (r *Roster) Role(e *models.RosterEntry) (*models.RoleTemplate, error) {
	return r.catalog.Role(e.RoleID)
}

// Faction returns the faction of the entry's role
func (r *Roster) Faction(e *models.RosterEntry) models.Faction {
	f, _ := r.catalog.Faction(e.RoleID)
	return f
}

// Alive returns the alive entries in roster order
func (r *Roster) Alive() []*models.RosterEntry {
	var out []*models.RosterEntry
	for _, e := range r.entries {
		if e.Alive {
			out = append(out, e)
		}
	}
	return out
}

// AliveCount is the number of alive entries
func (r *Roster) AliveCount() int {
	n := 0
	for _, e := range r.entries {
		if e.Alive {
			n++
		}
	}
	return n
}

// AliveByFaction counts alive entries per faction
func (r *Roster) AliveByFaction() map[models.Faction]int {
	counts := make(map[models.Faction]int)
	for _, e := range r.entries {
		if e.Alive {
			counts[r.Faction(e)]++
		}
	}
	return counts
}

// MarkDead kills the entry. A second call returns ErrAlreadyDead and
// leaves the first death untouched.
func (r *Roster) MarkDead(entryID string, cause models.DeathCause, cycle int, at time.Time) error {
	e, ok := r.byID[entryID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	if !e.Alive {
		return ErrAlreadyDead
	}

	e.Alive = false
	e.DeathCause = cause
	e.DeathCycle = cycle
	diedAt := at
	e.DiedAt = &diedAt
	return nil
}
