// Package events applies the special effects that perturb a match for a
// cycle.
package events

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/mafia/internal/common/uuid"
	"github.com/KirkDiggler/mafia/internal/dice"
	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/roster"
)

// DefaultChance is the probability of a random event per cycle
const DefaultChance = 0.2

// Payload keys
const (
	PayloadParticipantID   = "participant_id"
	PayloadParticipantName = "participant_name"
	PayloadRole            = "role"
)

// Config holds dependencies for the injector
type Config struct {
	Roller        dice.Roller
	UUIDGenerator uuid.UUID

	// Chance of a random event per cycle, DefaultChance when zero. A negative
	// chance disables random events.
	Chance float64
}

// Injector creates events and applies their effects to a loaded match
type Injector struct {
	roller dice.Roller
	ids    uuid.UUID
	chance float64
}

// New creates a new injector
func New(cfg *Config) (*Injector, error) {
	if cfg.Roller == nil {
		return nil, ErrNilRoller
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	chance := cfg.Chance
	if chance == 0 {
		chance = DefaultChance
	}

	return &Injector{
		roller: cfg.Roller,
		ids:    cfg.UUIDGenerator,
		chance: chance,
	}, nil
}

// Trigger fires an event of the given kind for the current cycle. A kind
// that already fired this cycle returns the existing event and false.
func (i *Injector) Trigger(state *models.MatchState, r *roster.Roster, kind models.EventKind, at time.Time) (*models.Event, bool, error) {
	if !kind.IsValid() {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidEventKind, kind)
	}
	if state.Match.Status.IsEnded() {
		return nil, false, ErrMatchEnded
	}

	for _, e := range state.Events {
		if e.Kind == kind && e.Cycle == state.Match.Cycle {
			return e, false, nil
		}
	}

	event := &models.Event{
		ID:        i.ids.NewUUID(),
		MatchID:   state.Match.ID,
		Kind:      kind,
		Cycle:     state.Match.Cycle,
		Active:    true,
		Payload:   make(map[string]string),
		StartedAt: at,
	}

	switch kind {
	case models.EventKindPlague:
		if e := i.pick(r); e != nil {
			e.AbilityCooldown = 1
			i.affect(event, e)
		}
	case models.EventKindRevelation:
		if e := i.pick(r); e != nil {
			e.Revealed = true
			i.affect(event, e)
			event.Payload[PayloadRole] = e.RoleID
		}
	case models.EventKindMayorElection:
		if e := i.pick(r); e != nil {
			e.Mayor = true
			i.affect(event, e)
		}
	}

	state.Events = append(state.Events, event)
	return event, true, nil
}

// MaybeTriggerRandom fires a uniformly chosen kind with the configured
// chance. It returns nil when nothing fired.
func (i *Injector) MaybeTriggerRandom(state *models.MatchState, r *roster.Roster, at time.Time) (*models.Event, error) {
	if i.chance < 0 || !i.roller.Chance(i.chance) {
		return nil, nil
	}

	kind := models.EventKinds[i.roller.Roll(len(models.EventKinds))-1]
	event, created, err := i.Trigger(state, r, kind, at)
	if err != nil || !created {
		return nil, err
	}
	return event, nil
}

// Complete ends the event and reverts any ability suppression it applied.
// Mayors and revealed roles stay.
func (i *Injector) Complete(r *roster.Roster, event *models.Event, at time.Time) {
	if event.Completed {
		return
	}

	if event.Kind == models.EventKindPlague && event.AffectedID != "" {
		if e, ok := r.Entry(event.AffectedID); ok {
			e.AbilityCooldown = 0
		}
	}

	event.Active = false
	event.Completed = true
	endedAt := at
	event.EndedAt = &endedAt
}

// CompleteActive ends every ongoing event of the match
func (i *Injector) CompleteActive(state *models.MatchState, r *roster.Roster, at time.Time) []*models.Event {
	var done []*models.Event
	for _, e := range state.Events {
		if e.IsOngoing() {
			i.Complete(r, e, at)
			done = append(done, e)
		}
	}
	return done
}

func (i *Injector) pick(r *roster.Roster) *models.RosterEntry {
	alive := r.Alive()
	if len(alive) == 0 {
		return nil
	}
	return alive[i.roller.Roll(len(alive))-1]
}

func (i *Injector) affect(event *models.Event, e *models.RosterEntry) {
	event.AffectedID = e.ID
	event.Payload[PayloadParticipantID] = e.ParticipantID
	event.Payload[PayloadParticipantName] = e.ParticipantName
}
