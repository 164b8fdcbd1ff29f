// Package resolution decides what happens at the end of a night and of a
// vote. It never draws randomness: identical input gives identical output.
package resolution

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/mafia/internal/catalog"
	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/roster"
)

// NightInput contains everything a night resolution reads
type NightInput struct {
	Catalog *catalog.Catalog

	// Roster is every entry of the match, alive or not
	Roster []*models.RosterEntry

	// Actions are the cycle's open actions in submission order
	Actions []*models.Action

	// Inquisition makes investigations reveal the exact role
	Inquisition bool
}

// NightResult is the outcome of a night. Nothing is mutated until Apply.
type NightResult struct {
	// Outcomes by action id
	Outcomes map[string]*models.Outcome

	// Order is the processing order after the priority sort
	Order []*models.Action

	// Deaths are entry ids killed this night, in kill order
	Deaths []string

	// Blocked are entry ids whose actor was blocked
	Blocked []string

	actions []*models.Action
}

// ResolveNight runs the priority-ordered pass over the night's actions.
// Every reference is checked before anything is decided, so a failure
// leaves no partial result.
func ResolveNight(input *NightInput) (*NightResult, error) {
	if input == nil || input.Catalog == nil {
		return nil, ErrNilCatalog
	}

	entries := make(map[string]*models.RosterEntry, len(input.Roster))
	for _, e := range input.Roster {
		entries[e.ID] = e
	}

	priorities := make(map[string]int, len(input.Actions))
	for _, a := range input.Actions {
		actor, ok := entries[a.ActorID]
		if !ok {
			return nil, fmt.Errorf("%w: actor %s of action %s", ErrMissingEntry, a.ActorID, a.ID)
		}
		if a.Kind.NeedsTarget() && a.TargetID == "" {
			return nil, fmt.Errorf("%w: %s action %s has no target", ErrMissingEntry, a.Kind, a.ID)
		}
		for _, id := range []string{a.TargetID, a.ExtraTargetID} {
			if id == "" {
				continue
			}
			if _, ok := entries[id]; !ok {
				return nil, fmt.Errorf("%w: target %s of action %s", ErrMissingEntry, id, a.ID)
			}
		}
		priority, ok := input.Catalog.Priority(actor.RoleID)
		if !ok {
			return nil, fmt.Errorf("%w: %s on entry %s", ErrUnknownRole, actor.RoleID, actor.ID)
		}
		priorities[a.ID] = priority
	}

	result := &NightResult{
		Outcomes: make(map[string]*models.Outcome, len(input.Actions)),
		actions:  input.Actions,
	}

	var live []*models.Action
	for _, a := range input.Actions {
		actor := entries[a.ActorID]
		if !actor.Alive {
			result.Outcomes[a.ID] = &models.Outcome{Result: models.ResultActorDead}
			continue
		}
		if actor.AbilityCooldown > 0 && a.Kind != models.ActionKindNone {
			// plague struck after the action was submitted
			result.Outcomes[a.ID] = &models.Outcome{Result: models.ResultSuppressed}
			continue
		}
		live = append(live, a)
	}

	sort.SliceStable(live, func(i, j int) bool {
		return priorities[live[i].ID] < priorities[live[j].ID]
	})
	result.Order = live

	protected := make(map[string]bool)
	healed := make(map[string]bool)
	killed := make(map[string]bool)

	for i, a := range live {
		if _, done := result.Outcomes[a.ID]; done {
			// pre-empted by an earlier block
			continue
		}

		switch a.Kind {
		case models.ActionKindNone:
			result.Outcomes[a.ID] = &models.Outcome{Success: true, Result: models.ResultPassed}

		case models.ActionKindProtect:
			protected[a.TargetID] = true
			result.Outcomes[a.ID] = &models.Outcome{Success: true, Result: models.ResultProtected}

		case models.ActionKindHeal:
			healed[a.TargetID] = true
			result.Outcomes[a.ID] = &models.Outcome{Success: true, Result: models.ResultHealed}

		case models.ActionKindBlock:
			result.Outcomes[a.ID] = &models.Outcome{Success: true, Result: models.ResultBlocking}
			result.Blocked = append(result.Blocked, a.TargetID)
			for _, pending := range live[i+1:] {
				if pending.ActorID != a.TargetID {
					continue
				}
				if _, done := result.Outcomes[pending.ID]; done {
					continue
				}
				result.Outcomes[pending.ID] = &models.Outcome{Result: models.ResultBlocked}
			}

		case models.ActionKindInvestigate:
			target := entries[a.TargetID]
			outcome := &models.Outcome{Success: true, Result: models.ResultNotMafia}
			if faction, _ := input.Catalog.Faction(target.RoleID); faction == models.FactionMafia {
				outcome.Result = models.ResultIsMafia
			}
			if input.Inquisition {
				outcome.RevealedRole = target.RoleID
			}
			result.Outcomes[a.ID] = outcome

		case models.ActionKindKill:
			hits, saves := 0, 0
			for _, id := range []string{a.TargetID, a.ExtraTargetID} {
				if id == "" {
					continue
				}
				if protected[id] || healed[id] {
					saves++
					continue
				}
				hits++
				if entries[id].Alive && !killed[id] {
					killed[id] = true
					result.Deaths = append(result.Deaths, id)
				}
			}
			switch {
			case hits == 0:
				result.Outcomes[a.ID] = &models.Outcome{Result: models.ResultTargetProtected}
			case saves > 0:
				result.Outcomes[a.ID] = &models.Outcome{Success: true, Result: models.ResultPartialKill}
			default:
				result.Outcomes[a.ID] = &models.Outcome{Success: true, Result: models.ResultKilled}
			}

		default:
			// votes never reach the night pass
			result.Outcomes[a.ID] = &models.Outcome{Result: models.ResultPassed}
		}
	}

	return result, nil
}

// Apply attaches the outcomes to the actions and kills the night's
// victims on the roster
func (r *NightResult) Apply(ros *roster.Roster, cycle int, at time.Time) error {
	for _, a := range r.actions {
		outcome, ok := r.Outcomes[a.ID]
		if !ok {
			continue
		}
		a.Outcome = outcome
		a.Resolved = true
		resolvedAt := at
		a.ResolvedAt = &resolvedAt
	}

	for _, id := range r.Deaths {
		err := ros.MarkDead(id, models.DeathCauseKilledNight, cycle, at)
		if err != nil && !errors.Is(err, roster.ErrAlreadyDead) {
			return err
		}
	}

	return nil
}
