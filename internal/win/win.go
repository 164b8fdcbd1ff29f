// Package win decides when a match is over and what every participant
// takes away from it.
package win

import (
	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/roster"
)

// Decide returns the winning faction for the alive counts, or false when
// the match continues. Neutrals count with the town.
func Decide(aliveMafia, aliveOthers int) (models.Faction, bool) {
	if aliveMafia == 0 {
		return models.FactionTown, true
	}
	if aliveMafia >= aliveOthers {
		return models.FactionMafia, true
	}
	return "", false
}

// Evaluate inspects the roster after a resolution
func Evaluate(r *roster.Roster) (models.Faction, bool) {
	counts := r.AliveByFaction()
	mafia := counts[models.FactionMafia]
	others := r.AliveCount() - mafia
	return Decide(mafia, others)
}

// SettleInput contains parameters for computing end of match stats
type SettleInput struct {
	Roster     *roster.Roster
	Winner     models.Faction
	Cycle      int
	XPPerCycle int
}

// Settle computes one delta per roster entry, in roster order. Experience is
// XPPerCycle * Cycle, doubled for the winners.
func Settle(input *SettleInput) []*models.StatsDelta {
	entries := input.Roster.Entries()
	deltas := make([]*models.StatsDelta, 0, len(entries))
	for _, e := range entries {
		faction := input.Roster.Faction(e)
		won := faction == input.Winner

		xp := input.XPPerCycle * input.Cycle
		if won {
			xp *= 2
		}

		deltas = append(deltas, &models.StatsDelta{
			ParticipantID: e.ParticipantID,
			Faction:       faction,
			Won:           won,
			Experience:    xp,
		})
	}
	return deltas
}

// Progress applies a delta to a player profile and reports whether the
// player levelled up. At most one level is gained per match.
func Progress(p *models.Player, delta *models.StatsDelta, levelMultiplier int) bool {
	p.GamesPlayed++
	if delta.Won {
		p.GamesWon++
	} else {
		p.GamesLost++
	}

	if p.Level < 1 {
		p.Level = 1
	}

	p.Experience += delta.Experience
	required := p.Level * levelMultiplier
	if p.Experience >= required {
		p.Level++
		p.Experience -= required
		return true
	}
	return false
}
