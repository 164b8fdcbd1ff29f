package events

import (
	"github.com/KirkDiggler/mafia/internal/models"
)

// Effects summarizes what the ongoing events of a match change
type Effects struct {
	Inquisition bool
	Curfew      bool
	ExtraKill   map[models.Faction]bool
}

// ActiveEffects reads the ongoing events of the state
func ActiveEffects(state *models.MatchState) Effects {
	fx := Effects{ExtraKill: make(map[models.Faction]bool)}
	for _, e := range state.Events {
		if !e.IsOngoing() {
			continue
		}
		switch e.Kind {
		case models.EventKindInquisitor:
			fx.Inquisition = true
		case models.EventKindCurfew:
			fx.Curfew = true
		case models.EventKindDoubleTrouble:
			fx.ExtraKill[models.FactionMafia] = true
		case models.EventKindFullMoon:
			fx.ExtraKill[models.FactionNeutral] = true
		}
	}
	return fx
}

// AllowExtraTarget reports whether killers of the faction may take a
// second target
func (fx Effects) AllowExtraTarget(faction models.Faction) bool {
	return fx.ExtraKill[faction]
}
