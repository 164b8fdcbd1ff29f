package messaging

import (
	"github.com/KirkDiggler/mafia/internal/events"
	"github.com/KirkDiggler/mafia/internal/models"
)

// Payload keys shared with the event injector
const (
	PayloadParticipantName = events.PayloadParticipantName
	PayloadRole            = events.PayloadRole
)

var phaseMessages = map[models.MatchStatus][]string{
	models.MatchStatusNight: {
		"The town falls asleep. Some of you will not.",
		"Night settles in. Lock your doors.",
		"The streetlights flicker out. The mafia wakes up.",
	},
	models.MatchStatusDay: {
		"The sun rises. Time to find out who did it.",
		"Morning. Count heads and start talking.",
		"A new day. Somebody here is lying.",
	},
	models.MatchStatusVoting: {
		"Talk is over. Cast your votes.",
		"The town gathers at the gallows. Vote now.",
	},
	models.MatchStatusStarting: {
		"Roles are being dealt. Keep them to yourself.",
	},
	models.MatchStatusPaused: {
		"An operator stopped the clock.",
	},
}

var deathMessages = map[models.DeathCause][]string{
	models.DeathCauseKilledNight: {
		"%s was found dead at dawn.",
		"%s did not survive the night.",
		"The town woke up one short. %s is gone.",
	},
	models.DeathCauseExecuted: {
		"The town has spoken. %s was executed.",
		"%s was led to the gallows.",
	},
}

var winMessages = map[models.Faction][]string{
	models.FactionTown: {
		"The last of the mafia is gone. The town sleeps easy tonight.",
		"Justice prevails. The town wins.",
	},
	models.FactionMafia: {
		"The mafia now runs this town.",
		"Nobody is left to stand against the family.",
	},
}

var eventTitles = map[models.EventKind]string{
	models.EventKindInquisitor:    "The Inquisitor arrives",
	models.EventKindMayorElection: "Mayor election",
	models.EventKindPlague:        "Plague",
	models.EventKindFullMoon:      "Full moon",
	models.EventKindCurfew:        "Curfew",
	models.EventKindDoubleTrouble: "Double trouble",
	models.EventKindRevelation:    "Revelation",
}

var eventDescriptions = map[models.EventKind]string{
	models.EventKindInquisitor:    "Investigations reveal the exact role tonight.",
	models.EventKindFullMoon:      "The full moon rises. Lone killers may strike twice.",
	models.EventKindCurfew:        "Curfew is in effect. Nobody talks in the square today.",
	models.EventKindDoubleTrouble: "Double trouble. The mafia may strike twice tonight.",
}
