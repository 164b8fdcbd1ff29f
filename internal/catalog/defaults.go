package catalog

import "github.com/KirkDiggler/mafia/internal/models"

// Role ids of the default table
const (
	RoleCivilian  = "civilian"
	RoleMafia     = "mafia"
	RoleDoctor    = "doctor"
	RoleSheriff   = "sheriff"
	RoleManiac    = "maniac"
	RoleCupid     = "cupid"
	RoleEscort    = "escort"
	RoleBodyguard = "bodyguard"
	RoleDon       = "don"
)

// DefaultRoles returns a fresh copy of the stock role table
func DefaultRoles() []*models.RoleTemplate {
	return []*models.RoleTemplate{
		{
			ID:          RoleCivilian,
			Name:        "Civilian",
			Description: "An ordinary townsperson. Find the mafia and vote them out.",
			Faction:     models.FactionTown,
			Priority:    10,
			UnlockLevel: 1,
		},
		{
			ID:          RoleMafia,
			Name:        "Mafia",
			Description: "Each night the family picks someone to kill.",
			Faction:     models.FactionMafia,
			Abilities:   []models.ActionKind{models.ActionKindKill},
			Priority:    3,
			UnlockLevel: 1,
		},
		{
			ID:          RoleDoctor,
			Name:        "Doctor",
			Description: "Each night you may heal one person.",
			Faction:     models.FactionTown,
			Abilities:   []models.ActionKind{models.ActionKindHeal},
			Priority:    4,
			UnlockLevel: 2,
		},
		{
			ID:          RoleSheriff,
			Name:        "Sheriff",
			Description: "Each night you may check whether someone is mafia.",
			Faction:     models.FactionTown,
			Abilities:   []models.ActionKind{models.ActionKindInvestigate},
			Priority:    5,
			UnlockLevel: 3,
		},
		{
			ID:          RoleManiac,
			Name:        "Maniac",
			Description: "You kill alone and win with nobody.",
			Faction:     models.FactionNeutral,
			Abilities:   []models.ActionKind{models.ActionKindKill},
			Priority:    1,
			UnlockLevel: 5,
		},
		{
			ID:          RoleCupid,
			Name:        "Cupid",
			Description: "A hopeless romantic of the town.",
			Faction:     models.FactionTown,
			Priority:    2,
			UnlockLevel: 4,
		},
		{
			ID:          RoleEscort,
			Name:        "Escort",
			Description: "Each night you may keep someone busy so their action fails.",
			Faction:     models.FactionTown,
			Abilities:   []models.ActionKind{models.ActionKindBlock},
			Priority:    2,
			UnlockLevel: 3,
		},
		{
			ID:          RoleBodyguard,
			Name:        "Bodyguard",
			Description: "Each night you may guard one person from harm.",
			Faction:     models.FactionTown,
			Abilities:   []models.ActionKind{models.ActionKindProtect},
			Priority:    1,
			UnlockLevel: 4,
		},
		{
			ID:          RoleDon,
			Name:        "Don",
			Description: "Head of the family. You kill and you can check for the sheriff's friends.",
			Faction:     models.FactionMafia,
			Abilities:   []models.ActionKind{models.ActionKindKill, models.ActionKindInvestigate},
			Priority:    3,
			UnlockLevel: 5,
		},
	}
}
