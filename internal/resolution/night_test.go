package resolution

import (
	"math/rand"
	"testing"
	"time"

	"github.com/KirkDiggler/mafia/internal/catalog"
	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var night = time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)

func entry(id, role string) *models.RosterEntry {
	return &models.RosterEntry{ID: id, ParticipantID: id, RoleID: role, Alive: true}
}

func action(id, actor string, kind models.ActionKind, target string) *models.Action {
	return &models.Action{ID: id, ActorID: actor, Kind: kind, TargetID: target, Cycle: 1}
}

func resolve(t *testing.T, entries []*models.RosterEntry, actions []*models.Action) (*NightResult, *roster.Roster) {
	t.Helper()
	cat := catalog.MustDefault()
	result, err := ResolveNight(&NightInput{Catalog: cat, Roster: entries, Actions: actions})
	require.NoError(t, err)

	r, err := roster.New(cat, entries)
	require.NoError(t, err)
	require.NoError(t, result.Apply(r, 1, night))
	return result, r
}

func TestMafiaKillBeatsLaterHeal(t *testing.T) {
	// A mafia, B civilian, C doctor, D sheriff
	entries := []*models.RosterEntry{
		entry("A", catalog.RoleMafia),
		entry("B", catalog.RoleCivilian),
		entry("C", catalog.RoleDoctor),
		entry("D", catalog.RoleSheriff),
	}
	kill := action("kill", "A", models.ActionKindKill, "B")
	heal := action("heal", "C", models.ActionKindHeal, "B")

	result, _ := resolve(t, entries, []*models.Action{heal, kill})

	assert.Equal(t, []string{"B"}, result.Deaths)
	assert.False(t, entries[1].Alive)
	assert.Equal(t, models.DeathCauseKilledNight, entries[1].DeathCause)
	assert.Equal(t, 1, entries[1].DeathCycle)

	require.NotNil(t, kill.Outcome)
	assert.True(t, kill.Outcome.Success)
	assert.Equal(t, models.ResultKilled, kill.Outcome.Result)
	assert.True(t, kill.Resolved)

	require.NotNil(t, heal.Outcome)
	assert.True(t, heal.Outcome.Success)
	assert.Equal(t, models.ResultHealed, heal.Outcome.Result)

	assert.Equal(t, []*models.Action{kill, heal}, result.Order)
}

func TestEarlierProtectionSavesTarget(t *testing.T) {
	entries := []*models.RosterEntry{
		entry("mafia", catalog.RoleMafia),
		entry("guard", catalog.RoleBodyguard),
		entry("civ", catalog.RoleCivilian),
	}
	kill := action("kill", "mafia", models.ActionKindKill, "civ")
	protect := action("protect", "guard", models.ActionKindProtect, "civ")

	result, _ := resolve(t, entries, []*models.Action{kill, protect})

	assert.Empty(t, result.Deaths)
	assert.True(t, entries[2].Alive)
	assert.False(t, kill.Outcome.Success)
	assert.Equal(t, models.ResultTargetProtected, kill.Outcome.Result)
	assert.Equal(t, models.ResultProtected, protect.Outcome.Result)
}

func TestLaterProtectionDoesNotSaveTarget(t *testing.T) {
	// Maniac and bodyguard share priority 1; submission order decides
	entries := []*models.RosterEntry{
		entry("maniac", catalog.RoleManiac),
		entry("guard", catalog.RoleBodyguard),
		entry("civ", catalog.RoleCivilian),
	}
	kill := action("kill", "maniac", models.ActionKindKill, "civ")
	protect := action("protect", "guard", models.ActionKindProtect, "civ")

	result, _ := resolve(t, entries, []*models.Action{kill, protect})

	assert.Equal(t, []string{"civ"}, result.Deaths)
	assert.True(t, kill.Outcome.Success)
	assert.True(t, protect.Outcome.Success)
}

func TestEarlierHealSavesTarget(t *testing.T) {
	cat, err := catalog.New([]*models.RoleTemplate{
		{ID: "medic", Faction: models.FactionTown, Abilities: []models.ActionKind{models.ActionKindHeal}, Priority: 1, UnlockLevel: 1},
		{ID: "hitman", Faction: models.FactionMafia, Abilities: []models.ActionKind{models.ActionKindKill}, Priority: 2, UnlockLevel: 1},
		{ID: "villager", Faction: models.FactionTown, Priority: 9, UnlockLevel: 1},
	})
	require.NoError(t, err)

	entries := []*models.RosterEntry{entry("h", "hitman"), entry("m", "medic"), entry("v", "villager")}
	kill := action("kill", "h", models.ActionKindKill, "v")
	heal := action("heal", "m", models.ActionKindHeal, "v")

	result, err := ResolveNight(&NightInput{Catalog: cat, Roster: entries, Actions: []*models.Action{kill, heal}})
	require.NoError(t, err)

	assert.Empty(t, result.Deaths)
	assert.Equal(t, models.ResultTargetProtected, result.Outcomes["kill"].Result)
}

func TestBlockPreemptsLaterAction(t *testing.T) {
	entries := []*models.RosterEntry{
		entry("mafia", catalog.RoleMafia),
		entry("escort", catalog.RoleEscort),
		entry("civ", catalog.RoleCivilian),
	}
	kill := action("kill", "mafia", models.ActionKindKill, "civ")
	block := action("block", "escort", models.ActionKindBlock, "mafia")

	result, _ := resolve(t, entries, []*models.Action{kill, block})

	assert.Empty(t, result.Deaths)
	assert.True(t, entries[2].Alive)
	assert.False(t, kill.Outcome.Success)
	assert.Equal(t, models.ResultBlocked, kill.Outcome.Result)
	assert.True(t, kill.Resolved)
	assert.True(t, block.Outcome.Success)
	assert.Equal(t, models.ResultBlocking, block.Outcome.Result)
	assert.Equal(t, []string{"mafia"}, result.Blocked)
}

func TestBlockPreemptsAnyKind(t *testing.T) {
	entries := []*models.RosterEntry{
		entry("escort", catalog.RoleEscort),
		entry("sheriff", catalog.RoleSheriff),
		entry("mafia", catalog.RoleMafia),
	}
	investigate := action("inv", "sheriff", models.ActionKindInvestigate, "mafia")
	block := action("block", "escort", models.ActionKindBlock, "sheriff")

	result, _ := resolve(t, entries, []*models.Action{investigate, block})

	assert.Equal(t, &models.Outcome{Result: models.ResultBlocked}, result.Outcomes["inv"])
}

func TestBlockArrivesTooLate(t *testing.T) {
	// Maniac resolves at priority 1, before the escort at 2
	entries := []*models.RosterEntry{
		entry("maniac", catalog.RoleManiac),
		entry("escort", catalog.RoleEscort),
		entry("civ", catalog.RoleCivilian),
	}
	kill := action("kill", "maniac", models.ActionKindKill, "civ")
	block := action("block", "escort", models.ActionKindBlock, "maniac")

	result, _ := resolve(t, entries, []*models.Action{block, kill})

	assert.Equal(t, []string{"civ"}, result.Deaths)
	assert.True(t, kill.Outcome.Success)
}

func TestInvestigation(t *testing.T) {
	entries := []*models.RosterEntry{
		entry("sheriff", catalog.RoleSheriff),
		entry("don", catalog.RoleDon),
		entry("maniac", catalog.RoleManiac),
	}
	onDon := action("a1", "sheriff", models.ActionKindInvestigate, "don")
	onManiac := action("a2", "don", models.ActionKindInvestigate, "maniac")

	cat := catalog.MustDefault()
	result, err := ResolveNight(&NightInput{Catalog: cat, Roster: entries, Actions: []*models.Action{onDon, onManiac}})
	require.NoError(t, err)
	assert.Equal(t, &models.Outcome{Success: true, Result: models.ResultIsMafia}, result.Outcomes["a1"])
	assert.Equal(t, &models.Outcome{Success: true, Result: models.ResultNotMafia}, result.Outcomes["a2"])

	result, err = ResolveNight(&NightInput{Catalog: cat, Roster: entries, Actions: []*models.Action{onDon}, Inquisition: true})
	require.NoError(t, err)
	assert.Equal(t, catalog.RoleDon, result.Outcomes["a1"].RevealedRole)
}

func TestDeadActorDiscarded(t *testing.T) {
	entries := []*models.RosterEntry{
		entry("mafia", catalog.RoleMafia),
		entry("civ", catalog.RoleCivilian),
	}
	entries[0].Alive = false
	kill := action("kill", "mafia", models.ActionKindKill, "civ")

	result, _ := resolve(t, entries, []*models.Action{kill})

	assert.Empty(t, result.Deaths)
	assert.Empty(t, result.Order)
	assert.Equal(t, models.ResultActorDead, kill.Outcome.Result)
	assert.False(t, kill.Outcome.Success)
	assert.True(t, kill.Resolved)
}

func TestPlaguedActorSuppressed(t *testing.T) {
	entries := []*models.RosterEntry{
		entry("e1", catalog.RoleMafia),
		entry("e2", catalog.RoleDoctor),
		entry("e3", catalog.RoleCivilian),
	}
	kill := action("kill", "e1", models.ActionKindKill, "e3")
	heal := action("heal", "e2", models.ActionKindHeal, "e1")
	// plague lands on the killer after both actions were submitted
	entries[0].AbilityCooldown = 1

	result, _ := resolve(t, entries, []*models.Action{kill, heal})

	assert.Empty(t, result.Deaths)
	assert.True(t, entries[2].Alive)
	assert.Equal(t, []*models.Action{heal}, result.Order)

	require.NotNil(t, kill.Outcome)
	assert.False(t, kill.Outcome.Success)
	assert.Equal(t, models.ResultSuppressed, kill.Outcome.Result)
	assert.True(t, kill.Resolved)
	assert.True(t, heal.Outcome.Success)
}

func TestDoubleKill(t *testing.T) {
	entries := []*models.RosterEntry{
		entry("mafia", catalog.RoleMafia),
		entry("guard", catalog.RoleBodyguard),
		entry("civ1", catalog.RoleCivilian),
		entry("civ2", catalog.RoleCivilian),
	}
	kill := action("kill", "mafia", models.ActionKindKill, "civ1")
	kill.ExtraTargetID = "civ2"
	protect := action("protect", "guard", models.ActionKindProtect, "civ1")

	result, _ := resolve(t, entries, []*models.Action{kill, protect})

	assert.Equal(t, []string{"civ2"}, result.Deaths)
	assert.True(t, kill.Outcome.Success)
	assert.Equal(t, models.ResultPartialKill, kill.Outcome.Result)
}

func TestTwoKillersSameTarget(t *testing.T) {
	entries := []*models.RosterEntry{
		entry("maniac", catalog.RoleManiac),
		entry("mafia", catalog.RoleMafia),
		entry("civ", catalog.RoleCivilian),
	}
	result, _ := resolve(t, entries, []*models.Action{
		action("k1", "mafia", models.ActionKindKill, "civ"),
		action("k2", "maniac", models.ActionKindKill, "civ"),
	})

	assert.Equal(t, []string{"civ"}, result.Deaths)
	assert.Equal(t, 1, entries[2].DeathCycle)
}

func TestMissingReferenceFailsWithoutMutation(t *testing.T) {
	entries := []*models.RosterEntry{
		entry("mafia", catalog.RoleMafia),
		entry("civ", catalog.RoleCivilian),
	}
	ok := action("ok", "mafia", models.ActionKindKill, "civ")
	bad := action("bad", "civ", models.ActionKindNone, "")
	bad.ActorID = "ghost"

	_, err := ResolveNight(&NightInput{Catalog: catalog.MustDefault(), Roster: entries, Actions: []*models.Action{ok, bad}})
	assert.ErrorIs(t, err, ErrMissingEntry)
	assert.Nil(t, ok.Outcome)
	assert.False(t, ok.Resolved)
	assert.True(t, entries[1].Alive)

	badTarget := action("bad", "mafia", models.ActionKindKill, "ghost")
	_, err = ResolveNight(&NightInput{Catalog: catalog.MustDefault(), Roster: entries, Actions: []*models.Action{badTarget}})
	assert.ErrorIs(t, err, ErrMissingEntry)

	entries[1].RoleID = "jester"
	_, err = ResolveNight(&NightInput{Catalog: catalog.MustDefault(), Roster: entries, Actions: []*models.Action{bad}})
	assert.ErrorIs(t, err, ErrMissingEntry)

	pass := action("pass", "civ", models.ActionKindNone, "")
	_, err = ResolveNight(&NightInput{Catalog: catalog.MustDefault(), Roster: entries, Actions: []*models.Action{pass}})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestResolutionIsDeterministic(t *testing.T) {
	build := func() ([]*models.RosterEntry, []*models.Action) {
		entries := []*models.RosterEntry{
			entry("mafia", catalog.RoleMafia),
			entry("don", catalog.RoleDon),
			entry("doctor", catalog.RoleDoctor),
			entry("escort", catalog.RoleEscort),
			entry("guard", catalog.RoleBodyguard),
			entry("maniac", catalog.RoleManiac),
			entry("sheriff", catalog.RoleSheriff),
			entry("civ", catalog.RoleCivilian),
		}
		actions := []*models.Action{
			action("1", "mafia", models.ActionKindKill, "doctor"),
			action("2", "don", models.ActionKindInvestigate, "sheriff"),
			action("3", "doctor", models.ActionKindHeal, "civ"),
			action("4", "escort", models.ActionKindBlock, "don"),
			action("5", "guard", models.ActionKindProtect, "doctor"),
			action("6", "maniac", models.ActionKindKill, "civ"),
			action("7", "sheriff", models.ActionKindInvestigate, "maniac"),
			action("8", "civ", models.ActionKindNone, ""),
		}
		return entries, actions
	}

	entriesA, actionsA := build()
	first, err := ResolveNight(&NightInput{Catalog: catalog.MustDefault(), Roster: entriesA, Actions: actionsA})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		entriesB, actionsB := build()
		again, err := ResolveNight(&NightInput{Catalog: catalog.MustDefault(), Roster: entriesB, Actions: actionsB})
		require.NoError(t, err)
		assert.Equal(t, first.Outcomes, again.Outcomes)
		assert.Equal(t, first.Deaths, again.Deaths)
	}

	assert.Equal(t, []string{"civ"}, first.Deaths)
	assert.Equal(t, models.ResultTargetProtected, first.Outcomes["1"].Result)
	assert.Equal(t, models.ResultBlocked, first.Outcomes["2"].Result)
}

func TestAliveNeverFlipsBack(t *testing.T) {
	cat := catalog.MustDefault()
	roles := []string{
		catalog.RoleMafia, catalog.RoleDoctor, catalog.RoleBodyguard, catalog.RoleManiac,
		catalog.RoleEscort, catalog.RoleSheriff, catalog.RoleCivilian, catalog.RoleDon,
	}
	rng := rand.New(rand.NewSource(11))

	for round := 0; round < 50; round++ {
		entries := make([]*models.RosterEntry, len(roles))
		for i, role := range roles {
			entries[i] = entry(string(rune('a'+i)), role)
		}
		r, err := roster.New(cat, entries)
		require.NoError(t, err)

		for cycle := 1; cycle <= 4; cycle++ {
			before := make(map[string]bool)
			for _, e := range entries {
				before[e.ID] = e.Alive
			}

			var actions []*models.Action
			for i, e := range entries {
				role, _ := cat.Role(e.RoleID)
				kind := models.ActionKindNone
				if len(role.Abilities) > 0 {
					kind = role.Abilities[rng.Intn(len(role.Abilities))]
				}
				a := action(e.ID+string(rune('0'+cycle)), e.ID, kind, "")
				if kind.NeedsTarget() {
					a.TargetID = entries[rng.Intn(len(entries))].ID
				}
				a.Sequence = int64(i)
				actions = append(actions, a)
			}
			rng.Shuffle(len(actions), func(i, j int) { actions[i], actions[j] = actions[j], actions[i] })

			result, err := ResolveNight(&NightInput{Catalog: cat, Roster: entries, Actions: actions})
			require.NoError(t, err)
			require.NoError(t, result.Apply(r, cycle, night))

			for _, e := range entries {
				if !before[e.ID] {
					assert.False(t, e.Alive, "entry %s came back", e.ID)
				}
			}
		}
	}
}
