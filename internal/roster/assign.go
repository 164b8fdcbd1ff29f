package roster

import (
	"fmt"

	"github.com/KirkDiggler/mafia/internal/catalog"
	"github.com/KirkDiggler/mafia/internal/common/uuid"
	"github.com/KirkDiggler/mafia/internal/dice"
	"github.com/KirkDiggler/mafia/internal/models"
)

// AssignInput contains parameters for dealing roles
type AssignInput struct {
	MatchID       string
	Participants  []*models.Participant
	Catalog       *catalog.Catalog
	Roller        dice.Roller
	UUIDGenerator uuid.UUID
}

// MafiaCount is the size of the mafia block for n participants
func MafiaCount(n int) int {
	return max(1, n/3)
}

// Assign shuffles the participants, splits them into a mafia block of
// MafiaCount and a town block, and deals every participant one role drawn
// by weight from their block's eligible pool. Nothing is dealt if any
// non-empty block has an empty pool.
func Assign(input *AssignInput) ([]*models.RosterEntry, error) {
	if input == nil || input.Catalog == nil {
		return nil, ErrNilCatalog
	}
	if input.Roller == nil {
		return nil, ErrNilRoller
	}
	if input.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}
	if len(input.Participants) == 0 {
		return nil, ErrNoParticipants
	}

	seen := make(map[string]bool, len(input.Participants))
	for _, p := range input.Participants {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = true
	}

	players := append([]*models.Participant(nil), input.Participants...)
	input.Roller.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})

	mafiaCount := MafiaCount(len(players))

	// Resolve every pool before drawing so a failure deals nothing
	pools := make([][]*models.RoleTemplate, len(players))
	for i, p := range players {
		block := catalog.BlockTown
		if i < mafiaCount {
			block = catalog.BlockMafia
		}
		pool := input.Catalog.Eligible(block, p.Level)
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: %s block, participant %s level %d", ErrInsufficientRoles, block, p.ID, p.Level)
		}
		pools[i] = pool
	}

	entries := make([]*models.RosterEntry, 0, len(players))
	for i, p := range players {
		role := draw(input.Roller, pools[i])
		entries = append(entries, &models.RosterEntry{
			ID:              input.UUIDGenerator.NewUUID(),
			MatchID:         input.MatchID,
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			RoleID:          role.ID,
			Alive:           true,
		})
	}

	return entries, nil
}

// draw picks one role from the pool with probability proportional to weight
func draw(roller dice.Roller, pool []*models.RoleTemplate) *models.RoleTemplate {
	total := 0
	for _, role := range pool {
		total += role.Weight
	}

	pick := roller.Roll(total)
	for _, role := range pool {
		pick -= role.Weight
		if pick <= 0 {
			return role
		}
	}
	return pool[len(pool)-1]
}
