package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/mafia/internal/catalog"
	clockmocks "github.com/KirkDiggler/mafia/internal/common/clock/mocks"
	"github.com/KirkDiggler/mafia/internal/common/uuid"
	dicemocks "github.com/KirkDiggler/mafia/internal/dice/mocks"
	"github.com/KirkDiggler/mafia/internal/events"
	"github.com/KirkDiggler/mafia/internal/ledger"
	"github.com/KirkDiggler/mafia/internal/models"
	matchRepo "github.com/KirkDiggler/mafia/internal/repositories/match"
	playerRepo "github.com/KirkDiggler/mafia/internal/repositories/player"
	"github.com/KirkDiggler/mafia/internal/roster"
	"github.com/KirkDiggler/mafia/internal/services/messaging"
	messagingmocks "github.com/KirkDiggler/mafia/internal/services/messaging/mocks"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	testNightDuration = 8 * time.Hour
	testDayDuration   = 15 * time.Hour
	testVoteDuration  = time.Hour
)

type GameServiceTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mr         *miniredis.Miniredis
	client     *redis.Client
	matchRepo  matchRepo.Repository
	playerRepo playerRepo.Repository
	mockRoller *dicemocks.MockRoller
	mockClock  *clockmocks.MockClock
	mockSink   *messagingmocks.MockSink
	service    *service
	ctx        context.Context

	mu    sync.Mutex
	now   time.Time
	notes []*models.Notification
}

// testRoles deals predictably with a roller that always rolls 1: the
// first eligible role of each pool wins, so a participant's level decides
// their town role
func testRoles() []*models.RoleTemplate {
	return []*models.RoleTemplate{
		{
			ID:          catalog.RoleMafia,
			Name:        "Mafia",
			Faction:     models.FactionMafia,
			Abilities:   []models.ActionKind{models.ActionKindKill},
			Priority:    3,
			UnlockLevel: 1,
		},
		{
			ID:          catalog.RoleDoctor,
			Name:        "Doctor",
			Faction:     models.FactionTown,
			Abilities:   []models.ActionKind{models.ActionKindHeal},
			Priority:    2,
			UnlockLevel: 3,
		},
		{
			ID:          catalog.RoleSheriff,
			Name:        "Sheriff",
			Faction:     models.FactionTown,
			Abilities:   []models.ActionKind{models.ActionKindInvestigate},
			Priority:    5,
			UnlockLevel: 2,
		},
		{
			ID:          catalog.RoleCivilian,
			Name:        "Civilian",
			Faction:     models.FactionTown,
			Priority:    10,
			UnlockLevel: 1,
		},
	}
}

func (s *GameServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.notes = nil

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.matchRepo, err = matchRepo.NewRedis(&matchRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.playerRepo, err = playerRepo.NewRedis(&playerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.mockRoller = dicemocks.NewMockRoller(s.ctrl)
	s.mockRoller.EXPECT().Shuffle(gomock.Any(), gomock.Any()).AnyTimes()
	s.mockRoller.EXPECT().Roll(gomock.Any()).Return(1).AnyTimes()
	s.mockRoller.EXPECT().Chance(gomock.Any()).Return(false).AnyTimes()

	s.mockClock = clockmocks.NewMockClock(s.ctrl)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.now
	}).AnyTimes()

	s.mockSink = messagingmocks.NewMockSink(s.ctrl)
	s.mockSink.EXPECT().Deliver(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, n *models.Notification) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.notes = append(s.notes, n)
			return nil
		}).AnyTimes()

	s.service = s.newService(nil)
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestGameServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func (s *GameServiceTestSuite) newService(modify func(cfg *Config)) *service {
	ids := &uuid.Sequential{Prefix: "id"}

	cat, err := catalog.New(testRoles())
	s.Require().NoError(err)

	msg, err := messaging.NewService(&messaging.ServiceConfig{
		Sinks:  []messaging.Sink{s.mockSink},
		Roller: s.mockRoller,
	})
	s.Require().NoError(err)

	injector, err := events.New(&events.Config{
		Roller:        s.mockRoller,
		UUIDGenerator: ids,
	})
	s.Require().NoError(err)

	cfg := &Config{
		MinPlayers:    4,
		MaxPlayers:    20,
		NightDuration: testNightDuration,
		DayDuration:   testDayDuration,
		VoteDuration:  testVoteDuration,
		Catalog:       cat,
		MatchRepo:     s.matchRepo,
		PlayerRepo:    s.playerRepo,
		Messaging:     msg,
		Events:        injector,
		DiceRoller:    s.mockRoller,
		Clock:         s.mockClock,
		UUIDGenerator: ids,
	}
	if modify != nil {
		modify(cfg)
	}

	svc, err := New(cfg)
	s.Require().NoError(err)
	return svc
}

func (s *GameServiceTestSuite) advanceClock(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *GameServiceTestSuite) notesOf(kind models.NotificationKind) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, n := range s.notes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// seedLobby creates a match with Ann, Bob, Cat and Dan. With the test
// roller Ann is mafia, Bob the doctor, Cat the sheriff and Dan a civilian.
func (s *GameServiceTestSuite) seedLobby(lobbyID string) string {
	created, err := s.service.CreateMatch(s.ctx, &CreateMatchInput{LobbyID: lobbyID})
	s.Require().NoError(err)

	for _, p := range []*models.Player{
		{ID: "ann", Name: "Ann", Level: 1},
		{ID: "bob", Name: "Bob", Level: 3},
		{ID: "cat", Name: "Cat", Level: 2},
		{ID: "dan", Name: "Dan", Level: 1},
	} {
		s.Require().NoError(s.playerRepo.SavePlayer(s.ctx, &playerRepo.SavePlayerInput{Player: p}))
		_, err := s.service.JoinMatch(s.ctx, &JoinMatchInput{
			MatchID:         created.Match.ID,
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
		})
		s.Require().NoError(err)
	}

	return created.Match.ID
}

func (s *GameServiceTestSuite) startedMatch() string {
	matchID := s.seedLobby("lobby-1")
	_, err := s.service.StartMatch(s.ctx, &StartMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	return matchID
}

func (s *GameServiceTestSuite) submit(matchID, actor string, kind models.ActionKind, target string) {
	_, err := s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID:       matchID,
		ParticipantID: actor,
		Kind:          kind,
		TargetID:      target,
	})
	s.Require().NoError(err)
}

func (s *GameServiceTestSuite) vote(matchID, voter, target string) {
	_, err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		MatchID:  matchID,
		VoterID:  voter,
		TargetID: target,
	})
	s.Require().NoError(err)
}

func (s *GameServiceTestSuite) TestNewValidatesDependencies() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilCatalog)

	_, err = New(&Config{Catalog: catalog.MustDefault()})
	s.ErrorIs(err, ErrNilMatchRepo)
}

func (s *GameServiceTestSuite) TestCreateMatchLobbyBusy() {
	_, err := s.service.CreateMatch(s.ctx, &CreateMatchInput{LobbyID: "lobby-1"})
	s.Require().NoError(err)

	_, err = s.service.CreateMatch(s.ctx, &CreateMatchInput{LobbyID: "lobby-1"})
	s.ErrorIs(err, ErrLobbyBusy)

	found, err := s.service.GetMatchByLobby(s.ctx, &GetMatchByLobbyInput{LobbyID: "lobby-1"})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusWaiting, found.Match.Status)
}

func (s *GameServiceTestSuite) TestJoinAndLeave() {
	matchID := s.seedLobby("lobby-1")

	_, err := s.service.JoinMatch(s.ctx, &JoinMatchInput{MatchID: matchID, ParticipantID: "ann", ParticipantName: "Ann"})
	s.ErrorIs(err, ErrAlreadyInMatch)

	left, err := s.service.LeaveMatch(s.ctx, &LeaveMatchInput{MatchID: matchID, ParticipantID: "dan"})
	s.Require().NoError(err)
	s.Len(left.Match.Participants, 3)
	s.False(left.Match.HasParticipant("dan"))

	_, err = s.service.LeaveMatch(s.ctx, &LeaveMatchInput{MatchID: matchID, ParticipantID: "dan"})
	s.ErrorIs(err, ErrNotInMatch)

	dan, err := s.playerRepo.GetPlayer(s.ctx, &playerRepo.GetPlayerInput{PlayerID: "dan"})
	s.Require().NoError(err)
	s.Empty(dan.CurrentMatchID)
}

func (s *GameServiceTestSuite) TestJoinRecordsPlayerLevel() {
	matchID := s.seedLobby("lobby-1")

	state, err := s.service.GetMatchState(s.ctx, &GetMatchStateInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Require().Len(state.Match.Participants, 4)
	s.Equal(3, state.Match.Participants[1].Level)
	s.Len(state.Alive, 4)
	s.Empty(state.Dead)
}

func (s *GameServiceTestSuite) TestJoinAnotherMatchRejected() {
	s.seedLobby("lobby-1")

	other, err := s.service.CreateMatch(s.ctx, &CreateMatchInput{LobbyID: "lobby-2"})
	s.Require().NoError(err)

	_, err = s.service.JoinMatch(s.ctx, &JoinMatchInput{MatchID: other.Match.ID, ParticipantID: "ann", ParticipantName: "Ann"})
	s.ErrorIs(err, ErrInAnotherMatch)
}

func (s *GameServiceTestSuite) TestJoinFullMatchConcurrently() {
	s.service = s.newService(func(cfg *Config) { cfg.MaxPlayers = 5 })

	created, err := s.service.CreateMatch(s.ctx, &CreateMatchInput{LobbyID: "lobby-1"})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.service.JoinMatch(s.ctx, &JoinMatchInput{
				MatchID:         created.Match.ID,
				ParticipantID:   fmt.Sprintf("p%d", i),
				ParticipantName: fmt.Sprintf("P%d", i),
			})
		}(i)
	}
	wg.Wait()

	joined, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			joined++
		case errors.Is(err, ErrMatchFull):
			full++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(5, joined)
	s.Equal(3, full)

	state, err := s.service.GetMatchState(s.ctx, &GetMatchStateInput{MatchID: created.Match.ID})
	s.Require().NoError(err)
	s.Len(state.Match.Participants, 5)
}

func (s *GameServiceTestSuite) TestStartMatchNeedsMinimum() {
	created, err := s.service.CreateMatch(s.ctx, &CreateMatchInput{LobbyID: "lobby-1"})
	s.Require().NoError(err)

	_, err = s.service.JoinMatch(s.ctx, &JoinMatchInput{MatchID: created.Match.ID, ParticipantID: "ann", ParticipantName: "Ann"})
	s.Require().NoError(err)

	_, err = s.service.StartMatch(s.ctx, &StartMatchInput{MatchID: created.Match.ID})
	s.ErrorIs(err, ErrNotEnoughPlayers)
}

func (s *GameServiceTestSuite) TestStartMatchDealsRoles() {
	matchID := s.startedMatch()

	state, err := s.service.GetMatchState(s.ctx, &GetMatchStateInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusNight, state.Match.Status)
	s.Equal(1, state.Match.Cycle)
	s.True(state.Match.PhaseDeadline.Equal(s.now.Add(testNightDuration)))
	s.Len(state.Alive, 4)
	for _, summary := range state.Alive {
		s.Empty(summary.RevealedRole)
	}

	expected := map[string]string{
		"ann": catalog.RoleMafia,
		"bob": catalog.RoleDoctor,
		"cat": catalog.RoleSheriff,
		"dan": catalog.RoleCivilian,
	}
	for participant, roleID := range expected {
		out, err := s.service.GetRoleAssignment(s.ctx, &GetRoleAssignmentInput{MatchID: matchID, ParticipantID: participant})
		s.Require().NoError(err)
		s.Equal(roleID, out.Role.ID, participant)
	}

	_, err = s.service.GetRoleAssignment(s.ctx, &GetRoleAssignmentInput{MatchID: matchID, ParticipantID: "eve"})
	s.ErrorIs(err, ErrNotInMatch)

	assigned := s.notesOf(models.NotificationKindRoleAssigned)
	s.Len(assigned, 4)
	for _, n := range assigned {
		s.NotEmpty(n.RecipientID)
		s.NotNil(n.Role)
	}
	phases := s.notesOf(models.NotificationKindPhaseChanged)
	s.Require().Len(phases, 1)
	s.Equal(models.MatchStatusNight, phases[0].Status)
}

func (s *GameServiceTestSuite) TestStartMatchWithCountdown() {
	s.service = s.newService(func(cfg *Config) { cfg.StartCountdown = time.Minute })
	matchID := s.seedLobby("lobby-1")

	started, err := s.service.StartMatch(s.ctx, &StartMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusStarting, started.Match.Status)

	_, err = s.service.GetRoleAssignment(s.ctx, &GetRoleAssignmentInput{MatchID: matchID, ParticipantID: "ann"})
	s.ErrorIs(err, ErrRolesNotAssigned)

	due, err := s.service.DueMatches(s.ctx, &DueMatchesInput{Limit: 10})
	s.Require().NoError(err)
	s.Empty(due.MatchIDs)

	s.advanceClock(time.Minute)

	due, err = s.service.DueMatches(s.ctx, &DueMatchesInput{Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{matchID}, due.MatchIDs)

	out, err := s.service.AdvanceMatch(s.ctx, &AdvanceMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	s.True(out.Advanced)
	s.Equal(models.MatchStatusStarting, out.From)
	s.Equal(models.MatchStatusNight, out.To)
	s.Equal(1, out.Match.Cycle)
}

func (s *GameServiceTestSuite) TestStartMatchInsufficientRoles() {
	s.service = s.newService(func(cfg *Config) {
		cat, err := catalog.New([]*models.RoleTemplate{
			{ID: catalog.RoleMafia, Faction: models.FactionMafia, Priority: 3, UnlockLevel: 1},
			{ID: catalog.RoleSheriff, Faction: models.FactionTown, Priority: 5, UnlockLevel: 9},
		})
		s.Require().NoError(err)
		cfg.Catalog = cat
	})
	matchID := s.seedLobby("lobby-1")

	_, err := s.service.StartMatch(s.ctx, &StartMatchInput{MatchID: matchID})
	s.ErrorIs(err, roster.ErrInsufficientRoles)

	state, err := s.service.GetMatchState(s.ctx, &GetMatchStateInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusWaiting, state.Match.Status)
	s.Empty(s.notesOf(models.NotificationKindRoleAssigned))
}

func (s *GameServiceTestSuite) TestTownWinsFullMatch() {
	matchID := s.startedMatch()

	// Night 1: the doctor saves the mafia's victim, the sheriff finds the mafia
	s.submit(matchID, "ann", models.ActionKindKill, "dan")
	s.submit(matchID, "bob", models.ActionKindHeal, "dan")
	s.submit(matchID, "cat", models.ActionKindInvestigate, "ann")

	s.advanceClock(testNightDuration)
	night, err := s.service.AdvanceMatch(s.ctx, &AdvanceMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	s.True(night.Advanced)
	s.Equal(models.MatchStatusDay, night.To)
	s.Empty(night.Deaths)

	found := s.notesOf(models.NotificationKindInvestigation)
	s.Require().Len(found, 1)
	s.Equal("cat", found[0].RecipientID)
	s.Equal("ann", found[0].SubjectID)
	s.Equal(models.ResultIsMafia, found[0].Result)

	day, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusVoting, day.To)

	s.vote(matchID, "bob", "ann")
	s.vote(matchID, "cat", "ann")
	s.vote(matchID, "dan", "ann")

	voting, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusEnded, voting.To)
	s.Equal(models.FactionTown, voting.Winner)
	s.Equal([]string{"ann"}, voting.Deaths)
	s.NotNil(voting.Match.EndedAt)

	won := s.notesOf(models.NotificationKindMatchWon)
	s.Require().Len(won, 1)
	s.Len(won[0].Stats, 4)

	deaths := s.notesOf(models.NotificationKindDeath)
	s.Require().Len(deaths, 1)
	s.Equal(models.DeathCauseExecuted, deaths[0].Cause)

	bob, err := s.playerRepo.GetPlayer(s.ctx, &playerRepo.GetPlayerInput{PlayerID: "bob"})
	s.Require().NoError(err)
	s.Equal(1, bob.GamesPlayed)
	s.Equal(1, bob.GamesWon)
	s.Equal(2, bob.Experience)
	s.Empty(bob.CurrentMatchID)

	ann, err := s.playerRepo.GetPlayer(s.ctx, &playerRepo.GetPlayerInput{PlayerID: "ann"})
	s.Require().NoError(err)
	s.Equal(1, ann.GamesLost)
	s.Equal(1, ann.Experience)

	// the lobby is free again
	_, err = s.service.CreateMatch(s.ctx, &CreateMatchInput{LobbyID: "lobby-1"})
	s.NoError(err)

	_, err = s.service.SubmitVote(s.ctx, &SubmitVoteInput{MatchID: matchID, VoterID: "bob", TargetID: "cat"})
	s.ErrorIs(err, ErrMatchEnded)
}

func (s *GameServiceTestSuite) TestMafiaWinsOnParity() {
	matchID := s.startedMatch()

	s.submit(matchID, "ann", models.ActionKindKill, "dan")
	night, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal([]string{"dan"}, night.Deaths)
	s.Equal(models.MatchStatusDay, night.To)

	_, err = s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)

	// a split vote executes nobody
	s.vote(matchID, "ann", "bob")
	s.vote(matchID, "bob", "ann")
	voting, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Empty(voting.Deaths)
	s.Equal(models.MatchStatusNight, voting.To)
	s.Equal(2, voting.Match.Cycle)

	_, err = s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID: matchID, ParticipantID: "dan", Kind: models.ActionKindNone,
	})
	s.ErrorIs(err, ledger.ErrDeadActor)

	s.submit(matchID, "ann", models.ActionKindKill, "cat")
	final, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusEnded, final.To)
	s.Equal(models.FactionMafia, final.Winner)

	ann, err := s.playerRepo.GetPlayer(s.ctx, &playerRepo.GetPlayerInput{PlayerID: "ann"})
	s.Require().NoError(err)
	s.Equal(1, ann.GamesWon)
	s.Equal(4, ann.Experience)

	state, err := s.service.GetMatchState(s.ctx, &GetMatchStateInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Len(state.Dead, 2)
	s.Len(state.Alive, 2)
}

func (s *GameServiceTestSuite) TestLatestActionSupersedes() {
	matchID := s.startedMatch()

	first, err := s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID: matchID, ParticipantID: "ann", Kind: models.ActionKindKill, TargetID: "dan",
	})
	s.Require().NoError(err)
	s.Nil(first.Superseded)

	second, err := s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID: matchID, ParticipantID: "ann", Kind: models.ActionKindKill, TargetID: "cat",
	})
	s.Require().NoError(err)
	s.Require().NotNil(second.Superseded)
	s.Equal(first.Action.ID, second.Superseded.ID)

	night, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal([]string{"cat"}, night.Deaths)
}

func (s *GameServiceTestSuite) TestSubmitRejectedOutsideItsPhase() {
	matchID := s.startedMatch()

	_, err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{MatchID: matchID, VoterID: "bob", TargetID: "ann"})
	s.ErrorIs(err, ledger.ErrPhaseClosed)

	_, err = s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID: matchID, ParticipantID: "dan", Kind: models.ActionKindKill, TargetID: "ann",
	})
	s.ErrorIs(err, ledger.ErrUnauthorizedAction)

	_, err = s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)

	_, err = s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID: matchID, ParticipantID: "ann", Kind: models.ActionKindKill, TargetID: "dan",
	})
	s.ErrorIs(err, ledger.ErrPhaseClosed)
}

func (s *GameServiceTestSuite) TestVoteThroughSubmitAction() {
	matchID := s.startedMatch()
	_, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	_, err = s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)

	out, err := s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID: matchID, ParticipantID: "bob", Kind: models.ActionKindVote, TargetID: "ann",
	})
	s.Require().NoError(err)
	s.Nil(out.Action)
	s.Require().NotNil(out.Vote)
	s.Equal(1, out.Vote.Weight)

	changed, err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{MatchID: matchID, VoterID: "bob", TargetID: "dan"})
	s.Require().NoError(err)
	s.Require().NotNil(changed.Revoked)
	s.Equal(out.Vote.ID, changed.Revoked.ID)
}

func (s *GameServiceTestSuite) TestAdvanceBeforeDeadlineDoesNothing() {
	matchID := s.startedMatch()

	s.advanceClock(testNightDuration - time.Second)
	out, err := s.service.AdvanceMatch(s.ctx, &AdvanceMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	s.False(out.Advanced)
	s.Equal(models.MatchStatusNight, out.Match.Status)
}

func (s *GameServiceTestSuite) TestPauseAndResume() {
	matchID := s.startedMatch()

	paused, err := s.service.PauseMatch(s.ctx, &PauseMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusPaused, paused.Match.Status)
	s.Equal(models.MatchStatusNight, paused.Match.PausedFrom)
	s.True(paused.Match.PhaseDeadline.IsZero())

	_, err = s.service.PauseMatch(s.ctx, &PauseMatchInput{MatchID: matchID})
	s.ErrorIs(err, ErrMatchPaused)

	_, err = s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID: matchID, ParticipantID: "ann", Kind: models.ActionKindKill, TargetID: "dan",
	})
	s.ErrorIs(err, ErrMatchPaused)

	_, err = s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.ErrorIs(err, ErrMatchPaused)

	s.advanceClock(3 * time.Hour)
	resumed, err := s.service.ResumeMatch(s.ctx, &ResumeMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusNight, resumed.Match.Status)
	s.Empty(resumed.Match.PausedFrom)
	s.True(resumed.Match.PhaseDeadline.Equal(s.now.Add(testNightDuration)))

	_, err = s.service.ResumeMatch(s.ctx, &ResumeMatchInput{MatchID: matchID})
	s.ErrorIs(err, ErrInvalidMatchState)
}

func (s *GameServiceTestSuite) TestResolutionFailurePausesForReview() {
	matchID := s.startedMatch()
	s.submit(matchID, "ann", models.ActionKindKill, "dan")

	// corrupt the stored night with an action against a missing entry
	state, err := s.matchRepo.LoadState(s.ctx, &matchRepo.LoadStateInput{MatchID: matchID})
	s.Require().NoError(err)
	doctor := state.Roster[1]
	state.Actions = append(state.Actions, &models.Action{
		ID:          "broken",
		MatchID:     matchID,
		ActorID:     doctor.ID,
		TargetID:    "ghost",
		Kind:        models.ActionKindHeal,
		Cycle:       1,
		Sequence:    99,
		SubmittedAt: s.now,
	})
	s.Require().NoError(s.matchRepo.Commit(s.ctx, &matchRepo.CommitInput{State: state}))

	s.advanceClock(testNightDuration)
	_, err = s.service.AdvanceMatch(s.ctx, &AdvanceMatchInput{MatchID: matchID})
	s.ErrorIs(err, ErrResolutionFailed)

	after, err := s.matchRepo.LoadState(s.ctx, &matchRepo.LoadStateInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusPaused, after.Match.Status)
	s.Equal(models.MatchStatusNight, after.Match.PausedFrom)
	s.True(after.Match.NeedsReview)
	s.NotEmpty(after.Match.ReviewReason)
	for _, e := range after.Roster {
		s.True(e.Alive, e.ParticipantID)
	}
	for _, a := range after.Actions {
		s.False(a.Resolved, a.ID)
	}

	due, err := s.service.DueMatches(s.ctx, &DueMatchesInput{Limit: 10})
	s.Require().NoError(err)
	s.Empty(due.MatchIDs)
}

func (s *GameServiceTestSuite) TestFlagForReviewKeepsFirstReason() {
	matchID := s.startedMatch()

	flagged, err := s.service.FlagForReview(s.ctx, &FlagForReviewInput{MatchID: matchID, Reason: "sweep timed out"})
	s.Require().NoError(err)
	s.True(flagged.Match.NeedsReview)
	s.Equal(models.MatchStatusPaused, flagged.Match.Status)

	flagged, err = s.service.FlagForReview(s.ctx, &FlagForReviewInput{MatchID: matchID, Reason: "again"})
	s.Require().NoError(err)
	s.Equal("sweep timed out", flagged.Match.ReviewReason)
	s.Equal(models.MatchStatusNight, flagged.Match.PausedFrom)

	resumed, err := s.service.ResumeMatch(s.ctx, &ResumeMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	s.False(resumed.Match.NeedsReview)
	s.Empty(resumed.Match.ReviewReason)
}

func (s *GameServiceTestSuite) TestTriggerEventOncePerCycle() {
	matchID := s.startedMatch()

	first, err := s.service.TriggerEvent(s.ctx, &TriggerEventInput{MatchID: matchID, Kind: models.EventKindMayorElection})
	s.Require().NoError(err)
	s.True(first.Created)

	again, err := s.service.TriggerEvent(s.ctx, &TriggerEventInput{MatchID: matchID, Kind: models.EventKindMayorElection})
	s.Require().NoError(err)
	s.False(again.Created)
	s.Equal(first.Event.ID, again.Event.ID)

	state, err := s.service.GetMatchState(s.ctx, &GetMatchStateInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Require().Len(state.ActiveEvents, 1)
	s.True(state.Alive[0].Mayor)
	s.Len(s.notesOf(models.NotificationKindEvent), 1)

	_, err = s.service.TriggerEvent(s.ctx, &TriggerEventInput{MatchID: matchID, Kind: "meteor"})
	s.ErrorIs(err, events.ErrInvalidEventKind)
}

func (s *GameServiceTestSuite) TestDoubleTroubleAllowsSecondTarget() {
	matchID := s.startedMatch()

	_, err := s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID: matchID, ParticipantID: "ann", Kind: models.ActionKindKill, TargetID: "dan", ExtraTargetID: "cat",
	})
	s.ErrorIs(err, ledger.ErrExtraTargetNotAllowed)

	_, err = s.service.TriggerEvent(s.ctx, &TriggerEventInput{MatchID: matchID, Kind: models.EventKindDoubleTrouble})
	s.Require().NoError(err)

	_, err = s.service.SubmitAction(s.ctx, &SubmitActionInput{
		MatchID: matchID, ParticipantID: "ann", Kind: models.ActionKindKill, TargetID: "dan", ExtraTargetID: "cat",
	})
	s.Require().NoError(err)

	night, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"dan", "cat"}, night.Deaths)
	s.Equal(models.MatchStatusEnded, night.To)
	s.Equal(models.FactionMafia, night.Winner)
}

func (s *GameServiceTestSuite) TestConcurrentSubmissionsAreSerialized() {
	matchID := s.startedMatch()
	_, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	_, err = s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for _, voter := range []string{"bob", "cat", "dan"} {
		wg.Add(1)
		go func(voter string) {
			defer wg.Done()
			_, err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{MatchID: matchID, VoterID: voter, TargetID: "ann"})
			s.NoError(err)
		}(voter)
	}
	wg.Wait()

	state, err := s.matchRepo.LoadState(s.ctx, &matchRepo.LoadStateInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Len(state.Votes, 3)

	seen := make(map[int64]bool)
	for _, v := range state.Votes {
		s.False(seen[v.Sequence], "sequence %d reused", v.Sequence)
		seen[v.Sequence] = true
	}
}

func (s *GameServiceTestSuite) TestLockRespectsContext() {
	release, err := s.service.locks.acquire(s.ctx, "m1")
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Millisecond)
	defer cancel()
	_, err = s.service.locks.acquire(ctx, "m1")
	s.ErrorIs(err, context.DeadlineExceeded)

	release()
	release()

	again, err := s.service.locks.acquire(s.ctx, "m1")
	s.Require().NoError(err)
	again()
	s.Empty(s.service.locks.locks)
}

func (s *GameServiceTestSuite) TestPlagueAfterSubmissionCancelsAction() {
	matchID := s.startedMatch()
	s.submit(matchID, "ann", models.ActionKindKill, "dan")

	plague, err := s.service.TriggerEvent(s.ctx, &TriggerEventInput{MatchID: matchID, Kind: models.EventKindPlague})
	s.Require().NoError(err)
	s.Equal("Ann", plague.Event.Payload[events.PayloadParticipantName])

	night, err := s.service.ForcePhaseEnd(s.ctx, &ForcePhaseEndInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Empty(night.Deaths)
	s.Equal(models.MatchStatusDay, night.To)

	state, err := s.matchRepo.LoadState(s.ctx, &matchRepo.LoadStateInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Require().Len(state.Actions, 1)
	s.Require().NotNil(state.Actions[0].Outcome)
	s.False(state.Actions[0].Outcome.Success)
	s.Equal(models.ResultSuppressed, state.Actions[0].Outcome.Result)
	for _, e := range state.Roster {
		s.Zero(e.AbilityCooldown, e.ParticipantID)
	}
}

func (s *GameServiceTestSuite) TestLockedMatchReportsBusy() {
	matchID := s.startedMatch()
	s.advanceClock(testNightDuration)

	release, err := s.service.locks.acquire(s.ctx, matchID)
	s.Require().NoError(err)
	defer release()

	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Millisecond)
	defer cancel()
	_, err = s.service.AdvanceMatch(ctx, &AdvanceMatchInput{MatchID: matchID})
	s.ErrorIs(err, ErrMatchBusy)
	s.ErrorIs(err, context.DeadlineExceeded)

	state, err := s.matchRepo.LoadState(s.ctx, &matchRepo.LoadStateInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Equal(models.MatchStatusNight, state.Match.Status)
	s.False(state.Match.NeedsReview)
}

func (s *GameServiceTestSuite) TestPurgeMatchReleasesLobbyAndPlayers() {
	matchID := s.startedMatch()

	out, err := s.service.PurgeMatch(s.ctx, &PurgeMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"ann", "bob", "cat", "dan"}, out.Released)

	_, err = s.service.GetMatchState(s.ctx, &GetMatchStateInput{MatchID: matchID})
	s.ErrorIs(err, ErrMatchNotFound)
	_, err = s.service.GetMatchByLobby(s.ctx, &GetMatchByLobbyInput{LobbyID: "lobby-1"})
	s.ErrorIs(err, ErrMatchNotFound)

	s.advanceClock(testNightDuration)
	due, err := s.service.DueMatches(s.ctx, &DueMatchesInput{Limit: 10})
	s.Require().NoError(err)
	s.Empty(due.MatchIDs)

	ann, err := s.playerRepo.GetPlayer(s.ctx, &playerRepo.GetPlayerInput{PlayerID: "ann"})
	s.Require().NoError(err)
	s.Empty(ann.CurrentMatchID)
	left, err := s.playerRepo.GetPlayersInMatch(s.ctx, &playerRepo.GetPlayersInMatchInput{MatchID: matchID})
	s.Require().NoError(err)
	s.Empty(left.Players)

	// the lobby and its players are free for a new match
	next, err := s.service.CreateMatch(s.ctx, &CreateMatchInput{LobbyID: "lobby-1"})
	s.Require().NoError(err)
	_, err = s.service.JoinMatch(s.ctx, &JoinMatchInput{MatchID: next.Match.ID, ParticipantID: "ann", ParticipantName: "Ann"})
	s.NoError(err)

	_, err = s.service.PurgeMatch(s.ctx, &PurgeMatchInput{MatchID: matchID})
	s.ErrorIs(err, ErrMatchNotFound)
}

func (s *GameServiceTestSuite) TestRebuildSchedule() {
	matchID := s.startedMatch()
	s.Require().NoError(s.client.Del(s.ctx, "match_deadlines").Err())

	out, err := s.service.RebuildSchedule(s.ctx, &RebuildScheduleInput{})
	s.Require().NoError(err)
	s.Equal(1, out.Indexed)

	s.advanceClock(testNightDuration)
	due, err := s.service.DueMatches(s.ctx, &DueMatchesInput{Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{matchID}, due.MatchIDs)
}
