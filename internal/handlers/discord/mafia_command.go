package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/services/game"
	"github.com/KirkDiggler/mafia/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const commandTimeout = 5 * time.Second

// DeliveryStats reports notification delivery counters
type DeliveryStats interface {
	GetDeliveryStats(ctx context.Context, input *messaging.GetDeliveryStatsInput) (*messaging.GetDeliveryStatsOutput, error)
}

// MafiaCommand handles the /mafia command
type MafiaCommand struct {
	BaseCommand
	gameService game.Service
	deliveries  DeliveryStats
	roleName    func(string) string
	logger      zerolog.Logger
}

// MafiaCommandConfig holds dependencies for the /mafia command
type MafiaCommandConfig struct {
	GameService game.Service

	// DeliveryStats adds delivery counters to the moderator status, optional
	DeliveryStats DeliveryStats

	// RoleName resolves a role id to its display name, optional
	RoleName func(string) string

	Logger *zerolog.Logger
}

// NewMafiaCommand creates a new mafia command handler
func NewMafiaCommand(cfg *MafiaCommandConfig) *MafiaCommand {
	actionChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 6)
	for _, kind := range []models.ActionKind{
		models.ActionKindKill,
		models.ActionKindHeal,
		models.ActionKindInvestigate,
		models.ActionKindProtect,
		models.ActionKindBlock,
		models.ActionKindNone,
	} {
		actionChoices = append(actionChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(kind),
			Value: string(kind),
		})
	}

	eventChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.EventKinds))
	for _, kind := range models.EventKinds {
		eventChoices = append(eventChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(kind),
			Value: string(kind),
		})
	}

	roleName := cfg.RoleName
	if roleName == nil {
		roleName = func(id string) string { return id }
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &MafiaCommand{
		BaseCommand: BaseCommand{
			Name:        "mafia",
			Description: "Play mafia in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("create", "Open a new match in this channel"),
				subcommand("join", "Join the waiting match"),
				subcommand("leave", "Leave the waiting match"),
				subcommand("start", "Deal the roles and start the match"),
				subcommand("act", "Submit your night action",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "kind",
						Description: "What to do tonight",
						Required:    true,
						Choices:     actionChoices,
					},
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "target",
						Description: "Who to do it to",
					},
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "second_target",
						Description: "A second kill target, when an event allows it",
					},
				),
				subcommand("vote", "Vote to execute someone",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "target",
						Description: "Who to execute",
						Required:    true,
					},
				),
				subcommand("status", "Show the match"),
				subcommand("role", "Show your role"),
				subcommand("force", "Moderator: end the current phase now"),
				subcommand("event", "Moderator: fire an event",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "kind",
						Description: "Which event",
						Required:    true,
						Choices:     eventChoices,
					},
				),
				subcommand("pause", "Moderator: pause the match"),
				subcommand("resume", "Moderator: resume the match"),
				subcommand("purge", "Moderator: delete the match and free the channel",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "match",
						Description: "Match id, defaults to this channel's match",
					},
				),
			},
		},
		gameService: cfg.GameService,
		deliveries:  cfg.DeliveryStats,
		roleName:    roleName,
		logger:      logger,
	}
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

var moderatorSubcommands = map[string]bool{
	"force":  true,
	"event":  true,
	"pause":  true,
	"resume": true,
	"purge":  true,
}

// Handle processes a Discord interaction for the mafia command
func (c *MafiaCommand) Handle(s Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	if moderatorSubcommands[sub.Name] && !isModerator(i) {
		return RespondWithError(s, i, "Only moderators can do that.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch sub.Name {
	case "create":
		return c.handleCreate(ctx, s, i)
	case "join":
		return c.handleJoin(ctx, s, i)
	case "leave":
		return c.handleLeave(ctx, s, i)
	case "start":
		return c.handleStart(ctx, s, i)
	case "act":
		return c.handleAct(ctx, s, i, sub.Options)
	case "vote":
		return c.handleVote(ctx, s, i, sub.Options)
	case "status":
		return c.handleStatus(ctx, s, i)
	case "role":
		return c.handleRole(ctx, s, i)
	case "force":
		return c.handleForce(ctx, s, i)
	case "event":
		return c.handleEvent(ctx, s, i, sub.Options)
	case "pause":
		return c.handlePause(ctx, s, i)
	case "resume":
		return c.handleResume(ctx, s, i)
	case "purge":
		return c.handlePurge(ctx, s, i, sub.Options)
	}

	return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand: %s", sub.Name))
}

// ComponentIDs lists the lobby buttons
func (c *MafiaCommand) ComponentIDs() []string {
	return []string{ButtonJoinMatch, ButtonStartMatch}
}

// HandleComponent processes a lobby button click
func (c *MafiaCommand) HandleComponent(s Session, i *discordgo.InteractionCreate) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch i.MessageComponentData().CustomID {
	case ButtonJoinMatch:
		return c.handleJoin(ctx, s, i)
	case ButtonStartMatch:
		return c.handleStart(ctx, s, i)
	}
	return nil
}

// fail logs unexpected errors and tells the caller what went wrong
func (c *MafiaCommand) fail(s Session, i *discordgo.InteractionCreate, op string, err error) error {
	c.logger.Warn().
		Err(err).
		Str("op", op).
		Str("channel_id", i.ChannelID).
		Msg("mafia command failed")
	return RespondWithError(s, i, userMessage(err))
}

func (c *MafiaCommand) matchID(ctx context.Context, i *discordgo.InteractionCreate) (string, error) {
	out, err := c.gameService.GetMatchByLobby(ctx, &game.GetMatchByLobbyInput{
		LobbyID: i.ChannelID,
	})
	if err != nil {
		return "", err
	}
	return out.Match.ID, nil
}

func (c *MafiaCommand) handleCreate(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	userID, username := interactionUser(i)

	created, err := c.gameService.CreateMatch(ctx, &game.CreateMatchInput{
		LobbyID: i.ChannelID,
	})
	if err != nil {
		return c.fail(s, i, "create", err)
	}

	_, err = c.gameService.JoinMatch(ctx, &game.JoinMatchInput{
		MatchID:         created.Match.ID,
		ParticipantID:   userID,
		ParticipantName: username,
	})
	if err != nil {
		return c.fail(s, i, "create", err)
	}

	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "A new match of mafia",
		Description: fmt.Sprintf("%s opened a match. Join in, then start when everyone is here.", username),
		Color:       colorInfo,
	}, renderLobbyButtons()...)
}

func (c *MafiaCommand) handleJoin(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	userID, username := interactionUser(i)

	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "join", err)
	}

	joined, err := c.gameService.JoinMatch(ctx, &game.JoinMatchInput{
		MatchID:         matchID,
		ParticipantID:   userID,
		ParticipantName: username,
	})
	if err != nil {
		return c.fail(s, i, "join", err)
	}

	return RespondWithMessage(s, i, fmt.Sprintf("%s joined the match (%d players).", username, len(joined.Match.Participants)))
}

func (c *MafiaCommand) handleLeave(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	userID, username := interactionUser(i)

	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "leave", err)
	}

	_, err = c.gameService.LeaveMatch(ctx, &game.LeaveMatchInput{
		MatchID:       matchID,
		ParticipantID: userID,
	})
	if err != nil {
		return c.fail(s, i, "leave", err)
	}

	return RespondWithMessage(s, i, fmt.Sprintf("%s left the match.", username))
}

func (c *MafiaCommand) handleStart(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "start", err)
	}

	_, err = c.gameService.StartMatch(ctx, &game.StartMatchInput{
		MatchID: matchID,
	})
	if err != nil {
		return c.fail(s, i, "start", err)
	}

	return RespondWithMessage(s, i, "The match is starting. Check your DMs for your role.")
}

func (c *MafiaCommand) handleAct(ctx context.Context, s Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID, _ := interactionUser(i)

	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "act", err)
	}

	_, err = c.gameService.SubmitAction(ctx, &game.SubmitActionInput{
		MatchID:       matchID,
		ParticipantID: userID,
		Kind:          models.ActionKind(optionString(options, "kind")),
		TargetID:      optionString(options, "target"),
		ExtraTargetID: optionString(options, "second_target"),
	})
	if err != nil {
		return c.fail(s, i, "act", err)
	}

	return RespondWithEphemeralMessage(s, i, "Your action is in. You can change it until the night ends.")
}

func (c *MafiaCommand) handleVote(ctx context.Context, s Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID, username := interactionUser(i)
	targetID := optionString(options, "target")

	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "vote", err)
	}

	_, err = c.gameService.SubmitVote(ctx, &game.SubmitVoteInput{
		MatchID:  matchID,
		VoterID:  userID,
		TargetID: targetID,
	})
	if err != nil {
		return c.fail(s, i, "vote", err)
	}

	return RespondWithMessage(s, i, fmt.Sprintf("%s votes to execute <@%s>.", username, targetID))
}

func (c *MafiaCommand) handleStatus(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "status", err)
	}

	state, err := c.gameService.GetMatchState(ctx, &game.GetMatchStateInput{
		MatchID: matchID,
	})
	if err != nil {
		return c.fail(s, i, "status", err)
	}

	embed := renderMatchEmbed(state, c.roleName)
	if c.deliveries != nil && isModerator(i) {
		stats, err := c.deliveries.GetDeliveryStats(ctx, &messaging.GetDeliveryStatsInput{})
		if err != nil {
			c.logger.Warn().Err(err).Msg("failed to read delivery stats")
		} else {
			embed.Fields = append(embed.Fields, renderDeliveryField(stats))
		}
	}

	return RespondWithEmbed(s, i, embed)
}

func (c *MafiaCommand) handleRole(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	userID, _ := interactionUser(i)

	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "role", err)
	}

	out, err := c.gameService.GetRoleAssignment(ctx, &game.GetRoleAssignmentInput{
		MatchID:       matchID,
		ParticipantID: userID,
	})
	if err != nil {
		return c.fail(s, i, "role", err)
	}

	return RespondWithEphemeralEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("You are the %s", out.Role.Name),
		Description: out.Role.Description,
		Color:       colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Faction", Value: string(out.Role.Faction), Inline: true},
		},
	})
}

func (c *MafiaCommand) handleForce(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "force", err)
	}

	out, err := c.gameService.ForcePhaseEnd(ctx, &game.ForcePhaseEndInput{
		MatchID: matchID,
	})
	if err != nil {
		return c.fail(s, i, "force", err)
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Moved the match from %s to %s.", out.From, out.To))
}

func (c *MafiaCommand) handleEvent(ctx context.Context, s Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "event", err)
	}

	out, err := c.gameService.TriggerEvent(ctx, &game.TriggerEventInput{
		MatchID: matchID,
		Kind:    models.EventKind(optionString(options, "kind")),
	})
	if err != nil {
		return c.fail(s, i, "event", err)
	}

	if !out.Created {
		return RespondWithEphemeralMessage(s, i, "That event already fired this cycle.")
	}
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Fired %s.", out.Event.Kind))
}

func (c *MafiaCommand) handlePause(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "pause", err)
	}

	_, err = c.gameService.PauseMatch(ctx, &game.PauseMatchInput{
		MatchID: matchID,
	})
	if err != nil {
		return c.fail(s, i, "pause", err)
	}

	return RespondWithEphemeralMessage(s, i, "Paused.")
}

func (c *MafiaCommand) handleResume(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	matchID, err := c.matchID(ctx, i)
	if err != nil {
		return c.fail(s, i, "resume", err)
	}

	out, err := c.gameService.ResumeMatch(ctx, &game.ResumeMatchInput{
		MatchID: matchID,
	})
	if err != nil {
		return c.fail(s, i, "resume", err)
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Resumed in %s.", out.Match.Status))
}

func (c *MafiaCommand) handlePurge(ctx context.Context, s Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	matchID := optionString(options, "match")
	if matchID == "" {
		var err error
		matchID, err = c.matchID(ctx, i)
		if err != nil {
			return c.fail(s, i, "purge", err)
		}
	}

	out, err := c.gameService.PurgeMatch(ctx, &game.PurgeMatchInput{
		MatchID: matchID,
	})
	if err != nil {
		return c.fail(s, i, "purge", err)
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Purged match %s, released %d players.", matchID, len(out.Released)))
}
