package discord

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/mafia/internal/events"
	"github.com/KirkDiggler/mafia/internal/ledger"
	"github.com/KirkDiggler/mafia/internal/models"
	"github.com/KirkDiggler/mafia/internal/roster"
	"github.com/KirkDiggler/mafia/internal/services/game"
	"github.com/KirkDiggler/mafia/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Button IDs
const (
	ButtonJoinMatch  = "mafia_join"
	ButtonStartMatch = "mafia_start"
)

// renderLobbyButtons renders the join and start buttons of a waiting match
func renderLobbyButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Join",
			Style:    discordgo.PrimaryButton,
			CustomID: ButtonJoinMatch,
		},
		discordgo.Button{
			Label:    "Start",
			Style:    discordgo.SuccessButton,
			CustomID: ButtonStartMatch,
		},
	}
}

// renderMatchEmbed renders the public state of a match
func renderMatchEmbed(state *game.GetMatchStateOutput, roleName func(string) string) *discordgo.MessageEmbed {
	m := state.Match

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Status",
			Value:  string(m.Status),
			Inline: true,
		},
	}
	if m.Cycle > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Cycle",
			Value:  fmt.Sprintf("%d", m.Cycle),
			Inline: true,
		})
	}
	if !m.PhaseDeadline.IsZero() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Phase ends",
			Value:  discordTimestamp(m.PhaseDeadline),
			Inline: true,
		})
	}

	alive := make([]string, 0, len(state.Alive))
	for _, p := range state.Alive {
		alive = append(alive, renderSummary(p, roleName))
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  fmt.Sprintf("Alive (%d)", len(state.Alive)),
		Value: listOrNone(alive),
	})

	if len(state.Dead) > 0 {
		dead := make([]string, 0, len(state.Dead))
		for _, p := range state.Dead {
			dead = append(dead, fmt.Sprintf("%s, %s on cycle %d", renderSummary(p, roleName), deathCause(p.DeathCause), p.DeathCycle))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Dead (%d)", len(state.Dead)),
			Value: strings.Join(dead, "\n"),
		})
	}

	if len(state.ActiveEvents) > 0 {
		kinds := make([]string, 0, len(state.ActiveEvents))
		for _, e := range state.ActiveEvents {
			kinds = append(kinds, string(e.Kind))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Events",
			Value: strings.Join(kinds, ", "),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:  "Mafia",
		Color:  statusColor(m.Status),
		Fields: fields,
	}
	if m.Status.IsEnded() {
		embed.Description = fmt.Sprintf("The %s won.", m.Winner)
	}
	if m.NeedsReview {
		embed.Description = fmt.Sprintf("Waiting for a moderator: %s", m.ReviewReason)
	}

	return embed
}

// renderDeliveryField shows the notification counters to moderators
func renderDeliveryField(stats *messaging.GetDeliveryStatsOutput) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{
		Name:   "Deliveries",
		Value:  fmt.Sprintf("%d sent, %d failed", stats.Delivered, stats.Failed),
		Inline: true,
	}
}

func renderSummary(p *game.RosterSummary, roleName func(string) string) string {
	line := p.ParticipantName
	if p.Mayor {
		line += " (mayor)"
	}
	if p.RevealedRole != "" {
		line += fmt.Sprintf(" [%s]", roleName(p.RevealedRole))
	}
	return line
}

// renderNotification turns composed text into the embed a sink posts
func renderNotification(n *models.Notification, text *messaging.ComposeOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       text.Title,
		Description: text.Message,
		Color:       colorInfo,
	}

	switch n.Kind {
	case models.NotificationKindPhaseChanged:
		embed.Color = statusColor(n.Status)
		if !n.Deadline.IsZero() {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Ends",
				Value: discordTimestamp(n.Deadline),
			})
		}
	case models.NotificationKindDeath:
		embed.Color = colorDeath
	case models.NotificationKindMatchWon:
		embed.Color = colorGood
		for _, d := range n.Stats {
			result := "lost"
			if d.Won {
				result = "won"
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("<@%s>", d.ParticipantID),
				Value:  fmt.Sprintf("%s, %s, +%d XP", d.Faction, result, d.Experience),
				Inline: true,
			})
		}
	}

	return embed
}

func statusColor(status models.MatchStatus) int {
	switch status {
	case models.MatchStatusNight:
		return colorNight
	case models.MatchStatusEnded:
		return colorGood
	case models.MatchStatusPaused:
		return colorError
	}
	return colorInfo
}

func deathCause(cause models.DeathCause) string {
	switch cause {
	case models.DeathCauseKilledNight:
		return "killed at night"
	case models.DeathCauseExecuted:
		return "executed"
	}
	return string(cause)
}

func discordTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}

func listOrNone(lines []string) string {
	if len(lines) == 0 {
		return "nobody"
	}
	return strings.Join(lines, "\n")
}

// userMessages maps engine errors to what the caller is told
var userMessages = []struct {
	err     error
	message string
}{
	{game.ErrMatchNotFound, "There is no match in this channel. Use `/mafia create` to open one."},
	{game.ErrLobbyBusy, "This channel already has a match going."},
	{game.ErrMatchEnded, "The match is over."},
	{game.ErrMatchPaused, "The match is paused."},
	{game.ErrMatchFull, "The match is full."},
	{game.ErrNotEnoughPlayers, "Not enough players to start yet."},
	{game.ErrAlreadyInMatch, "You are already in this match."},
	{game.ErrInAnotherMatch, "You are playing in another match."},
	{game.ErrNotInMatch, "You are not in this match."},
	{game.ErrRolesNotAssigned, "Roles have not been dealt yet."},
	{game.ErrInvalidMatchState, "That cannot be done right now."},
	{game.ErrMatchBusy, "The match is busy. Try again in a moment."},
	{ledger.ErrPhaseClosed, "That cannot be done in this phase."},
	{ledger.ErrNotInMatch, "You are not in this match."},
	{ledger.ErrDeadActor, "The dead do not act."},
	{ledger.ErrUnauthorizedAction, "Your role cannot do that."},
	{ledger.ErrAbilitySuppressed, "The plague took your ability for tonight."},
	{ledger.ErrTargetRequired, "Pick a target."},
	{ledger.ErrTargetNotFound, "That player is not in this match."},
	{ledger.ErrDeadTarget, "That player is already dead."},
	{ledger.ErrExtraTargetNotAllowed, "You cannot take a second target tonight."},
	{ledger.ErrInvalidActionKind, "Unknown action."},
	{events.ErrInvalidEventKind, "Unknown event."},
	{roster.ErrInsufficientRoles, "There are not enough roles unlocked for this lobby."},
}

// userMessage returns a friendly text for err
func userMessage(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return "Something went wrong. Try again in a moment."
}
