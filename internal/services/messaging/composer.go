package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/mafia/internal/dice"
	"github.com/KirkDiggler/mafia/internal/models"
)

// Composer renders notifications as player facing text. It holds no sinks.
type Composer struct {
	roller dice.Roller
}

// NewComposer creates a composer; a time seeded roller is used when nil
func NewComposer(roller dice.Roller) *Composer {
	if roller == nil {
		roller = dice.New(nil)
	}
	return &Composer{roller: roller}
}

// Compose returns a title and a message for the notification
func (c *Composer) Compose(ctx context.Context, input *ComposeInput) (*ComposeOutput, error) {
	if input == nil || input.Notification == nil {
		return nil, errors.New("input and notification cannot be nil")
	}

	n := input.Notification
	roleName := input.RoleName
	if roleName == nil {
		roleName = func(id string) string { return id }
	}

	switch n.Kind {
	case models.NotificationKindRoleAssigned:
		if n.Role == nil {
			return nil, errors.New("role assignment without a role")
		}
		return &ComposeOutput{
			Title:   fmt.Sprintf("You are the %s", n.Role.Name),
			Message: fmt.Sprintf("%s\nYou play for the %s.", n.Role.Description, n.Role.Faction),
		}, nil

	case models.NotificationKindPhaseChanged:
		return &ComposeOutput{
			Title:   phaseTitle(n.Status, n.Cycle),
			Message: c.pick(phaseMessages[n.Status]),
		}, nil

	case models.NotificationKindDeath:
		lines := deathMessages[n.Cause]
		return &ComposeOutput{
			Title:   fmt.Sprintf("%s is dead", n.SubjectName),
			Message: fmt.Sprintf(c.pick(lines), n.SubjectName),
		}, nil

	case models.NotificationKindEvent:
		if n.Event == nil {
			return nil, errors.New("event notification without an event")
		}
		return &ComposeOutput{
			Title:   eventTitles[n.Event.Kind],
			Message: eventMessage(n.Event, roleName),
		}, nil

	case models.NotificationKindInvestigation:
		return &ComposeOutput{
			Title:   fmt.Sprintf("Your investigation of %s", n.SubjectName),
			Message: investigationMessage(n, roleName),
		}, nil

	case models.NotificationKindMatchWon:
		return &ComposeOutput{
			Title:   fmt.Sprintf("The %s wins!", n.Winner),
			Message: c.pick(winMessages[n.Winner]),
		}, nil
	}

	return nil, fmt.Errorf("unknown notification kind %q", n.Kind)
}

// pick returns a random line
func (c *Composer) pick(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[c.roller.Roll(len(lines))-1]
}

func phaseTitle(status models.MatchStatus, cycle int) string {
	switch status {
	case models.MatchStatusNight:
		return fmt.Sprintf("Night %d", cycle)
	case models.MatchStatusDay:
		return fmt.Sprintf("Day %d", cycle)
	case models.MatchStatusVoting:
		return fmt.Sprintf("Vote %d", cycle)
	case models.MatchStatusStarting:
		return "The match is about to start"
	case models.MatchStatusPaused:
		return "The match is paused"
	}
	title := string(status)
	if title == "" {
		return ""
	}
	return strings.ToUpper(title[:1]) + title[1:]
}

func eventMessage(e *models.Event, roleName func(string) string) string {
	name := e.Payload[PayloadParticipantName]
	switch e.Kind {
	case models.EventKindPlague:
		return fmt.Sprintf("The plague struck %s. Their ability is gone for a night.", name)
	case models.EventKindRevelation:
		return fmt.Sprintf("A revelation! %s is the %s.", name, roleName(e.Payload[PayloadRole]))
	case models.EventKindMayorElection:
		return fmt.Sprintf("%s was elected mayor. Their vote counts twice.", name)
	}
	return eventDescriptions[e.Kind]
}

func investigationMessage(n *models.Notification, roleName func(string) string) string {
	if n.RevealedRole != "" {
		return fmt.Sprintf("%s is the %s.", n.SubjectName, roleName(n.RevealedRole))
	}
	if n.Result == models.ResultIsMafia {
		return fmt.Sprintf("%s works for the mafia.", n.SubjectName)
	}
	return fmt.Sprintf("%s is not with the mafia.", n.SubjectName)
}
