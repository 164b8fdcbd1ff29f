package discord

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	config     *Config
	logger     zerolog.Logger
	mu         sync.RWMutex
	commands   map[string]CommandHandler
	components map[string]ComponentHandler
	commandIDs map[string]string // Maps command name to command ID
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	Logger *zerolog.Logger
}

// New creates a new Discord bot. The session is created but not opened, so
// the notifier can be wired to it before the game service exists.
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		config:     cfg,
		logger:     zerolog.Nop(),
		commands:   make(map[string]CommandHandler),
		components: make(map[string]ComponentHandler),
		commandIDs: make(map[string]string),
	}
	if cfg.Logger != nil {
		bot.logger = cfg.Logger.With().Str("component", "discord_bot").Logger()
	}

	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		bot.handleInteraction(s, i)
	})

	return bot, nil
}

// Session returns the underlying Discord session
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// AddCommand routes a command, and its buttons if it has any, to cmd.
// Commands added before Start are registered with Discord on Start.
func (b *Bot) AddCommand(cmd CommandHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.commands[cmd.GetName()] = cmd
	if ch, ok := cmd.(ComponentHandler); ok {
		for _, id := range ch.ComponentIDs() {
			b.components[id] = ch
		}
	}
}

// Start opens the websocket connection and registers the commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	b.mu.RLock()
	commands := make([]CommandHandler, 0, len(b.commands))
	for _, cmd := range b.commands {
		commands = append(commands, cmd)
	}
	b.mu.RUnlock()

	for _, cmd := range commands {
		if err := b.registerCommand(cmd); err != nil {
			return err
		}
	}

	b.logger.Info().Int("commands", len(commands)).Msg("bot is now running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()

	b.mu.RLock()
	defer b.mu.RUnlock()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("failed to delete command")
			continue
		}
		b.logger.Info().Str("command", cmdName).Str("command_id", cmdID).Msg("deleted command")
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// registerCommand registers a command with Discord, for the configured guild
// or globally
func (b *Bot) registerCommand(cmd CommandHandler) error {
	created, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.mu.Lock()
	b.commandIDs[cmd.GetName()] = created.ID
	b.mu.Unlock()

	b.logger.Info().
		Str("command", cmd.GetName()).
		Str("command_id", created.ID).
		Str("guild_id", b.config.GuildID).
		Msg("registered command")

	return nil
}

// handleInteraction routes slash commands and button clicks
func (b *Bot) handleInteraction(s Session, i *discordgo.InteractionCreate) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := b.commands[name]
		if !ok {
			return
		}
		if err := h.Handle(s, i); err != nil {
			b.logger.Error().Err(err).Str("command", name).Msg("failed to handle command")
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		h, ok := b.components[customID]
		if !ok {
			if err := RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID)); err != nil {
				b.logger.Error().Err(err).Str("custom_id", customID).Msg("failed to respond")
			}
			return
		}
		if err := h.HandleComponent(s, i); err != nil {
			b.logger.Error().Err(err).Str("custom_id", customID).Msg("failed to handle component")
		}
	}
}
