package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"auctioneer/service"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // Commands are registered globally when empty
}

type Bot struct {
	config   Config
	session  *discordgo.Session
	myBids   *MyBidsCommand
	commands []*discordgo.ApplicationCommand
}

// New opens a Discord session and registers the slash commands
func New(config Config, biddingService service.BiddingService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	bot := &Bot{
		config:  config,
		session: dg,
		myBids:  NewMyBidsCommand(biddingService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.WithField("guild_id", config.GuildID).Info("Discord bot connected")
	return bot, nil
}

// Messenger returns a message sender delivering direct messages through
// this bot's session
func (b *Bot) Messenger() *DirectMessenger {
	return NewDirectMessenger(b.session)
}

// Close removes the registered commands and closes the session
func (b *Bot) Close() error {
	b.unregisterCommands()
	return b.session.Close()
}
