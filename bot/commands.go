package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const commandTimeout = 10 * time.Second

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        MyBidsCommandName,
			Description: "List the auction seats you are currently winning",
		},
	}

	appID := b.session.State.User.ID
	for _, cmd := range commands {
		created, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd)
		if err != nil {
			return err
		}
		b.commands = append(b.commands, created)
	}

	log.WithField("count", len(b.commands)).Info("Registered slash commands")
	return nil
}

func (b *Bot) unregisterCommands() {
	appID := b.session.State.User.ID
	for _, cmd := range b.commands {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmd.ID); err != nil {
			log.WithFields(log.Fields{
				"command": cmd.Name,
				"error":   err,
			}).Warn("Failed to delete slash command")
		}
	}
	b.commands = nil
}

// handleCommands routes slash command interactions
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	conv := newInteractionConversation(s, i)
	name := i.ApplicationCommandData().Name

	var err error
	switch name {
	case MyBidsCommandName:
		err = b.myBids.Handle(ctx, conv)
	default:
		return
	}

	if err != nil {
		log.WithFields(log.Fields{
			"command": name,
			"user_id": conv.SenderIdentity(),
			"error":   err,
		}).Error("Slash command failed")
		if sendErr := conv.SendMessage("❌ Something went wrong, please try again later."); sendErr != nil {
			log.WithError(sendErr).Warn("Failed to report command error")
		}
	}
}
