package bot

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Conversation is the slice of a chat interaction a command needs: who is
// asking and a way to answer them
type Conversation interface {
	SenderIdentity() int64
	SendMessage(text string) error
}

// interactionConversation answers a slash command with an ephemeral reply
type interactionConversation struct {
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate
}

func newInteractionConversation(s *discordgo.Session, i *discordgo.InteractionCreate) *interactionConversation {
	return &interactionConversation{session: s, interaction: i}
}

// SenderIdentity returns the Discord id of the invoking user, or 0 when it
// cannot be determined
func (c *interactionConversation) SenderIdentity() int64 {
	var userID string
	switch {
	case c.interaction.Member != nil && c.interaction.Member.User != nil:
		userID = c.interaction.Member.User.ID
	case c.interaction.User != nil:
		userID = c.interaction.User.ID
	}

	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (c *interactionConversation) SendMessage(text string) error {
	return c.session.InteractionRespond(c.interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
