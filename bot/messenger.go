package bot

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// maxMessageLength is Discord's limit for message content
const maxMessageLength = 2000

// dmSession is the part of discordgo.Session used to deliver direct messages
type dmSession interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DirectMessenger delivers messages to users' Discord DMs
type DirectMessenger struct {
	session dmSession
}

func NewDirectMessenger(session dmSession) *DirectMessenger {
	return &DirectMessenger{session: session}
}

// NewRESTMessenger creates a messenger that only uses Discord's REST API.
// No gateway connection is opened, so slash commands are not served.
func NewRESTMessenger(token string) (*DirectMessenger, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	return NewDirectMessenger(dg), nil
}

// SendMessage opens (or reuses) the DM channel with the recipient and posts
// text to it. Text beyond Discord's length limit is split into several
// messages on line boundaries.
func (m *DirectMessenger) SendMessage(ctx context.Context, recipientID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	channel, err := m.session.UserChannelCreate(strconv.FormatInt(recipientID, 10), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	for _, chunk := range splitMessage(text, maxMessageLength) {
		if _, err := m.session.ChannelMessageSend(channel.ID, chunk, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to send DM: %w", err)
		}
	}

	log.WithField("recipient_id", recipientID).Debug("Sent direct message")
	return nil
}

// splitMessage breaks text into chunks of at most limit bytes, preferring to
// cut after a newline
func splitMessage(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := limit
		for i := limit; i > 0; i-- {
			if text[i-1] == '\n' {
				cut = i
				break
			}
		}
		if cut == limit {
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
