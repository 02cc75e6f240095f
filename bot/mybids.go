package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auctioneer/auction"
	"auctioneer/models"
	"auctioneer/service"
)

// MyBidsCommandName is the slash command listing the caller's winning bids
const MyBidsCommandName = "mybids"

// maxListedBids caps the lines in one reply
const maxListedBids = 20

// MyBidsCommand answers /mybids
type MyBidsCommand struct {
	biddingService service.BiddingService
	now            func() time.Time
}

func NewMyBidsCommand(biddingService service.BiddingService) *MyBidsCommand {
	return &MyBidsCommand{biddingService: biddingService, now: time.Now}
}

// Handle replies with the seats the sender currently holds
func (c *MyBidsCommand) Handle(ctx context.Context, conv Conversation) error {
	senderID := conv.SenderIdentity()
	if senderID == 0 {
		return conv.SendMessage("❌ Could not determine who you are.")
	}

	bids, err := c.biddingService.ListUserWinningBids(ctx, senderID)
	if err != nil {
		return fmt.Errorf("failed to list winning bids: %w", err)
	}

	return conv.SendMessage(formatWinningBids(bids, c.now()))
}

func formatWinningBids(bids []*models.UserWinningBid, now time.Time) string {
	if len(bids) == 0 {
		return "You are not currently winning any seats."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are currently winning %d seat(s):\n", len(bids))
	for i, bid := range bids {
		if i == maxListedBids {
			fmt.Fprintf(&b, "…and %d more\n", len(bids)-maxListedBids)
			break
		}
		closing := "closes"
		if !now.Before(bid.EndsAt) {
			closing = "closed"
		}
		fmt.Fprintf(&b, "• **%s** (%s): %s, %s %s\n",
			bid.GameTitle, bid.EventName, auction.FormatAmount(bid.Amount), closing, FormatDiscordTimestamp(bid.EndsAt, "R"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
