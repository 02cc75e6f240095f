package service

import (
	"fmt"
	"strings"

	"auctioneer/auction"
)

// formatWinnerMessage renders the single congratulation message a recipient
// receives for every game won in ended auctions
func formatWinnerMessage(digest *winnerDigest) string {
	var b strings.Builder

	b.WriteString("🎉 Congratulations! The auction has closed and you won a seat at:\n")
	for _, item := range digest.Items {
		fmt.Fprintf(&b, "• **%s** (%s): winning bid %s\n", item.GameTitle, item.EventName, auction.FormatAmount(item.Amount))
	}
	b.WriteString("\nThank you for supporting the charity! Event staff will follow up with seating details.")

	return b.String()
}
