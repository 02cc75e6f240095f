package auction

import (
	"github.com/shopspring/decimal"

	"auctioneer/models"
)

// MinimumAcceptableBid returns the price floor a new bid is compared against.
// While seats remain unfilled the floor is the starting price. Once every seat
// is taken it is the lowest winning amount plus the game's increment.
func MinimumAcceptableBid(game *models.Game, ledger []*models.Bid) decimal.Decimal {
	if len(ledger) < game.TotalSeats {
		return game.StartingPrice
	}

	winners := WinningBids(ledger, game.TotalSeats)
	if len(winners) == 0 {
		return game.StartingPrice
	}

	lowest := winners[len(winners)-1].Amount
	return lowest.Add(game.MinBidIncrement)
}

// SeatsFilled reports whether every seat currently has a bid on it
func SeatsFilled(game *models.Game, ledger []*models.Bid) bool {
	return len(ledger) >= game.TotalSeats
}
