package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game is a tabletop game session whose seats are auctioned
type Game struct {
	ID              int64           `db:"id"`
	EventID         int64           `db:"event_id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	TotalSeats      int             `db:"total_seats"`
	StartingPrice   decimal.Decimal `db:"starting_price"`
	MinBidIncrement decimal.Decimal `db:"min_bid_increment"`
	CreatedAt       time.Time       `db:"created_at"`
}

// GameDetail is a game together with its event and the current price floor
type GameDetail struct {
	Game                 *Game
	Event                *Event
	MinimumAcceptableBid decimal.Decimal
	BidCount             int
}
