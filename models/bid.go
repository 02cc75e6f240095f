package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is an immutable offer for a seat in a game. Only IsWinning and
// NotifiedAt change after insert.
type Bid struct {
	ID         int64           `db:"id"`
	GameID     int64           `db:"game_id"`
	UserID     int64           `db:"user_id"`
	Amount     decimal.Decimal `db:"amount"`
	IsWinning  bool            `db:"is_winning"`
	NotifiedAt *time.Time      `db:"notified_at"`
	CreatedAt  time.Time       `db:"created_at"`
}

// BidResult is the outcome of a bid submission returned to the caller.
// Exactly one of Bid and Rejection is set.
type BidResult struct {
	Bid                  *Bid
	Rejection            *Rejection
	MinimumAcceptableBid decimal.Decimal // Floor for the next bid after this submission
}

// Accepted reports whether the submission produced a stored bid
func (r *BidResult) Accepted() bool {
	return r.Bid != nil
}

// WinningBidView is a ranked winning bid as shown to a requesting user
type WinningBidView struct {
	Rank              int
	Amount            decimal.Decimal
	BidderDisplayName string
	IsRequestingUser  bool
	CreatedAt         time.Time
}

// UserWinningBid is a bid a user currently holds a seat with
type UserWinningBid struct {
	BidID     int64
	GameID    int64
	GameTitle string
	EventName string
	Amount    decimal.Decimal
	EndsAt    time.Time
}

// PendingWinnerNotification is a winning, unnotified bid in an ended auction
type PendingWinnerNotification struct {
	BidID       int64
	GameID      int64
	GameTitle   string
	EventID     int64
	EventName   string
	UserID      int64
	Username    string
	RecipientID int64 // Linked Discord ID of the winner
	Amount      decimal.Decimal
}
