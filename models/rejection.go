package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RejectionReason identifies why a bid was not accepted
type RejectionReason string

const (
	RejectionInvalidAmount      RejectionReason = "invalid_amount"
	RejectionBelowStartingPrice RejectionReason = "below_starting_price"
	RejectionBelowMinimum       RejectionReason = "below_minimum"
	RejectionAuctionEnded       RejectionReason = "auction_ended"
	RejectionEventInactive      RejectionReason = "event_inactive"
	RejectionGameNotFound       RejectionReason = "game_not_found"
	RejectionConflict           RejectionReason = "conflict"
)

// Rejection is a user-facing validation failure. It is a normal result of
// bid submission and never a fault.
type Rejection struct {
	Reason  RejectionReason
	Message string
	Minimum decimal.Decimal // Set for below_starting_price and below_minimum
}

// Retryable reports whether the same bid may succeed if submitted again
func (r *Rejection) Retryable() bool {
	return r.Reason == RejectionConflict
}

func (r *Rejection) String() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Message)
}
