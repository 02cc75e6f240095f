package auction

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"auctioneer/models"
)

// ValidateBid checks a candidate amount against the game, its event and the
// ledger as read inside the submission transaction. It returns nil when the
// bid may be stored.
func ValidateBid(game *models.Game, event *models.Event, amount decimal.Decimal, ledger []*models.Bid, now time.Time) *models.Rejection {
	if game == nil || event == nil {
		return GameNotFound()
	}

	if !amount.IsPositive() {
		return &models.Rejection{
			Reason:  models.RejectionInvalidAmount,
			Message: "bid amount must be positive",
		}
	}
	if !FitsMoneyColumn(amount) {
		return &models.Rejection{
			Reason:  models.RejectionInvalidAmount,
			Message: fmt.Sprintf("bid amount cannot exceed %s", FormatAmount(MaxAmount)),
		}
	}
	if !HasMoneyPrecision(amount) {
		return &models.Rejection{
			Reason:  models.RejectionInvalidAmount,
			Message: "bid amount cannot have more than two decimal places",
		}
	}

	if !event.IsActive {
		return &models.Rejection{
			Reason:  models.RejectionEventInactive,
			Message: fmt.Sprintf("bidding is not open for %s", event.Name),
		}
	}
	if event.HasEnded(now) {
		return &models.Rejection{
			Reason:  models.RejectionAuctionEnded,
			Message: fmt.Sprintf("the auction for %s has ended", game.Title),
		}
	}

	if amount.LessThan(game.StartingPrice) {
		return &models.Rejection{
			Reason:  models.RejectionBelowStartingPrice,
			Message: fmt.Sprintf("bid must be at least the starting price of %s", FormatAmount(game.StartingPrice)),
			Minimum: game.StartingPrice,
		}
	}

	if SeatsFilled(game, ledger) {
		minimum := MinimumAcceptableBid(game, ledger)
		if !amount.GreaterThan(minimum) {
			return &models.Rejection{
				Reason:  models.RejectionBelowMinimum,
				Message: fmt.Sprintf("bid must be greater than %s", FormatAmount(minimum)),
				Minimum: minimum,
			}
		}
	}

	return nil
}

// GameNotFound is the rejection for bids against an unknown game
func GameNotFound() *models.Rejection {
	return &models.Rejection{
		Reason:  models.RejectionGameNotFound,
		Message: "game not found",
	}
}

// Conflict is the retryable rejection returned when concurrent submissions
// kept invalidating the ledger snapshot
func Conflict() *models.Rejection {
	return &models.Rejection{
		Reason:  models.RejectionConflict,
		Message: "another bid was placed at the same time, please retry",
	}
}
