package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"auctioneer/auction"
	"auctioneer/database"
	"auctioneer/events"
	"auctioneer/models"
)

// maxSubmitAttempts bounds how often a submission is replayed after a
// serialization conflict before the bidder is asked to retry
const maxSubmitAttempts = 2

// OutcomeAccepted is the metrics outcome for a stored bid. Rejections use
// their reason as the outcome.
const OutcomeAccepted = "accepted"

// biddingService implements the BiddingService interface
type biddingService struct {
	uowFactory UnitOfWorkFactory
	clock      Clock
	metrics    MetricsRecorder
}

// NewBiddingService creates a new bidding service. A nil metrics recorder
// disables metrics.
func NewBiddingService(uowFactory UnitOfWorkFactory, clock Clock, metrics MetricsRecorder) BiddingService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &biddingService{
		uowFactory: uowFactory,
		clock:      clock,
		metrics:    metrics,
	}
}

// SubmitBid validates and records a bid inside a serializable transaction.
// A serialization failure replays the whole submission once; a second
// failure is returned as a retryable conflict rejection.
func (s *biddingService) SubmitBid(ctx context.Context, gameID, userID int64, amount decimal.Decimal) (*models.BidResult, error) {
	logger := log.WithFields(log.Fields{
		"game_id": gameID,
		"user_id": userID,
		"amount":  amount.String(),
	})

	for attempt := 1; ; attempt++ {
		result, err := s.trySubmitBid(ctx, gameID, userID, amount)
		if err == nil {
			s.recordOutcome(result)
			if result.Accepted() {
				logger.WithFields(log.Fields{
					"bid_id":     result.Bid.ID,
					"is_winning": result.Bid.IsWinning,
				}).Info("Bid accepted")
			} else {
				logger.WithField("reason", result.Rejection.Reason).Info("Bid rejected")
			}
			return result, nil
		}

		if !database.IsSerializationFailure(err) {
			logger.WithError(err).Error("Bid submission failed")
			return nil, fmt.Errorf("failed to submit bid: %w", err)
		}

		if attempt >= maxSubmitAttempts {
			logger.WithField("attempts", attempt).Warn("Bid submission conflicted repeatedly")
			result := &models.BidResult{Rejection: auction.Conflict()}
			s.recordOutcome(result)
			return result, nil
		}

		s.metrics.RecordBidRetry()
		logger.WithField("attempt", attempt).Debug("Serialization conflict, retrying bid submission")
	}
}

func (s *biddingService) trySubmitBid(ctx context.Context, gameID, userID int64, amount decimal.Decimal) (*models.BidResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.BeginSerializable(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByIDForUpdate(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock game: %w", err)
	}
	if game == nil {
		return &models.BidResult{Rejection: auction.GameNotFound()}, nil
	}

	event, err := uow.EventRepository().GetByID(ctx, game.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	ledger, err := uow.BidRepository().ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to read bid ledger: %w", err)
	}

	now := s.clock.Now()
	if rejection := auction.ValidateBid(game, event, amount, ledger, now); rejection != nil {
		return &models.BidResult{
			Rejection:            rejection,
			MinimumAcceptableBid: auction.MinimumAcceptableBid(game, ledger),
		}, nil
	}

	bid := &models.Bid{
		GameID:    gameID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: now,
	}
	if err := uow.BidRepository().Create(ctx, bid); err != nil {
		return nil, fmt.Errorf("failed to record bid: %w", err)
	}

	ledger, err = uow.BidRepository().ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read bid ledger: %w", err)
	}

	winners := auction.SelectWinners(ledger, game.TotalSeats)
	if err := uow.BidRepository().SetWinningFlags(ctx, gameID, winners); err != nil {
		return nil, fmt.Errorf("failed to update winning bids: %w", err)
	}

	for _, id := range winners {
		if id == bid.ID {
			bid.IsWinning = true
			break
		}
	}
	nextMinimum := auction.MinimumAcceptableBid(game, ledger)

	uow.EventBus().Publish(events.BidPlacedEvent{
		BidID:                bid.ID,
		GameID:               gameID,
		BidderID:             userID,
		Amount:               bid.Amount,
		IsWinning:            bid.IsWinning,
		CreatedAt:            bid.CreatedAt,
		MinimumAcceptableBid: nextMinimum,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bid: %w", err)
	}

	return &models.BidResult{
		Bid:                  bid,
		MinimumAcceptableBid: nextMinimum,
	}, nil
}

func (s *biddingService) recordOutcome(result *models.BidResult) {
	if result.Accepted() {
		s.metrics.RecordBidOutcome(OutcomeAccepted)
		return
	}
	s.metrics.RecordBidOutcome(string(result.Rejection.Reason))
}

// GetMinimumAcceptableBid returns the current price floor for a game
func (s *biddingService) GetMinimumAcceptableBid(ctx context.Context, gameID int64) (decimal.Decimal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return decimal.Zero, ErrGameNotFound
	}

	ledger, err := uow.BidRepository().ListByGame(ctx, gameID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read bid ledger: %w", err)
	}

	return auction.MinimumAcceptableBid(game, ledger), nil
}

// ListWinningBids returns the winning bids of a game. Bidders are shown as
// "Bidder N", numbered by the order of their first bid on the game, so the
// same bidder keeps the same name across refreshes.
func (s *biddingService) ListWinningBids(ctx context.Context, gameID, requestingUserID int64) ([]*models.WinningBidView, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	ledger, err := uow.BidRepository().ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to read bid ledger: %w", err)
	}

	bidderNumbers := numberBidders(ledger)

	views := make([]*models.WinningBidView, 0, game.TotalSeats)
	for i, bid := range auction.WinningBids(ledger, game.TotalSeats) {
		views = append(views, &models.WinningBidView{
			Rank:              i + 1,
			Amount:            bid.Amount,
			BidderDisplayName: fmt.Sprintf("Bidder %d", bidderNumbers[bid.UserID]),
			IsRequestingUser:  requestingUserID != 0 && bid.UserID == requestingUserID,
			CreatedAt:         bid.CreatedAt,
		})
	}

	return views, nil
}

// numberBidders assigns each bidder a 1-based number by first submission
func numberBidders(ledger []*models.Bid) map[int64]int {
	chronological := make([]*models.Bid, len(ledger))
	copy(chronological, ledger)
	sortChronologically(chronological)

	numbers := make(map[int64]int)
	for _, bid := range chronological {
		if _, seen := numbers[bid.UserID]; !seen {
			numbers[bid.UserID] = len(numbers) + 1
		}
	}
	return numbers
}

// ListUserWinningBids returns the caller's current winning bids
func (s *biddingService) ListUserWinningBids(ctx context.Context, discordID int64) ([]*models.UserWinningBid, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return []*models.UserWinningBid{}, nil
	}

	bids, err := uow.BidRepository().ListWinningByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list winning bids: %w", err)
	}
	return bids, nil
}
