package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"auctioneer/auction"
	"auctioneer/models"
)

// catalogService implements the CatalogService interface
type catalogService struct {
	uowFactory UnitOfWorkFactory
}

// NewCatalogService creates a new catalog service
func NewCatalogService(uowFactory UnitOfWorkFactory) CatalogService {
	return &catalogService{uowFactory: uowFactory}
}

// CreateEvent creates an active event with the given auction window
func (s *catalogService) CreateEvent(ctx context.Context, name string, startsAt, endsAt time.Time) (*models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidEvent)
	}
	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidEvent)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	event := &models.Event{
		Name:     name,
		StartsAt: startsAt.UTC(),
		EndsAt:   endsAt.UTC(),
		IsActive: true,
	}
	if err := uow.EventRepository().Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"event_id": event.ID,
		"ends_at":  event.EndsAt,
	}).Info("Event created")
	return event, nil
}

// CreateGame adds a game to an existing event
func (s *catalogService) CreateGame(ctx context.Context, params CreateGameParams) (*models.Game, error) {
	if err := validateGameParams(params); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	event, err := uow.EventRepository().GetByID(ctx, params.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	game := &models.Game{
		EventID:         params.EventID,
		Title:           strings.TrimSpace(params.Title),
		Description:     strings.TrimSpace(params.Description),
		TotalSeats:      params.TotalSeats,
		StartingPrice:   params.StartingPrice,
		MinBidIncrement: params.MinBidIncrement,
	}
	if err := uow.GameRepository().Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"game_id":  game.ID,
		"event_id": game.EventID,
		"seats":    game.TotalSeats,
	}).Info("Game created")
	return game, nil
}

func validateGameParams(params CreateGameParams) error {
	switch {
	case strings.TrimSpace(params.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidGame)
	case params.TotalSeats < 1:
		return fmt.Errorf("%w: total seats must be at least 1", ErrInvalidGame)
	case params.StartingPrice.IsNegative():
		return fmt.Errorf("%w: starting price cannot be negative", ErrInvalidGame)
	case !params.MinBidIncrement.IsPositive():
		return fmt.Errorf("%w: minimum bid increment must be positive", ErrInvalidGame)
	case !auction.HasMoneyPrecision(params.StartingPrice) || !auction.HasMoneyPrecision(params.MinBidIncrement):
		return fmt.Errorf("%w: amounts cannot have more than two decimal places", ErrInvalidGame)
	case !auction.FitsMoneyColumn(params.StartingPrice) || !auction.FitsMoneyColumn(params.MinBidIncrement):
		return fmt.Errorf("%w: amounts cannot exceed %s", ErrInvalidGame, auction.FormatAmount(auction.MaxAmount))
	}
	return nil
}

// GetGame returns a game with its event and current price floor
func (s *catalogService) GetGame(ctx context.Context, gameID int64) (*models.GameDetail, error) {
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

	event, err := uow.EventRepository().GetByID(ctx, game.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	ledger, err := uow.BidRepository().ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to read bid ledger: %w", err)
	}

	return &models.GameDetail{
		Game:                 game,
		Event:                event,
		MinimumAcceptableBid: auction.MinimumAcceptableBid(game, ledger),
		BidCount:             len(ledger),
	}, nil
}

// ListGames returns the games of an event
func (s *catalogService) ListGames(ctx context.Context, eventID int64) ([]*models.Game, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	event, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	games, err := uow.GameRepository().ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// ListActiveEvents returns events that are currently accepting bids or about to
func (s *catalogService) ListActiveEvents(ctx context.Context) ([]*models.Event, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	eventsList, err := uow.EventRepository().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return eventsList, nil
}
