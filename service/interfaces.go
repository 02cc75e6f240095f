package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"auctioneer/events"
	"auctioneer/models"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	// GetByID retrieves an event, returning nil when it does not exist
	GetByID(ctx context.Context, id int64) (*models.Event, error)

	// Create inserts a new event and fills in its generated fields
	Create(ctx context.Context, event *models.Event) error

	// ListActive returns active events ordered by end time
	ListActive(ctx context.Context) ([]*models.Event, error)
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	// GetByID retrieves a game, returning nil when it does not exist
	GetByID(ctx context.Context, id int64) (*models.Game, error)

	// GetByIDForUpdate retrieves a game and locks its row until the
	// transaction ends, serializing bid submissions for that game
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error)

	// Create inserts a new game and fills in its generated fields
	Create(ctx context.Context, game *models.Game) error

	// ListByEvent returns the games of an event ordered by title
	ListByEvent(ctx context.Context, eventID int64) ([]*models.Game, error)
}

// BidRepository is the per-game bid ledger
type BidRepository interface {
	// Create appends an immutable bid record. IsWinning is not persisted here.
	Create(ctx context.Context, bid *models.Bid) error

	// ListByGame returns every bid for a game ordered by rank
	ListByGame(ctx context.Context, gameID int64) ([]*models.Bid, error)

	// SetWinningFlags marks exactly the given bids of a game as winning and
	// every other bid of that game as not winning, in one statement
	SetWinningFlags(ctx context.Context, gameID int64, winningBidIDs []int64) error

	// ListWinningByUser returns the bids a user currently wins
	ListWinningByUser(ctx context.Context, userID int64) ([]*models.UserWinningBid, error)

	// GetPendingWinnerNotifications returns winning bids that have not been
	// notified in auctions whose end time is at or before endedBy. Only
	// winners with a linked messaging identity are returned.
	GetPendingWinnerNotifications(ctx context.Context, endedBy time.Time, requireActiveEvent bool) ([]*models.PendingWinnerNotification, error)

	// MarkNotified sets notified_at on the given bids where it is still null
	// and returns the number of bids updated
	MarkNotified(ctx context.Context, bidIDs []int64, notifiedAt time.Time) (int64, error)
}

// UserRepository defines the interface for user and session data access
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error)
	Create(ctx context.Context, username string, discordID *int64) (*models.User, error)

	// CreateSession stores a session issued for a user
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by token, returning nil when unknown
	GetSession(ctx context.Context, token string) (*models.Session, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a read committed transaction
	Begin(ctx context.Context) error

	// BeginSerializable starts a serializable transaction
	BeginSerializable(ctx context.Context) error

	// Commit commits the transaction and then flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	EventRepository() EventRepository
	GameRepository() GameRepository
	BidRepository() BidRepository
	UserRepository() UserRepository

	// EventBus returns the transactional event publisher
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// MessageSender delivers a direct message to a linked messaging identity
type MessageSender interface {
	SendMessage(ctx context.Context, recipientID int64, text string) error
}

// MetricsRecorder receives business metrics from the services
type MetricsRecorder interface {
	RecordBidOutcome(outcome string)
	RecordBidRetry()
	RecordNotification(result string)
	RecordSweep(recipients int, duration time.Duration)
}

// BiddingService defines the bid submission use case and its read models
type BiddingService interface {
	// SubmitBid validates and stores a bid, then recomputes the game's
	// winners. Rejections are reported in the result; errors are faults.
	SubmitBid(ctx context.Context, gameID, userID int64, amount decimal.Decimal) (*models.BidResult, error)

	// GetMinimumAcceptableBid returns the current price floor for a game
	GetMinimumAcceptableBid(ctx context.Context, gameID int64) (decimal.Decimal, error)

	// ListWinningBids returns a game's winning bids in rank order with
	// bidder identities anonymized. requestingUserID is 0 for anonymous readers.
	ListWinningBids(ctx context.Context, gameID, requestingUserID int64) ([]*models.WinningBidView, error)

	// ListUserWinningBids returns the bids the user linked to discordID currently wins
	ListUserWinningBids(ctx context.Context, discordID int64) ([]*models.UserWinningBid, error)
}

// NotificationService defines the ended-auction winner notification sweep
type NotificationService interface {
	// ProcessEndedAuctions notifies every pending winner once and returns
	// the number of recipients notified
	ProcessEndedAuctions(ctx context.Context) (int, error)
}

// CreateGameParams holds the administrator input for a new game
type CreateGameParams struct {
	EventID         int64
	Title           string
	Description     string
	TotalSeats      int
	StartingPrice   decimal.Decimal
	MinBidIncrement decimal.Decimal
}

// CatalogService defines event and game administration and browsing
type CatalogService interface {
	CreateEvent(ctx context.Context, name string, startsAt, endsAt time.Time) (*models.Event, error)
	CreateGame(ctx context.Context, params CreateGameParams) (*models.Game, error)
	GetGame(ctx context.Context, gameID int64) (*models.GameDetail, error)
	ListGames(ctx context.Context, eventID int64) ([]*models.Game, error)
	ListActiveEvents(ctx context.Context) ([]*models.Event, error)
}

// UserService defines session resolution and issuance
type UserService interface {
	// ResolveSession returns the user behind a session token, or nil when the
	// token is unknown or expired
	ResolveSession(ctx context.Context, token string) (*models.User, error)

	// CreateSession finds or creates the user linked to discordID and issues a session
	CreateSession(ctx context.Context, discordID int64, username string, ttl time.Duration) (*models.Session, error)
}
