package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"auctioneer/database"
	"auctioneer/models"
)

// BidRepository implements the BidRepository interface
type BidRepository struct {
	q queryable
}

// NewBidRepository creates a new bid repository
func NewBidRepository(db *database.DB) *BidRepository {
	return &BidRepository{q: db.Pool}
}

func newBidRepositoryWithTx(tx queryable) *BidRepository {
	return &BidRepository{q: tx}
}

// Create appends a bid to the ledger
func (r *BidRepository) Create(ctx context.Context, bid *models.Bid) error {
	query := `
		INSERT INTO bids (game_id, user_id, amount, created_at)
		VALUES ($1, $2, $3::numeric, $4)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query, bid.GameID, bid.UserID, bid.Amount.String(), bid.CreatedAt).Scan(&bid.ID)
	if err != nil {
		return fmt.Errorf("failed to create bid for game %d: %w", bid.GameID, err)
	}

	return nil
}

// ListByGame returns every bid for a game in rank order
func (r *BidRepository) ListByGame(ctx context.Context, gameID int64) ([]*models.Bid, error) {
	query := `
		SELECT id, game_id, user_id, amount::text, is_winning, notified_at, created_at
		FROM bids
		WHERE game_id = $1
		ORDER BY amount DESC, created_at ASC, id ASC
	`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids for game %d: %w", gameID, err)
	}
	defer rows.Close()

	bids := make([]*models.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, bid)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}

	return bids, nil
}

func scanBid(row pgx.Row) (*models.Bid, error) {
	var bid models.Bid
	var amount string
	if err := row.Scan(
		&bid.ID,
		&bid.GameID,
		&bid.UserID,
		&amount,
		&bid.IsWinning,
		&bid.NotifiedAt,
		&bid.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if bid.Amount, err = parseMoney("amount", amount); err != nil {
		return nil, err
	}
	return &bid, nil
}

// SetWinningFlags rewrites is_winning for the whole game in one statement,
// so a reader sees either the previous winner set or the new one
func (r *BidRepository) SetWinningFlags(ctx context.Context, gameID int64, winningBidIDs []int64) error {
	if winningBidIDs == nil {
		winningBidIDs = []int64{}
	}

	query := `
		UPDATE bids
		SET is_winning = (id = ANY($2::bigint[]))
		WHERE game_id = $1
		  AND is_winning IS DISTINCT FROM (id = ANY($2::bigint[]))
	`

	if _, err := r.q.Exec(ctx, query, gameID, winningBidIDs); err != nil {
		return fmt.Errorf("failed to set winning bids for game %d: %w", gameID, err)
	}

	return nil
}

// ListWinningByUser returns the bids a user is currently winning
func (r *BidRepository) ListWinningByUser(ctx context.Context, userID int64) ([]*models.UserWinningBid, error) {
	query := `
		SELECT b.id, g.id, g.title, e.name, b.amount::text, e.ends_at
		FROM bids b
		JOIN games g ON g.id = b.game_id
		JOIN events e ON e.id = g.event_id
		WHERE b.user_id = $1 AND b.is_winning
		ORDER BY e.ends_at ASC, g.title ASC, g.id ASC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list winning bids for user %d: %w", userID, err)
	}
	defer rows.Close()

	result := make([]*models.UserWinningBid, 0)
	for rows.Next() {
		var item models.UserWinningBid
		var amount string
		if err := rows.Scan(&item.BidID, &item.GameID, &item.GameTitle, &item.EventName, &amount, &item.EndsAt); err != nil {
			return nil, fmt.Errorf("failed to scan winning bid: %w", err)
		}
		if item.Amount, err = parseMoney("amount", amount); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating winning bids: %w", err)
	}

	return result, nil
}

// GetPendingWinnerNotifications returns winning, unnotified bids of auctions
// that ended at or before endedBy
func (r *BidRepository) GetPendingWinnerNotifications(ctx context.Context, endedBy time.Time, requireActiveEvent bool) ([]*models.PendingWinnerNotification, error) {
	query := `
		SELECT b.id, g.id, g.title, e.id, e.name, u.id, u.username, u.discord_id, b.amount::text
		FROM bids b
		JOIN games g ON g.id = b.game_id
		JOIN events e ON e.id = g.event_id
		JOIN users u ON u.id = b.user_id
		WHERE b.is_winning
		  AND b.notified_at IS NULL
		  AND e.ends_at <= $1
		  AND u.discord_id IS NOT NULL
		  AND (NOT $2::boolean OR e.is_active)
		ORDER BY u.discord_id ASC, lower(g.title) ASC, g.id ASC
	`

	rows, err := r.q.Query(ctx, query, endedBy, requireActiveEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending winner notifications: %w", err)
	}
	defer rows.Close()

	var pending []*models.PendingWinnerNotification
	for rows.Next() {
		var item models.PendingWinnerNotification
		var amount string
		if err := rows.Scan(
			&item.BidID,
			&item.GameID,
			&item.GameTitle,
			&item.EventID,
			&item.EventName,
			&item.UserID,
			&item.Username,
			&item.RecipientID,
			&amount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pending notification: %w", err)
		}
		if item.Amount, err = parseMoney("amount", amount); err != nil {
			return nil, err
		}
		pending = append(pending, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending notifications: %w", err)
	}

	return pending, nil
}

// MarkNotified stamps notified_at on bids that have not been stamped yet
func (r *BidRepository) MarkNotified(ctx context.Context, bidIDs []int64, notifiedAt time.Time) (int64, error) {
	if len(bidIDs) == 0 {
		return 0, nil
	}

	query := `
		UPDATE bids
		SET notified_at = $2
		WHERE id = ANY($1::bigint[]) AND notified_at IS NULL
	`

	result, err := r.q.Exec(ctx, query, bidIDs, notifiedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to mark %d bids notified: %w", len(bidIDs), err)
	}

	return result.RowsAffected(), nil
}
