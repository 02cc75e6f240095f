package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"auctioneer/database"
	"auctioneer/models"
)

// GameRepository implements the GameRepository interface
type GameRepository struct {
	q queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

func newGameRepositoryWithTx(tx queryable) *GameRepository {
	return &GameRepository{q: tx}
}

const gameColumns = `id, event_id, title, description, total_seats, starting_price::text, min_bid_increment::text, created_at`

// GetByID retrieves a game by ID
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	return r.get(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a game and takes a row lock on it
func (r *GameRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error) {
	return r.get(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1 FOR UPDATE`, id)
}

func (r *GameRepository) get(ctx context.Context, query string, id int64) (*models.Game, error) {
	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

// Create inserts a new game
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (event_id, title, description, total_seats, starting_price, min_bid_increment)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		game.EventID,
		game.Title,
		game.Description,
		game.TotalSeats,
		game.StartingPrice.String(),
		game.MinBidIncrement.String(),
	).Scan(&game.ID, &game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game for event %d: %w", game.EventID, err)
	}

	return nil
}

// ListByEvent returns the games of an event ordered by title
func (r *GameRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE event_id = $1 ORDER BY title ASC, id ASC`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

func scanGame(row pgx.Row) (*models.Game, error) {
	var game models.Game
	var startingPrice, increment string
	if err := row.Scan(
		&game.ID,
		&game.EventID,
		&game.Title,
		&game.Description,
		&game.TotalSeats,
		&startingPrice,
		&increment,
		&game.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if game.StartingPrice, err = parseMoney("starting_price", startingPrice); err != nil {
		return nil, err
	}
	if game.MinBidIncrement, err = parseMoney("min_bid_increment", increment); err != nil {
		return nil, err
	}
	return &game, nil
}
