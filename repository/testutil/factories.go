package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auctioneer/database"
	"auctioneer/models"
)

// CreateTestUser inserts a user, linking discordID when it is non-zero
func CreateTestUser(t *testing.T, db *database.DB, username string, discordID int64) *models.User {
	t.Helper()

	var linked *int64
	if discordID != 0 {
		linked = &discordID
	}

	user := &models.User{Username: username, DiscordID: linked, IsVerified: linked != nil}
	err := db.QueryRow(context.Background(), `
		INSERT INTO users (username, discord_id, is_verified)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, username, linked, user.IsVerified).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	require.NoError(t, err)
	return user
}

// CreateTestEvent inserts an active event whose auction ends at endsAt
func CreateTestEvent(t *testing.T, db *database.DB, name string, endsAt time.Time) *models.Event {
	t.Helper()

	event := &models.Event{
		Name:     name,
		StartsAt: endsAt.Add(-72 * time.Hour),
		EndsAt:   endsAt,
		IsActive: true,
	}
	err := db.QueryRow(context.Background(), `
		INSERT INTO events (name, starts_at, ends_at, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, event.Name, event.StartsAt, event.EndsAt, event.IsActive).Scan(&event.ID, &event.CreatedAt)
	require.NoError(t, err)
	return event
}

// CreateTestGame inserts a game into an event
func CreateTestGame(t *testing.T, db *database.DB, eventID int64, title string, seats int, startingPrice, increment string) *models.Game {
	t.Helper()

	game := &models.Game{
		EventID:         eventID,
		Title:           title,
		TotalSeats:      seats,
		StartingPrice:   decimal.RequireFromString(startingPrice),
		MinBidIncrement: decimal.RequireFromString(increment),
	}
	err := db.QueryRow(context.Background(), `
		INSERT INTO games (event_id, title, total_seats, starting_price, min_bid_increment)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric)
		RETURNING id, created_at
	`, eventID, title, seats, startingPrice, increment).Scan(&game.ID, &game.CreatedAt)
	require.NoError(t, err)
	return game
}

// SetEventEnd moves an event's auction end time
func SetEventEnd(t *testing.T, db *database.DB, eventID int64, endsAt time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		UPDATE events SET starts_at = $2, ends_at = $3 WHERE id = $1
	`, eventID, endsAt.Add(-72*time.Hour), endsAt)
	require.NoError(t, err)
}
