package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"auctioneer/models"
)

var baseTime = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testGame(seats int, startingPrice, increment string) *models.Game {
	return &models.Game{
		ID:              1,
		EventID:         1,
		Title:           "Gloomhaven",
		TotalSeats:      seats,
		StartingPrice:   amount(startingPrice),
		MinBidIncrement: amount(increment),
	}
}

func openEvent() *models.Event {
	return &models.Event{
		ID:       1,
		Name:     "Charity Con",
		StartsAt: baseTime.Add(-24 * time.Hour),
		EndsAt:   baseTime.Add(24 * time.Hour),
		IsActive: true,
	}
}

func bidAt(id int64, value string, offset time.Duration) *models.Bid {
	return &models.Bid{
		ID:        id,
		GameID:    1,
		UserID:    100 + id,
		Amount:    amount(value),
		CreatedAt: baseTime.Add(offset),
	}
}
