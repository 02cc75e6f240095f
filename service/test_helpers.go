package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"auctioneer/models"
)

// Test IDs
const (
	TestGameID   = 10
	TestEventID  = 20
	TestAliceID  = 101
	TestBobID    = 102
	TestCarolID  = 103
	TestDiscord1 = 900001
	TestDiscord2 = 900002
)

var testNow = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

// fixedClock always returns the same instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestMocks holds all mock collaborators for easy access
type TestMocks struct {
	Factory   *MockUnitOfWorkFactory
	UoW       *MockUnitOfWork
	EventRepo *MockEventRepository
	GameRepo  *MockGameRepository
	BidRepo   *MockBidRepository
	UserRepo  *MockUserRepository
	Publisher *MockEventPublisher
}

// NewTestMocks creates a new set of mocks with the unit of work wired up
func NewTestMocks() *TestMocks {
	m := &TestMocks{
		Factory:   new(MockUnitOfWorkFactory),
		UoW:       new(MockUnitOfWork),
		EventRepo: new(MockEventRepository),
		GameRepo:  new(MockGameRepository),
		BidRepo:   new(MockBidRepository),
		UserRepo:  new(MockUserRepository),
		Publisher: new(MockEventPublisher),
	}
	m.UoW.SetRepositories(m.EventRepo, m.GameRepo, m.BidRepo, m.UserRepo, m.Publisher)
	m.Factory.On("Create").Return(m.UoW)
	return m
}

// AssertAllExpectations asserts all mock expectations
func (m *TestMocks) AssertAllExpectations(t *testing.T) {
	m.Factory.AssertExpectations(t)
	m.UoW.AssertExpectations(t)
	m.EventRepo.AssertExpectations(t)
	m.GameRepo.AssertExpectations(t)
	m.BidRepo.AssertExpectations(t)
	m.UserRepo.AssertExpectations(t)
	m.Publisher.AssertExpectations(t)
}

func testGame(seats int, startingPrice, increment string) *models.Game {
	return &models.Game{
		ID:              TestGameID,
		EventID:         TestEventID,
		Title:           "Gloomhaven",
		TotalSeats:      seats,
		StartingPrice:   money(startingPrice),
		MinBidIncrement: money(increment),
	}
}

func testEvent(endsAt time.Time) *models.Event {
	return &models.Event{
		ID:       TestEventID,
		Name:     "Charity Con",
		StartsAt: endsAt.Add(-72 * time.Hour),
		EndsAt:   endsAt,
		IsActive: true,
	}
}

func testBid(id, userID int64, amount string, createdAt time.Time) *models.Bid {
	return &models.Bid{
		ID:        id,
		GameID:    TestGameID,
		UserID:    userID,
		Amount:    money(amount),
		CreatedAt: createdAt,
	}
}
