package server

import (
	"encoding/json"
	"time"

	"auctioneer/auction"
	"auctioneer/events"
	"auctioneer/models"
)

// Request DTOs

// PlaceBidRequest accepts the amount as a JSON number or a decimal string
type PlaceBidRequest struct {
	Amount json.Number `json:"amount" binding:"required"`
}

type CreateEventRequest struct {
	Name     string    `json:"name" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

type CreateGameRequest struct {
	Title           string      `json:"title" binding:"required"`
	Description     string      `json:"description"`
	TotalSeats      int         `json:"total_seats" binding:"required,gte=1"`
	StartingPrice   json.Number `json:"starting_price" binding:"required"`
	MinBidIncrement json.Number `json:"min_bid_increment" binding:"required"`
}

// Response DTOs

type EventResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	IsActive bool   `json:"is_active"`
}

type GameResponse struct {
	ID              int64  `json:"id"`
	EventID         int64  `json:"event_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	TotalSeats      int    `json:"total_seats"`
	StartingPrice   string `json:"starting_price"`
	MinBidIncrement string `json:"min_bid_increment"`
}

type GameDetailResponse struct {
	GameResponse
	Event                EventResponse `json:"event"`
	MinimumAcceptableBid string        `json:"minimum_acceptable_bid"`
	BidCount             int           `json:"bid_count"`
}

type MinimumBidResponse struct {
	GameID               int64  `json:"game_id"`
	MinimumAcceptableBid string `json:"minimum_acceptable_bid"`
}

type BidResponse struct {
	BidID                int64  `json:"bid_id"`
	GameID               int64  `json:"game_id"`
	Amount               string `json:"amount"`
	IsWinning            bool   `json:"is_winning"`
	MinimumAcceptableBid string `json:"minimum_acceptable_bid"`
	CreatedAt            string `json:"created_at"`
}

type RejectionResponse struct {
	Reason               string `json:"reason"`
	Retryable            bool   `json:"retryable"`
	MinimumAcceptableBid string `json:"minimum_acceptable_bid,omitempty"`
}

type WinningBidResponse struct {
	Rank             int    `json:"rank"`
	Amount           string `json:"amount"`
	Bidder           string `json:"bidder"`
	IsRequestingUser bool   `json:"is_requesting_user"`
	CreatedAt        string `json:"created_at"`
}

// LiveBidResponse is pushed to live listeners. It carries no bidder identity.
type LiveBidResponse struct {
	GameID               int64  `json:"game_id"`
	Amount               string `json:"amount"`
	IsWinning            bool   `json:"is_winning"`
	MinimumAcceptableBid string `json:"minimum_acceptable_bid"`
	CreatedAt            string `json:"created_at"`
}

type SweepResponse struct {
	Notified int `json:"notified"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func newEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:       e.ID,
		Name:     e.Name,
		StartsAt: formatTime(e.StartsAt),
		EndsAt:   formatTime(e.EndsAt),
		IsActive: e.IsActive,
	}
}

func newGameResponse(g *models.Game) GameResponse {
	return GameResponse{
		ID:              g.ID,
		EventID:         g.EventID,
		Title:           g.Title,
		Description:     g.Description,
		TotalSeats:      g.TotalSeats,
		StartingPrice:   auction.FormatAmount(g.StartingPrice),
		MinBidIncrement: auction.FormatAmount(g.MinBidIncrement),
	}
}

func newGameDetailResponse(d *models.GameDetail) GameDetailResponse {
	return GameDetailResponse{
		GameResponse:         newGameResponse(d.Game),
		Event:                newEventResponse(d.Event),
		MinimumAcceptableBid: auction.FormatAmount(d.MinimumAcceptableBid),
		BidCount:             d.BidCount,
	}
}

func newBidResponse(result *models.BidResult) BidResponse {
	return BidResponse{
		BidID:                result.Bid.ID,
		GameID:               result.Bid.GameID,
		Amount:               auction.FormatAmount(result.Bid.Amount),
		IsWinning:            result.Bid.IsWinning,
		MinimumAcceptableBid: auction.FormatAmount(result.MinimumAcceptableBid),
		CreatedAt:            formatTime(result.Bid.CreatedAt),
	}
}

func newRejectionResponse(result *models.BidResult) RejectionResponse {
	resp := RejectionResponse{
		Reason:    string(result.Rejection.Reason),
		Retryable: result.Rejection.Retryable(),
	}
	if !result.MinimumAcceptableBid.IsZero() {
		resp.MinimumAcceptableBid = auction.FormatAmount(result.MinimumAcceptableBid)
	}
	return resp
}

func newWinningBidResponse(v *models.WinningBidView) WinningBidResponse {
	return WinningBidResponse{
		Rank:             v.Rank,
		Amount:           auction.FormatAmount(v.Amount),
		Bidder:           v.BidderDisplayName,
		IsRequestingUser: v.IsRequestingUser,
		CreatedAt:        formatTime(v.CreatedAt),
	}
}

func newLiveBidResponse(e events.BidPlacedEvent) LiveBidResponse {
	return LiveBidResponse{
		GameID:               e.GameID,
		Amount:               auction.FormatAmount(e.Amount),
		IsWinning:            e.IsWinning,
		MinimumAcceptableBid: auction.FormatAmount(e.MinimumAcceptableBid),
		CreatedAt:            formatTime(e.CreatedAt),
	}
}
