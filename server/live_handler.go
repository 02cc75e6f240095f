package server

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auctioneer/events"
	"auctioneer/service"
)

const (
	liveBufferSize    = 16
	liveHeartbeatTime = 25 * time.Second
)

// GameSubscriber delivers events scoped to one game
type GameSubscriber interface {
	SubscribeGame(gameID int64, handler events.Handler) events.Subscription
	Unsubscribe(sub events.Subscription)
}

type LiveHandler struct {
	catalog   service.CatalogService
	bus       GameSubscriber
	heartbeat time.Duration
}

func NewLiveHandler(catalog service.CatalogService, bus GameSubscriber) *LiveHandler {
	return &LiveHandler{
		catalog:   catalog,
		bus:       bus,
		heartbeat: liveHeartbeatTime,
	}
}

// StreamGameHandler handles GET /games/:game_id/live as a server-sent event
// stream of accepted bids
func (h *LiveHandler) StreamGameHandler(c *gin.Context) {
	gameID, ok := idParam(c, "game_id")
	if !ok {
		return
	}

	if _, err := h.catalog.GetGame(c.Request.Context(), gameID); err != nil {
		handleServiceError(c, "StreamGameHandler", err, log.Fields{"game_id": gameID})
		return
	}

	updates := make(chan events.BidPlacedEvent, liveBufferSize)
	sub := h.bus.SubscribeGame(gameID, func(ctx context.Context, event events.Event) {
		bid, ok := event.(events.BidPlacedEvent)
		if !ok {
			return
		}
		select {
		case updates <- bid:
		default:
			// a slow listener misses updates rather than blocking the bus
			log.WithField("game_id", gameID).Warn("Live listener buffer full, dropping update")
		}
	})
	defer h.bus.Unsubscribe(sub)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	log.WithField("game_id", gameID).Debug("Live listener connected")

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case bid := <-updates:
			c.SSEvent("bid", newLiveBidResponse(bid))
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", gin.H{"time": formatTime(time.Now())})
			return true
		}
	})

	log.WithField("game_id", gameID).Debug("Live listener disconnected")
}
