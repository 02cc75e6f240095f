package server

import (
	"github.com/gin-gonic/gin"

	"auctioneer/service"
)

// Dependencies are the collaborators the HTTP surface is built on
type Dependencies struct {
	Bidding       service.BiddingService
	Catalog       service.CatalogService
	Notifications service.NotificationService
	Auth          Authenticator
	Bus           GameSubscriber
	DB            Pinger
	Broker        ConnectionChecker // nil when NATS is not configured
	IsAdminKey    func(string) bool
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	bidHandler := NewBidHandler(deps.Bidding)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	adminHandler := NewAdminHandler(deps.Notifications, deps.DB, deps.Broker)
	liveHandler := NewLiveHandler(deps.Catalog, deps.Bus)

	router.GET("/healthz", adminHandler.HealthHandler)

	eventsGroup := router.Group("/events")
	{
		eventsGroup.GET("", catalogHandler.ListEventsHandler)
		eventsGroup.GET("/:event_id/games", catalogHandler.ListGamesHandler)
	}

	games := router.Group("/games")
	games.Use(LoadUser(deps.Auth))
	{
		games.GET("/:game_id", catalogHandler.GetGameHandler)
		games.GET("/:game_id/minimum-bid", bidHandler.GetMinimumBidHandler)
		games.GET("/:game_id/bids", bidHandler.GetWinningBidsHandler)
		games.POST("/:game_id/bids", RequireUser, bidHandler.PlaceBidHandler)
		games.GET("/:game_id/live", liveHandler.StreamGameHandler)
	}

	admin := router.Group("/admin")
	admin.Use(RequireAdminKey(deps.IsAdminKey))
	{
		admin.POST("/events", catalogHandler.CreateEventHandler)
		admin.POST("/events/:event_id/games", catalogHandler.CreateGameHandler)
		admin.POST("/sweep", adminHandler.SweepHandler)
	}

	return router
}
