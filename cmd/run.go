package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"auctioneer/application"
	"auctioneer/bot"
	"auctioneer/config"
	"auctioneer/database"
	"auctioneer/events"
	"auctioneer/infrastructure"
	"auctioneer/infrastructure/observability"
	"auctioneer/logging"
	"auctioneer/models"
	"auctioneer/repository"
	"auctioneer/server"
	"auctioneer/service"
)

const shutdownTimeout = 10 * time.Second

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	log.Info("Starting auctioneer...")

	db, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Initialize metrics
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// Initialize event bus
	eventBus := events.NewBus()

	// Forward committed bids to NATS when configured
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		log.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		if err := natsClient.EnsureAuctionEventStream(); err != nil {
			natsClient.Close()
			return fmt.Errorf("failed to ensure auction event stream: %w", err)
		}
		infrastructure.NewBidEventBridge(natsClient, metrics).Register(eventBus)
		log.Info("Bid events are forwarded to NATS")
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	clock := service.SystemClock{}
	biddingService := service.NewBiddingService(uowFactory, clock, metrics)
	catalogService := service.NewCatalogService(uowFactory)
	userService := service.NewUserService(uowFactory, clock)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
	}, biddingService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	notificationService := service.NewNotificationService(
		uowFactory,
		discordBot.Messenger(),
		clock,
		metrics,
		cfg.SweepRequireActiveEvent,
	)
	stopWorker := application.NewNotificationWorker(notificationService, cfg.SweepInterval).Start(ctx)

	deps := server.Dependencies{
		Bidding:       biddingService,
		Catalog:       catalogService,
		Notifications: notificationService,
		Auth:          server.NewSessionAuthenticator(userService, cfg.SessionCookieName),
		Bus:           eventBus,
		DB:            db,
		IsAdminKey:    cfg.IsAdminKey,
	}
	if natsClient != nil {
		deps.Broker = natsClient
	}
	router := server.SetupRouter(deps)

	// Live streams end with ctx through BaseContext, so no write timeout
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	log.WithField("environment", cfg.Environment).Info("Auctioneer is running")

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	// Cleanup resources
	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down HTTP server")
	}

	stopWorker()

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}

	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics provider")
	}

	log.Info("Shutdown completed")
	return runErr
}

// Sweep runs a single winner notification sweep and returns the number of
// recipients notified. Messages go through Discord's REST API, so the bot's
// gateway connection is not needed.
func Sweep(ctx context.Context) (int, error) {
	cfg := config.Get()
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return 0, err
	}

	db, err := connect(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	messenger, err := bot.NewRESTMessenger(cfg.DiscordToken)
	if err != nil {
		return 0, err
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, events.NewBus())
	notificationService := service.NewNotificationService(
		uowFactory,
		messenger,
		service.SystemClock{},
		nil,
		cfg.SweepRequireActiveEvent,
	)
	return notificationService.ProcessEndedAuctions(ctx)
}

// CreateSession issues a session token for a Discord identity, creating the
// user on first use
func CreateSession(ctx context.Context, discordID int64, username string) (*models.Session, error) {
	cfg := config.Get()
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}

	db, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db, events.NewBus())
	userService := service.NewUserService(uowFactory, service.SystemClock{})
	return userService.CreateSession(ctx, discordID, username, cfg.SessionTTL)
}

func connect(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	databaseURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")
	return db, nil
}
