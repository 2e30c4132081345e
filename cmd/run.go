package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cluesbot/application"
	"cluesbot/bot"
	"cluesbot/bot/features/leaderboard"
	"cluesbot/bot/features/streak"
	"cluesbot/config"
	"cluesbot/database"
	"cluesbot/events"
	"cluesbot/infrastructure"
	"cluesbot/infrastructure/observability"
	"cluesbot/models"
	"cluesbot/repository"
	"cluesbot/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	configureLogging(cfg)

	log.Println("Starting cluesbot...")

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Initialize record store
	log.Printf("Opening %s record store...", cfg.StoreBackend)
	store, closeStore, storeCheck, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("record store is not usable: %w", err)
	}
	log.Println("Record store ready")

	// Initialize event bus and its subscribers
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	metrics := observability.NewMetrics()
	metrics.Attach(eventBus)

	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		natsClient, err = connectNATS(ctx, cfg.NATSServers, eventBus)
		if err != nil {
			return err
		}
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.Printf("Error closing NATS client: %v", err)
			}
		}()
	}
	log.Println("Event bus initialized successfully")

	// Initialize services
	log.Println("Initializing services...")
	table, err := service.DifficultyTableByName(cfg.ScoringMultipliers)
	if err != nil {
		return fmt.Errorf("invalid scoring multipliers: %w", err)
	}
	scorer := service.NewScoringEngine(table)

	calendar, err := service.NewReportingCalendar(cfg.ReportingTimezone, service.SystemClock{})
	if err != nil {
		return err
	}

	ledger := service.NewSubmissionLedger(store, cfg.LedgerCacheSize, eventBus, service.SystemClock{})
	leaderboards := service.NewLeaderboardService(store)
	streaks := service.NewStreakService(store)

	var completer service.ChatCompleter
	if cfg.OpenAIAPIKey != "" {
		completer = infrastructure.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, "")
	} else {
		log.Println("OPENAI_API_KEY not set, commentary will use fixed lines")
	}
	commentary := service.NewCommentaryService(completer)

	handler := application.NewSubmissionHandler(scorer, ledger, leaderboards, streaks, commentary, calendar)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:          cfg.DiscordToken,
		GuildID:        cfg.GuildID,
		CluesChannelID: cfg.CluesChannelID,
	}
	discordBot, err := bot.New(
		botConfig,
		handler,
		leaderboard.NewFeature(leaderboards, calendar),
		streak.NewFeature(streaks, calendar),
		metrics,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Scheduled leaderboards
	if cfg.AnnounceChannelID != "" {
		poster := bot.NewChannelPoster(discordBot.Session(), cfg.AnnounceChannelID)
		worker := application.NewLeaderboardWorker(leaderboards, calendar, poster, eventBus)
		stopWorker, err := worker.Start(ctx, loc)
		if err != nil {
			discordBot.Close()
			return fmt.Errorf("failed to start leaderboard worker: %w", err)
		}
		defer stopWorker()
		log.Printf("Scheduled leaderboards will post to channel %s", cfg.AnnounceChannelID)
	} else {
		log.Println("ANNOUNCE_CHANNEL_ID not set, scheduled leaderboards disabled")
	}

	// Operational endpoints
	var httpServer *infrastructure.HTTPServer
	if cfg.MetricsAddr != "" {
		checks := map[string]infrastructure.HealthCheck{
			"discord": func(context.Context) error {
				if !discordBot.IsConnected() {
					return fmt.Errorf("gateway not ready")
				}
				return nil
			},
			"store": storeCheck,
		}
		if natsClient != nil {
			checks["nats"] = func(context.Context) error {
				if !natsClient.IsConnected() {
					return fmt.Errorf("not connected")
				}
				return nil
			}
		}
		httpServer = infrastructure.NewHTTPServer(cfg.MetricsAddr, infrastructure.NewRouter(metrics.Handler(), checks))
		httpServer.Start()
	}

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down HTTP server: %v", err)
		}
	}

	log.Println("Shutdown completed")
	return nil
}

// openStore builds the configured record store. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (service.RecordStore, func(), infrastructure.HealthCheck, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendWorkbook:
		store, err := repository.NewWorkbookStore(cfg.WorkbookPath, cfg.WorkbookSheet)
		if err != nil {
			return nil, nil, nil, err
		}
		check := func(ctx context.Context) error {
			_, err := store.All(ctx)
			return err
		}
		return store, func() {}, check, nil

	default:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, nil, nil, &models.ConfigError{
				Store:  config.StoreBackendPostgres,
				Detail: "DATABASE_URL is empty",
				Err:    models.ErrStoreNotConfigured,
			}
		}
		databaseURL := cfg.GetDatabaseURL()
		log.Println("Connecting to database...")
		db, err := database.NewConnection(ctx, databaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Database connection established successfully")

		migrator := func(context.Context) error {
			return database.RunMigrationsWithURL(databaseURL)
		}
		closeDB := func() {
			log.Println("Closing database connection...")
			db.Close()
		}
		return repository.NewSubmissionRepository(db, migrator), closeDB, db.Ping, nil
	}
}

func connectNATS(ctx context.Context, servers string, bus *events.Bus) (*infrastructure.NATSClient, error) {
	log.Println("Connecting to NATS...")
	client := infrastructure.NewNATSClient(servers)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureStream(mapper.GetAllSubjects()); err != nil {
		client.Close()
		return nil, err
	}

	infrastructure.NewNATSEventPublisher(client, mapper).Attach(bus)
	log.Println("Forwarding events to NATS")
	return client, nil
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
