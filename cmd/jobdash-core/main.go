package main

// @title           Job Dashboard Integrations API
// @version         1.0
// @description     Credential lifecycle for the job dashboard's Google Calendar and Telegram integrations.

// @contact.name   Job Dashboard
// @contact.url    https://github.com/Redtoridefire/Job-Dashboard/issues

// @host      localhost:8080
// @BasePath  /api
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/auth"
	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/crypto"
	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/google"
	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/memory"
	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/metrics"
	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/postgres"
	redisadapter "github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/redis"
	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/sqlite"
	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/telegram"
	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driving/http"
	"github.com/Redtoridefire/Job-Dashboard/internal/config"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/services"
)

var version = "dev"

// stateCleanupInterval is how often spent state nonces are purged from SQL registries.
const stateCleanupInterval = 10 * time.Minute

// stateCleaner is implemented by registries that need explicit expiry.
type stateCleaner interface {
	Cleanup(ctx context.Context, now time.Time) (int64, error)
}

func main() {
	// Run mode: "api" (default) serves HTTP, "migrate" applies the schema and exits
	mode := "api"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	if mode != "api" && mode != "migrate" {
		log.Fatalf("Unknown mode: %s (use: api or migrate)", mode)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("jobdash-core %s starting in %s mode", version, mode)

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Initialize Integration Store =====
	var (
		store    driven.IntegrationStore
		dbPinger http.Pinger
		sqlState driven.ConsumedStateStore
	)
	switch cfg.Store {
	case config.StorePostgres:
		log.Println("Connecting to PostgreSQL...")
		db, err := postgres.Connect(ctx, postgres.Config{
			URL:             cfg.DatabaseURL,
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.DB.ConnMaxIdleTime,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		log.Println("PostgreSQL connected and schema initialized")

		store = postgres.NewIntegrationStore(db)
		dbPinger = db
		sqlState = postgres.NewConsumedStateStore(db.DB)

	case config.StoreSQLite:
		log.Println("Opening SQLite database...")
		db, err := sqlite.Open(ctx, cfg.SQLiteDSN)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		log.Println("SQLite opened and migrations applied")

		store = sqlite.NewIntegrationStore(db)
		dbPinger = db
		sqlState = sqlite.NewConsumedStateStore(db)
	}

	if mode == "migrate" {
		log.Println("Schema is up to date")
		return
	}

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		log.Println("Connecting to Redis...")
		redisClient, err = redisadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Secret Codec =====
	codec, err := crypto.NewCodec(cfg.EncryptionSecret)
	if err != nil {
		log.Fatalf("Failed to initialize secret codec: %v", err)
	}

	// ===== Channel verification limiter (Redis if available, otherwise in-process) =====
	var (
		limiter     driven.RateLimiter
		redisPinger http.Pinger
	)
	if redisClient != nil {
		redisLimiter := redisadapter.NewRateLimiter(redisClient, cfg.ChannelVerifyMaxAttempts, cfg.ChannelVerifyWindow)
		limiter = redisLimiter
		redisPinger = redisLimiter
		log.Println("Using Redis rate limiter")
	} else {
		limiter = memory.NewRateLimiter(cfg.ChannelVerifyMaxAttempts, cfg.ChannelVerifyWindow)
		log.Println("Using in-process rate limiter (single instance only)")
	}

	// ===== Consumed state registry (optional single-use state tokens) =====
	var consumed driven.ConsumedStateStore
	if cfg.OAuthStateSingleUse {
		switch {
		case redisClient != nil:
			consumed = redisadapter.NewConsumedStateStore(redisClient)
			log.Println("Using Redis consumed-state registry")
		case sqlState != nil:
			consumed = sqlState
			log.Printf("Using %s consumed-state registry", cfg.Store)
			if cleaner, ok := sqlState.(stateCleaner); ok {
				go runStateCleanup(ctx, cleaner, logger)
			}
		default:
			consumed = memory.NewConsumedStateStore()
			log.Println("Using in-process consumed-state registry")
		}
	}

	// ===== Metrics =====
	var (
		recorder       driven.Recorder = driven.NopRecorder{}
		metricsHandler nethttp.Handler
	)
	if cfg.MetricsEnabled {
		promRecorder := metrics.NewRecorder()
		recorder = promRecorder
		metricsHandler = promRecorder.Handler()
	}

	// ===== Providers (optional per integration) =====
	providerClient := &nethttp.Client{Timeout: cfg.HTTPClientTimeout}

	var (
		oauthProvider driven.OAuthProvider
		calendarAPI   driven.CalendarAPI
		messenger     driven.Messenger
	)
	if cfg.GoogleEnabled() {
		oauthProvider = google.NewOAuthProvider(google.OAuthConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			HTTPClient:   providerClient,
		})
		calendarAPI = google.NewCalendarClient("", providerClient)
		log.Println("Google Calendar integration enabled")
	} else {
		log.Println("Google Calendar integration disabled (GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set)")
	}
	if cfg.TelegramEnabled() {
		messenger = telegram.NewClient(cfg.Telegram.BotToken, "",
			telegram.WithHTTPClient(providerClient),
			telegram.WithSendRate(cfg.Telegram.SendRate),
		)
		log.Println("Telegram integration enabled")
	} else {
		log.Println("Telegram integration disabled (TELEGRAM_BOT_TOKEN not set)")
	}

	// ===== Core services =====
	states := services.NewStateTokens(services.StateTokensConfig{
		Codec:    codec,
		Consumed: consumed,
		Logger:   logger,
	})

	tokenService := services.NewAccessTokenService(services.AccessTokenServiceConfig{
		Provider: oauthProvider,
		Store:    store,
		Codec:    codec,
		Recorder: recorder,
		Logger:   logger,
	})

	svcs := http.Services{
		OAuth: services.NewCalendarOAuthService(services.CalendarOAuthServiceConfig{
			Provider: oauthProvider,
			Store:    store,
			Codec:    codec,
			States:   states,
			Recorder: recorder,
			Logger:   logger,
		}),
		Channel: services.NewChannelService(services.ChannelServiceConfig{
			Messenger: messenger,
			Store:     store,
			Limiter:   limiter,
			Codec:     codec,
			Recorder:  recorder,
			Logger:    logger,
		}),
		Integrations: services.NewIntegrationService(services.IntegrationServiceConfig{
			Store: store,
			Codec: codec,
			Available: map[domain.Provider]bool{
				domain.ProviderGoogleCalendar: cfg.GoogleEnabled(),
				domain.ProviderTelegram:       cfg.TelegramEnabled(),
			},
			Logger: logger,
		}),
		Calendar: services.NewCalendarService(services.CalendarServiceConfig{
			Tokens: tokenService,
			API:    calendarAPI,
			Store:  store,
			Codec:  codec,
			Logger: logger,
		}),
		Notifications: services.NewNotificationService(services.NotificationServiceConfig{
			Messenger: messenger,
			Store:     store,
			Codec:     codec,
			Recorder:  recorder,
			Logger:    logger,
		}),
	}

	// ===== HTTP server =====
	serverCfg := http.DefaultConfig()
	serverCfg.Port = cfg.Port
	serverCfg.Version = version
	serverCfg.AppURL = cfg.AppURL
	serverCfg.CORSAllowedOrigins = cfg.CORSAllowedOrigins

	server := http.NewServer(
		serverCfg,
		auth.NewVerifier(cfg.AuthJWTSecret),
		svcs,
		dbPinger,
		redisPinger,
		metricsHandler,
		logger,
	)

	log.Printf("API server starting on :%d", cfg.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// newLogger builds the process logger from LOG_FORMAT and LOG_LEVEL
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == config.LogFormatText {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// runStateCleanup purges expired nonces until ctx is cancelled
func runStateCleanup(ctx context.Context, cleaner stateCleaner, logger *slog.Logger) {
	ticker := time.NewTicker(stateCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := cleaner.Cleanup(ctx, time.Now())
			if err != nil {
				logger.Warn("state cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.Debug("state cleanup", "removed", removed)
			}
		}
	}
}
