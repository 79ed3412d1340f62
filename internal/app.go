package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"listing-service/internal/adapters/cache"
	"listing-service/internal/adapters/favorites"
	"listing-service/internal/adapters/formspark"
	logger_adapter "listing-service/internal/adapters/logger"
	postgres_adapter "listing-service/internal/adapters/postgres"
	"listing-service/internal/adapters/properfy"
	rabbitmq_adapter "listing-service/internal/adapters/rabbitmq"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/adapters/viacep"
	"listing-service/internal/adapters/whatsapp"
	"listing-service/internal/configs"
	"listing-service/internal/constants"
	"listing-service/internal/contracts"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	fluentlogger "listing-service/pkg/fluent_logger"
	"listing-service/pkg/postgres"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	favoritesTTL    = 180 * 24 * time.Hour
	memoryCacheSize = 2000
	shutdownTimeout = 15 * time.Second
)

// App – структура приложения
type App struct {
	config       *configs.Config
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	// закрываются в обратном порядке
	closers []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

// NewApp - composition root: здесь создаются и связываются все зависимости
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	// --- 1. ЛОГГЕРЫ ---
	baseLogger, fluentClient, err := newLogger(appConfig)
	if err != nil {
		return nil, err
	}
	app.fluentClient = fluentClient
	app.logger = baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger := app.logger

	// при ошибке дальше освобождаем то, что уже успели открыть
	fail := func(msg string, err error) (*App, error) {
		appLogger.Error(msg, err, nil)
		app.closeAll()
		return nil, fmt.Errorf("%s: %w", msg, err)
	}

	// --- 2. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	properfyClient, err := properfy.NewClient(properfy.Config{
		BaseURL:  appConfig.Properfy.BaseURL,
		Email:    appConfig.Properfy.Email,
		Password: appConfig.Properfy.Password,
		Timeout:  appConfig.Properfy.Timeout,
		TokenTTL: appConfig.Properfy.TokenTTL,
	})
	if err != nil {
		return fail("Failed to create Properfy client", err)
	}
	appLogger.Info("Properfy client initialized.", port.Fields{"base_url": properfyClient.BaseURL()})

	var redisClient *redis.Client
	if appConfig.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			// кеш - оптимизация, без Redis сервис продолжает работать на памяти
			appLogger.Warn("Redis is unreachable, falling back to in-memory cache", port.Fields{"error": err.Error(), "addr": appConfig.Redis.Addr})
			redisClient.Close()
			redisClient = nil
		} else {
			app.closers = append(app.closers, namedCloser{"redis client", redisClient.Close})
			appLogger.Info("Successfully connected to Redis!", port.Fields{"addr": appConfig.Redis.Addr})
		}
	}

	var responseCache port.ResponseCachePort = cache.NewMemoryResponseCache(memoryCacheSize)
	if redisClient != nil {
		responseCache = cache.NewRedisResponseCache(redisClient, appConfig.Redis.KeyPrefix)
	}

	var dbPool *pgxpool.Pool
	if appConfig.Postgres.DatabaseURL != "" {
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{
			DatabaseURL: appConfig.Postgres.DatabaseURL,
			MaxConns:    int32(appConfig.Postgres.MaxConns),
		})
		if err != nil {
			return fail("Failed to connect to PostgreSQL", err)
		}
		app.closers = append(app.closers, namedCloser{"postgres pool", func() error { dbPool.Close(); return nil }})
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		if err := postgres_adapter.EnsureSchema(context.Background(), dbPool); err != nil {
			return fail("Failed to apply database schema", err)
		}
	}

	var favoritesStore port.FavoritesRepositoryPort
	favoritesBackend := "memory"
	switch {
	case dbPool != nil:
		favoritesStore, err = postgres_adapter.NewPostgresFavoritesRepository(dbPool)
		if err != nil {
			return fail("Failed to create postgres favorites repository", err)
		}
		favoritesBackend = "postgres"
	case redisClient != nil:
		favoritesStore = favorites.NewRedisFavoritesStore(redisClient, appConfig.Redis.KeyPrefix, favoritesTTL)
		favoritesBackend = "redis"
	default:
		favoritesStore = favorites.NewMemoryFavoritesStore()
	}
	appLogger.Info("Favorites store initialized.", port.Fields{"backend": favoritesBackend})

	var leadSinks []port.LeadSinkPort
	if dbPool != nil {
		leadsRepo, err := postgres_adapter.NewPostgresLeadsRepository(dbPool)
		if err != nil {
			return fail("Failed to create postgres leads repository", err)
		}
		leadSinks = append(leadSinks, leadsRepo)
	}

	if appConfig.RabbitMQ.URL != "" {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err := rabbitmq_common.NewManager(appConfig.RabbitMQ.URL, connManagerBridge)
		if err != nil {
			return fail("Failed to create connection manager", err)
		}
		app.closers = append(app.closers, namedCloser{"rabbitmq connection", connManager.Close})
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		eventProducer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             appConfig.RabbitMQ.ExchangeName,
			ExchangeType:             constants.LeadsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}, connManager)
		if err != nil {
			return fail("Failed to create event producer", err)
		}
		app.closers = append(app.closers, namedCloser{"event producer", eventProducer.Close})

		leadEvents, err := rabbitmq_adapter.NewLeadEventsAdapter(eventProducer)
		if err != nil {
			return fail("Failed to create lead events adapter", err)
		}
		leadSinks = append(leadSinks, leadEvents)
		appLogger.Info("RabbitMQ Event Producer initialized.", port.Fields{"exchange": appConfig.RabbitMQ.ExchangeName})
	}

	if len(appConfig.Formspark.FormIDs) > 0 {
		formsparkClient, err := formspark.NewClient(appConfig.Formspark.BaseURL, appConfig.Formspark.FormIDs, 10*time.Second)
		if err != nil {
			return fail("Failed to create Formspark client", err)
		}
		leadSinks = append(leadSinks, formsparkClient)
	}

	var chatLinks port.ChatLinkPort
	if appConfig.WhatsApp.Number != "" {
		chatLinks = whatsapp.NewLinkBuilder(appConfig.WhatsApp.Number)
	}

	sinkNames := make([]string, len(leadSinks))
	for i, s := range leadSinks {
		sinkNames[i] = s.Name()
	}
	appLogger.Info("All outgoing adapters initialized.", port.Fields{
		"cache_backend": responseCache.Backend(),
		"lead_sinks":    sinkNames,
		"whatsapp":      chatLinks != nil,
	})

	// --- 3. USE CASES ---
	sampler := usecase.NewListingSampler(properfyClient, appConfig.Properfy.SampleSize)
	getLocationsUseCase := usecase.NewGetLocationsUseCase(sampler)
	searchUseCase := usecase.NewSearchPropertiesUseCase(properfyClient, getLocationsUseCase, appConfig.Properfy.SampleSize, appConfig.Properfy.MaxConcurrency)
	getHighlightedUseCase := usecase.NewGetHighlightedUseCase(properfyClient)
	getExclusiveUseCase := usecase.NewGetExclusiveUseCase(properfyClient)
	getPropertyUseCase := usecase.NewGetPropertyUseCase(properfyClient)
	getPropertyByCodeUseCase := usecase.NewGetPropertyByCodeUseCase(properfyClient)
	getFilterOptionsUseCase := usecase.NewGetFilterOptionsUseCase(sampler)
	checkUpstreamUseCase := usecase.NewCheckUpstreamUseCase(properfyClient, properfyClient.BaseURL())

	listFavoritesUseCase := usecase.NewListFavoritesUseCase(favoritesStore)
	modifyFavoritesUseCase := usecase.NewModifyFavoritesUseCase(favoritesStore)
	getFavoritePropertiesUseCase := usecase.NewGetFavoritePropertiesUseCase(favoritesStore, properfyClient, appConfig.Properfy.MaxConcurrency)

	submitLeadUseCase := usecase.NewSubmitLeadUseCase(chatLinks, leadSinks...)
	lookupPostalCodeUseCase := usecase.NewLookupPostalCodeUseCase(viacep.NewClient(appConfig.ViaCEP.BaseURL, appConfig.ViaCEP.Timeout))

	appLogger.Info("All use cases initialized.", nil)

	// --- 4. REST API ---
	handlers := rest.Handlers{
		Properties:  rest.NewPropertyHandler(searchUseCase, getHighlightedUseCase, getExclusiveUseCase, getPropertyUseCase, getPropertyByCodeUseCase),
		Catalog:     rest.NewCatalogHandler(getFilterOptionsUseCase, getLocationsUseCase),
		Favorites:   rest.NewFavoritesHandler(listFavoritesUseCase, modifyFavoritesUseCase, getFavoritePropertiesUseCase),
		Leads:       rest.NewLeadHandler(contracts.LeadRequestValidator{}, submitLeadUseCase),
		PostalCodes: rest.NewPostalCodeHandler(lookupPostalCodeUseCase),
		Admin: rest.NewAdminHandler(rest.DebugConfig{
			AppName:          appConfig.AppName,
			ProperfyBaseURL:  appConfig.Properfy.BaseURL,
			PageSize:         appConfig.Properfy.PageSize,
			SampleSize:       appConfig.Properfy.SampleSize,
			MaxConcurrency:   appConfig.Properfy.MaxConcurrency,
			ListingsTTL:      appConfig.Cache.ListingsTTL.String(),
			FilterOptionsTTL: appConfig.Cache.FilterOptionsTTL.String(),
			PostgresEnabled:  dbPool != nil,
			RabbitMQEnabled:  appConfig.RabbitMQ.URL != "",
			FormsparkEnabled: len(appConfig.Formspark.FormIDs) > 0,
			WhatsAppEnabled:  chatLinks != nil,
			FavoritesBackend: favoritesBackend,
		}, properfyClient, responseCache, checkUpstreamUseCase),
	}

	app.apiServer = rest.NewServer(rest.ServerConfig{
		Port:             appConfig.Port,
		AllowedOrigins:   appConfig.CORS.AllowedOrigins,
		AdminJWTSecret:   appConfig.Admin.JWTSecret,
		ListingsTTL:      appConfig.Cache.ListingsTTL,
		FilterOptionsTTL: appConfig.Cache.FilterOptionsTTL,
		PostalCodeTTL:    appConfig.Cache.PostalCodeTTL,
	}, handlers, responseCache, baseLogger)
	appLogger.Info("REST API server configured.", port.Fields{"admin_routes": appConfig.Admin.JWTSecret != ""})

	return app, nil
}

func newLogger(cfg *configs.Config) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.IsJSON,
		UseColor: !cfg.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, cfg.AppName, parseLogLevel(cfg.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": cfg.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}

// Run запускает HTTP-сервер и ждет сигнала на завершение
func (a *App) Run() error {
	defer a.closeAll()

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Port})

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			a.logger.Error("Error closing resource", err, port.Fields{"resource": c.name})
			continue
		}
		a.logger.Info("Resource closed", port.Fields{"resource": c.name})
	}
	a.closers = nil

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent уже может быть недоступен, пишем в stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
