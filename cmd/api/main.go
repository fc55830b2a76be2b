package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"hotelier/internal/api"
	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/export"
	"hotelier/internal/google"
	"hotelier/internal/logging"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/notify"
	"hotelier/internal/repository"
	"hotelier/internal/service"
	"hotelier/internal/token"
	"hotelier/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	if err := prepareDirectories(cfg); err != nil {
		logger.Error().Err(err).Msg("prepare directories")
		return err
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	cache := buildAvailabilityCache(redisClient, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewEventBus()
	subscribeNotifier(cfg, eventBus, &logger)

	workerLog := log.New(os.Stdout, "worker: ", log.LstdFlags)
	syncWorker := startSheetsWorker(ctx, cfg, db, redisClient, workerLog, &logger)

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())
	resolver := service.NewConflictResolver(db)

	authService := service.NewAuthService(db, tokens, &logger)
	reservationService := service.NewReservationService(db, eventBus, syncWorker, cache, cfg.Booking.MaxStayNights, &logger)
	availabilityService := service.NewAvailabilityService(db, resolver, cache, models.AvailabilityCacheTTL*time.Second, &logger)
	hotelService := service.NewHotelService(db, &logger)
	roomService := service.NewRoomService(db, cache, &logger)
	userService := service.NewUserService(db, &logger)
	exporter := export.NewExporter(db, cfg.Exports.Path, &logger)

	sweeper := worker.NewTokenSweeper(authService, cfg.Auth.SweepInterval(), workerLog)
	go sweeper.Start(ctx)

	if cfg.Backup.Enabled {
		backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backup.Start(ctx)
	}

	startMetrics(ctx, cfg, &logger)

	httpServer := api.NewHTTPServer(cfg.API, api.Deps{
		Auth:         authService,
		Reservations: reservationService,
		Availability: availabilityService,
		Hotels:       hotelService,
		Rooms:        roomService,
		Users:        userService,
		Exporter:     exporter,
	}, &logger)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	logger.Info().Int("http_port", cfg.API.Port).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config) error {
	dirs := []string{
		filepath.Dir(cfg.Database.Path),
		cfg.Exports.Path,
	}
	if cfg.Backup.Enabled {
		dirs = append(dirs, cfg.Backup.StoragePath)
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if !cfg.Redis.Enabled || cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

func buildAvailabilityCache(redisClient *redis.Client, logger *zerolog.Logger) domain.AvailabilityCache {
	memory := repository.NewMemoryAvailabilityCache()
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverAvailabilityCache(repository.NewRedisAvailabilityCache(redisClient), memory, logger)
}

func startSheetsWorker(ctx context.Context, cfg *config.Config, db *database.DB, redisClient *redis.Client, workerLog *log.Logger, logger *zerolog.Logger) domain.SyncWorker {
	if !cfg.Google.Enabled || cfg.Google.CredentialsFile == "" || cfg.Google.ReservationsSpreadsheetID == "" {
		return nil
	}

	sheetsService, err := google.NewSheetsService(cfg.Google.CredentialsFile, cfg.Google.ReservationsSpreadsheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}
	if err := sheetsService.TestConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("google sheets connection check failed, continuing without sheets")
		return nil
	}
	logger.Info().Msg("google sheets connected")

	retry := worker.RetryPolicy{
		MaxRetries:    5,
		InitialDelay:  2 * time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 2,
	}
	sheetsWorker := worker.NewSheetsWorker(db, sheetsService, redisClient, retry, workerLog)
	go sheetsWorker.Start(ctx)

	// Полная пересборка листа на старте: подхватывает изменения,
	// сделанные пока воркер не работал.
	if err := sheetsWorker.EnqueueFullSync(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to enqueue initial sheets sync")
	}
	return sheetsWorker
}

func subscribeNotifier(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken == "" || len(cfg.Telegram.ChatIDs) == 0 {
		return
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram bot init failed, continuing without notifications")
		return
	}
	bot.Debug = cfg.Telegram.Debug

	notify.NewNotifier(bot, cfg.Telegram.ChatIDs, logger).SubscribeAll(bus)
	logger.Info().Int("chats", len(cfg.Telegram.ChatIDs)).Msg("telegram notifications enabled")
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
