package main

import (
	"chat-live/auth"
	"chat-live/infrastructure/http/server"
	"chat-live/observability"
	"chat-live/repositories"
	"chat-live/runtime"
	"chat-live/runtime/workers"
	"chat-live/services"
	"chat-live/storage"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a termination signal.
// Deferred cleanups (database close) run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(ctx, config, log))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if log.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		log.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, RecordMapper)
	}

	assets, err := storage.NewDiskAssetStore(log, config.AssetsDir, config.BodyLimit)
	if err != nil {
		return exitConfig, fmt.Errorf("asset store: %w", err)
	}

	// 3. Runtime
	userRepository := repositories.NewUserRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log)
	registry := runtime.NewRegistry()
	presence := runtime.NewPresenceBroadcaster(log, registry, config.PresenceTimeout)
	dispatcher := runtime.NewDispatcher(log, messageRepository, userRepository, registry, assets,
		config.DeliveryTimeout, config.MaxTextLength)
	tracker := runtime.NewUnseenTracker(log, messageRepository)

	// 4. Services & transport
	tokens := auth.NewTokenIssuer(config.JWTSecret, config.AuthTokenDuration)
	chatService := services.NewChatService(log, userRepository, messageRepository, registry, presence, dispatcher, tracker)
	authService := services.NewAuthService(log, userRepository, tokens, assets)
	monitoring := observability.NewMonitoringManager(log, func() int { return len(registry.Snapshot()) })

	httpServer := server.NewServer(log, chatService, authService, tokens, monitoring, server.Options{
		BodyLimit:            config.BodyLimit,
		ConnectionBufferSize: config.ConnectionBufferSize,
		WriteTimeout:         config.WriteTimeout,
		PingInterval:         config.PingInterval,
		AssetsDir:            assets.Dir(),
	})

	// 5. Supervision
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewHTTPServerWorker(log, httpServer, address, config.ShutdownTimeout),
		workers.NewMonitoringWorker(monitoring, config.MetricInterval),
		workers.NewHeartbeatWorker(log, monitoring, config.HeartbeatInterval),
	)

	log.Info("Starting chat server", "address", address)
	sup.Run(ctx)
	log.Info("Program stopped cleanly")
	return exitOK, nil
}

func buildBadgerOpts(ctx context.Context, config Config, log *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if log.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG).WithBypassLockGuard(true)
	}
	return options.WithLoggingLevel(badger.WARNING)
}

// RecordMapper renders message and user records in the debug inspector.
func RecordMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	record := repositories.DescribeRecord(key, val)
	row.Type = record.Kind
	row.Detail = record.Detail
	return row
}
