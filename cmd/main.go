package main

import (
	"board-lab/handlers"
	"board-lab/infrastructure/storage"
	"board-lab/infrastructure/websocket"
	"board-lab/internal"
	"board-lab/runtime"
	"board-lab/runtime/workers"
	"board-lab/services"
	"board-lab/sink"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and blocks until SIGINT/SIGTERM,
// so that deferred cleanups run before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Persistence
	repository := storage.NewElementRepository(db, log)
	queue := sink.NewElementQueue(repository, log, config.SaveDelay, config.FlushTimeout)
	elements := services.NewElementService(queue, repository, log, config.FlushTimeout)

	// 4. Registries, dispatchers and routers
	adminRegistry := runtime.NewAdminRegistry()
	playerRegistry := runtime.NewPlayerRegistry()
	deps := handlers.Deps{
		Log:              log,
		AdminRegistry:    adminRegistry,
		PlayerRegistry:   playerRegistry,
		AdminDispatcher:  runtime.NewAdminDispatcher(log, adminRegistry),
		PlayerDispatcher: runtime.NewPlayerDispatcher(log, playerRegistry),
		Elements:         elements,
	}
	sessionOptions := websocket.SessionOptions{
		BufferSize:     config.ConnectionBufferSize,
		MaxMessageSize: config.MaxMessageSize,
	}
	players := websocket.NewSession(log, websocket.PlayerAuthorizer{},
		runtime.NewRouter(log, handlers.PlayerTable(deps)), sessionOptions)
	admins := websocket.NewSession(log, websocket.NewAdminAuthorizer(config.AdminAPIKey),
		runtime.NewRouter(log, handlers.AdminTable(deps)), sessionOptions)

	// 5. HTTP surface
	presence := workers.NewPresenceReporter(log, playerRegistry, adminRegistry, queue, config.PresenceInterval)
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", players)
	mux.Handle("GET /adm", admins)
	mux.Handle("GET /_healthcheck", internal.HealthHandler(func() map[string]any {
		rooms, players := playerRegistry.Stats()
		// process stats are the last sample of the reporter
		process := presence.Latest()
		return map[string]any{
			"rooms":       rooms,
			"connections": players + adminRegistry.Count(),
			"pending":     queue.Len(),
			"rss":         process.RSS,
			"sampled_at":  process.At,
		}
	}))
	server := &http.Server{Addr: config.Address(), Handler: mux}

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Supervision, blocks until the signal
	workers.NewSupervisor(log, config.RestartInterval).
		Add(workers.NewHTTPServerWorker(log, server, config.ShutdownTimeout), presence).
		Run(ctx)

	// 8. Final Cleanup: write what is still buffered before the DB closes
	log.Info("Shutting down gracefully...")
	flushCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := queue.Close(flushCtx); err != nil {
		log.Warn("Pending element writes not flushed", "error", err)
	}
	log.Info("Program stopped cleanly")
	return nil
}
