// Command evespai is an IRC chat bot that answers lookup queries about the
// EVE universe and one corporation's assets. It:
//   - Loads configuration and initializes structured logging.
//   - Connects to the two Postgres stores (stationspinner corp data and the
//     static data export), each independently.
//   - Resolves the configured corporation once at startup.
//   - Joins the configured channel and answers prefixed commands.
//   - Exposes a minimal HTTP server with /healthz, /readyz, /status, /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/onnwee/evespai/chat"
	"github.com/onnwee/evespai/command"
	"github.com/onnwee/evespai/config"
	"github.com/onnwee/evespai/db"
	"github.com/onnwee/evespai/eveapi"
	"github.com/onnwee/evespai/sde"
	"github.com/onnwee/evespai/server"
	"github.com/onnwee/evespai/spinner"
	"github.com/onnwee/evespai/telemetry"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load(".env")

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()
	shutdownTracing, err := telemetry.InitTracing("evespai", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdownTracing()

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stores. Each connect is independent: a failure is reported and the
	// commands needing that store answer with an upstream-failure line, but
	// the process stays up.
	spinnerDB := connectStore(ctx, "spinner", cfg.SpinnerDB)
	sdeDB := connectStore(ctx, "sde", cfg.SDEDB)
	defer closeStore("spinner", spinnerDB)
	defer closeStore("sde", sdeDB)

	// Corporation scope, resolved once. Unresolved (missing setting, unknown
	// name, or spinner store down) leaves the id at zero, which blocks
	// owner-scoped commands with a clear reply instead of crashing.
	var corpID int64
	if err := cfg.ValidateCorporation(); err != nil {
		slog.Error("corporation not configured; owner-scoped commands disabled", slog.Any("err", err))
	} else if spinnerDB == nil {
		slog.Error("corporation unresolved: stationspinner store unavailable")
	} else {
		corpID, err = spinner.ResolveCorporationID(ctx, spinnerDB, cfg.Corporation)
		if err != nil {
			slog.Error("corporation unresolved; owner-scoped commands disabled",
				slog.String("corporation", cfg.Corporation), slog.Any("err", err))
		} else {
			slog.Info("corporation resolved",
				slog.String("corporation", cfg.Corporation), slog.Int64("corporation_id", corpID))
		}
	}

	bot := &command.Bot{
		Universe: sde.New(sdeDB),
		Corp:     spinner.New(spinnerDB, corpID),
		Status:   &eveapi.StatusClient{BaseURL: cfg.EveAPIBaseURL},
		MaxLines: cfg.MaxLines,
	}
	router := command.NewRouter(cfg.CommandPrefix, bot)

	go chat.StartBot(ctx, cfg, router)

	go func() {
		deps := server.Deps{SpinnerDB: spinnerDB, SDEDB: sdeDB, CorporationID: corpID}
		if err := server.Start(ctx, deps, cfg.HTTPAddr); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	// Block until shutdown signal
	<-ctx.Done()
	slog.Info("shutting down")
}

func connectStore(ctx context.Context, name string, cfg config.DBConfig) *sql.DB {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("store connect failed", slog.String("store", name), slog.Any("err", err))
		telemetry.SetStoreUp(name, false)
		return nil
	}
	telemetry.SetStoreUp(name, true)
	slog.Info("store connected", slog.String("store", name), slog.String("db", cfg.Name))
	return pool
}

func closeStore(name string, pool *sql.DB) {
	if pool == nil {
		return
	}
	if err := pool.Close(); err != nil {
		slog.Error("failed to close store", slog.String("store", name), slog.Any("err", err))
	}
}
