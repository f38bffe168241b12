package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"wardrobe/internal/api"
	"wardrobe/internal/catalog"
	"wardrobe/internal/db"
	"wardrobe/internal/store"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// envDefault returns the environment value for key, or fallback if unset.
func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// A .env file is optional; real environment variables win.
	godotenv.Load()

	fs := flag.NewFlagSet("wardrobe", flag.ContinueOnError)

	dbDefault := envDefault("WARDROBE_DB", "wardrobe.sqlite3")
	var dbPath string
	fs.StringVar(&dbPath, "db", dbDefault, "")
	fs.StringVar(&dbPath, "d", dbDefault, "")

	addrDefault := envDefault("WARDROBE_ADDR", ":8080")
	var addr string
	fs.StringVar(&addr, "addr", addrDefault, "")
	fs.StringVar(&addr, "a", addrDefault, "")

	logDefault := envDefault("WARDROBE_LOG", "")
	var logPath string
	fs.StringVar(&logPath, "log", logDefault, "")
	fs.StringVar(&logPath, "l", logDefault, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: wardrobe [flags]

Flags:
  -d, -db <path>          SQLite database path (default: wardrobe.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Flag defaults can also be set via WARDROBE_DB, WARDROBE_ADDR and
WARDROBE_LOG environment variables, or a .env file.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	// Optionally also write to a log file.
	closeLog, err := setupLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Open database and apply schema + migrations (idempotent).
	database, err := db.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "path", dbPath)

	// Load the catalog into memory. An empty database is seeded with
	// the sample wardrobe.
	cat := catalog.New(database)
	if err := cat.Load(context.Background()); err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "items", cat.Count())

	settings, err := store.LoadSettings(context.Background(), database)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}
	slog.Info("settings loaded",
		"sound", settings.SoundEnabled,
		"music", settings.MusicEnabled,
		"lastBackup", settings.LastBackup)

	handler := api.LoggingMiddleware(api.NewRouter(database, cat))

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	// Any debounced edit still waiting on its timer has to reach the
	// database before the process exits.
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cat.Flush(flushCtx); err != nil {
		slog.Error("failed to flush pending writes", "error", err)
	}

	slog.Info("server stopped, closing database")
}
