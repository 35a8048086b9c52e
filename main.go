package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/propbowl/auth"
	"github.com/danielhkuo/propbowl/cliparse"
	"github.com/danielhkuo/propbowl/db"
	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/router"
	"github.com/danielhkuo/propbowl/scoring"
	"github.com/danielhkuo/propbowl/store"
)

const mintedTokenTTL = 30 * 24 * time.Hour

func main() {
	var err error
	ctx := context.Background()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	st := store.New(dbConn, cfg.DatabaseType)

	// Change feed
	var pub feed.Publisher = feed.LogPublisher{}
	if cfg.RedisURL != "" {
		redisPub, err := feed.NewRedisPublisher(ctx, cfg.RedisURL, cfg.FeedChannel)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisPub.Close()
		pub = redisPub
		slog.Info("Publishing changes to redis", "channel", cfg.FeedChannel)
	}

	svc := scoring.NewService(st, pub)

	if cfg.AdminPhone != "" {
		admin, err := svc.EnsureAdmin(ctx, cfg.AdminPhone, cfg.AdminName)
		if err != nil {
			slog.Error("admin bootstrap failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Admin profile ready", "user_id", admin.ID)
	}

	if cfg.MintToken != "" {
		if err := mintToken(ctx, st, cfg); err != nil {
			slog.Error("token minting failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Create router
	mux := router.NewRouter(svc, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins, mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// mintToken prints a bearer token for the profile registered under
// cfg.MintToken
func mintToken(ctx context.Context, st *store.Store, cfg cliparse.Config) error {
	phone, err := auth.NormalizePhone(cfg.MintToken)
	if err != nil {
		return err
	}
	p, err := st.GetProfileByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("no profile for %s: %w", phone, err)
	}

	token, err := auth.IssueToken(cfg.JWTSecret, p.ID, mintedTokenTTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
