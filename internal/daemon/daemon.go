package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/pomoflow/pomoflow/internal/api"
	"github.com/pomoflow/pomoflow/internal/app/gamification"
	"github.com/pomoflow/pomoflow/internal/app/ranking"
	"github.com/pomoflow/pomoflow/internal/domain"
	"github.com/pomoflow/pomoflow/internal/health"
	"github.com/pomoflow/pomoflow/internal/infra/sqlite"
)

// Daemon is the core pomoflow runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server
	cancel context.CancelFunc

	Gamification *gamification.Service
	Notification *gamification.NotificationService
	Ranking      *ranking.Service
	Health       *health.Checker
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(pomoflowHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// First launch: mint a user identity and register its profile
	if cfg.User.ID == "" {
		cfg.User.ID = uuid.NewString()
		if cfg.User.DisplayName == "" {
			cfg.User.DisplayName = "focused-" + cfg.User.ID[:8]
		}
		if err := SaveConfig(cfg); err != nil {
			db.Close()
			return nil, fmt.Errorf("save identity: %w", err)
		}
	}
	if err := db.UpsertProfile(context.Background(), domain.Profile{
		ID:          cfg.User.ID,
		DisplayName: cfg.User.DisplayName,
		AvatarRef:   cfg.User.AvatarRef,
		CreatedAt:   time.Now(),
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("register profile: %w", err)
	}

	d := &Daemon{
		Config:       cfg,
		DB:           db,
		Gamification: gamification.NewService(db),
		Notification: gamification.NewNotificationService(db),
		Ranking:      ranking.NewService(db, db),
		Health:       health.NewChecker(db, pomoflowHome()),
	}

	srv := api.NewServer(api.Deps{
		Gamification: d.Gamification,
		Notification: d.Notification,
		Ranking:      d.Ranking,
		Remote:       db,
		Social:       db,
		Health:       d.Health,
		UserID:       cfg.User.ID,
	})
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker always runs
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("pomoflow serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
