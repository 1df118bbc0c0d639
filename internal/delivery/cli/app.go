package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartkart/kiosk/config"
	"github.com/smartkart/kiosk/internal/domain"
	"github.com/smartkart/kiosk/internal/infrastructure/cache"
	"github.com/smartkart/kiosk/internal/infrastructure/smartkart"
	"github.com/smartkart/kiosk/internal/usecase"
	"go.uber.org/zap"
)

// App is the wired kiosk: backend client, notice store and session
type App struct {
	Config  *config.Config
	Session *usecase.Session

	closers []func() error
}

// NewApp wires the kiosk components described by cfg
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	client := smartkart.NewClient(smartkart.Config{
		BaseURL:   cfg.Backend.BaseURL,
		Timeout:   cfg.Backend.Timeout,
		RateLimit: cfg.Backend.RateLimit,
		Burst:     cfg.Backend.Burst,
		UserAgent: cfg.Backend.UserAgent,
	})
	if cfg.IsDevelopment() {
		client.SetDebug(true)
	}

	store, closeStore, err := newNoticeStore(ctx, cfg.Notices)
	if err != nil {
		return nil, err
	}

	zap.L().Info("kiosk configured",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("notices", cfg.Notices.Type),
		zap.Duration("notice_ttl", cfg.Notices.TTL),
	)

	return NewAppWithClient(cfg, client, store, closeStore), nil
}

// NewAppWithClient wires a kiosk around an existing client and notice store
func NewAppWithClient(cfg *config.Config, client domain.ShopClient, store domain.CacheRepository, closers ...func() error) *App {
	notices := usecase.NewNoticeBoard(store, cfg.Notices.TTL)
	return &App{
		Config:  cfg,
		Session: usecase.NewSession(client, notices),
		closers: closers,
	}
}

// Close releases the notice store
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if closeFn == nil {
			continue
		}
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func newNoticeStore(ctx context.Context, cfg config.NoticesConfig) (domain.CacheRepository, func() error, error) {
	switch cfg.Type {
	case "redis":
		store, err := cache.NewRedisCache(cfg.RedisURL, cfg.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("notice store unreachable: %w", err)
		}
		return store, store.Close, nil
	default:
		store := cache.NewMemoryCache(time.Minute)
		return store, store.Close, nil
	}
}
