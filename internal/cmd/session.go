package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/paceline/paceline/internal/config"
	"github.com/paceline/paceline/internal/core"
	"github.com/paceline/paceline/internal/core/auth"
	"github.com/paceline/paceline/internal/core/engine"
	"github.com/paceline/paceline/internal/core/limiter"
	"github.com/paceline/paceline/internal/core/protocol"
	"github.com/paceline/paceline/internal/core/store"
	"github.com/paceline/paceline/internal/observability"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// session bundles the configured API client and its backing store for one
// CLI invocation.
type session struct {
	cfg    *config.Config
	store  *store.Store
	engine *engine.Client
}

// openSession loads config, opens the store, and wires the API client:
// cached tokens are read from the store (falling back to the config file),
// refreshed tokens are written back, and every observed usage snapshot is
// logged.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cred := core.Credential{
		AccessToken:  cfg.OAuth.AccessToken,
		RefreshToken: cfg.OAuth.RefreshToken,
		ExpiresAt:    cfg.OAuth.TokenExpires,
	}
	if stored, err := db.GetCredential(ctx, cfg.OAuth.ClientID); err != nil {
		_ = db.Close()
		return nil, err
	} else if stored != nil {
		cred = *stored
	}

	priority, err := limiter.ParsePriority(cfg.Throttle.Priority)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log := observability.NewComponentLogger(cfg.Logging.Level)

	proto := protocol.NewClient()
	if cfg.API.BaseURL != "" {
		proto.BaseURL = cfg.API.BaseURL
	}
	proto.Log = log

	throttle := limiter.New(priority)
	throttle.Log = log
	proto.Throttle = throttle

	manager := auth.NewManager(cred, cfg.OAuth.ClientID, cfg.OAuth.ClientSecret, proto)
	manager.Log = log
	manager.OnUpdate = func(updated core.Credential) {
		_ = db.SaveCredential(context.Background(), cfg.OAuth.ClientID, updated)
	}
	proto.Tokens = manager

	proto.OnUsage = func(entry core.UsageEntry) {
		_ = db.RecordUsage(context.Background(), entry)
	}

	eng := engine.New(proto)
	if cfg.API.PerPage > 0 {
		eng.PerPage = cfg.API.PerPage
	}

	return &session{cfg: cfg, store: db, engine: eng}, nil
}

func (s *session) Close() {
	if s != nil && s.store != nil {
		_ = s.store.Close()
	}
}
