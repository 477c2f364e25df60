package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jalennorris/taskplan/internal/backend"
	"github.com/jalennorris/taskplan/internal/config"
	"github.com/jalennorris/taskplan/internal/history"
	"github.com/jalennorris/taskplan/internal/logger"
	"github.com/jalennorris/taskplan/internal/planner"
)

// app bundles the wired-up pieces every command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend *backend.Client
	store   *history.Store
	session *planner.Session
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client := backend.New(cfg.APIURL, log)

	store := history.NewStore(cfg.DataDir, client, cfg.UserID, log)
	store.Load(ctx)

	completion := planner.NewOpenAIClient(cfg.OpenAIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout, log, cfg.DebugMode)
	session := planner.NewSession(completion, client, store, cfg.UserID, log)

	return &app{
		cfg:     cfg,
		logger:  log,
		backend: client,
		store:   store,
		session: session,
	}, nil
}

func (a *app) close() {
	_ = logger.Sync(a.logger)
}
