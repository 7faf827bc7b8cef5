package app

import (
	"context"
	"fmt"
	"path/filepath"

	"mathbook/internal/content"
	"mathbook/internal/game"
	"mathbook/internal/state"
	"mathbook/internal/telemetry"

	"github.com/google/uuid"
)

// App owns the construction order the engine relies on: load persisted
// state first, build the game from it, then hand everything to the
// presentation layer. Nothing renders before LoadAnswers has finished.
type App struct {
	cfg Config

	logger   *telemetry.Logger
	store    state.Store
	game     *game.Game
	settings *Settings

	sessionID string
	pack      content.Pack
}

func New(ctx context.Context, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := telemetry.NewLogger(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	store := openStore(ctx, cfg, logger)

	pack, err := pickPack(ctx, cfg)
	if err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, err
	}

	g := game.New(content.BuildLevels(pack), game.Options{
		Store:          store,
		Logger:         logger,
		DebugUnlockAll: cfg.DebugUnlockAll,
	})
	if _, err := g.LoadAnswers(ctx); err != nil {
		// Loss of persistence only; the game starts blank.
		logger.Warn("answers.load_failed", map[string]any{"error": err.Error()})
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		game:      g,
		settings:  NewSettings(g),
		sessionID: uuid.NewString(),
		pack:      pack,
	}
	logger.Info("app.start", map[string]any{
		"session": a.sessionID,
		"pack":    pack.PackID,
		"levels":  len(pack.Levels),
	})
	return a, nil
}

// openStore opens the SQLite store, falling back to memory-only
// operation when the durable store is unavailable — an unusable data
// dir included. The fallback is a supported configuration, not an
// error.
func openStore(ctx context.Context, cfg Config, logger *telemetry.Logger) state.Store {
	sqlStore, err := state.NewSQLite(filepath.Join(cfg.DataDir, "state.db"))
	if err == nil {
		if err = sqlStore.EnsureSchema(ctx); err == nil {
			return sqlStore
		}
		_ = sqlStore.Close()
	}
	logger.Warn("store.fallback_memory", map[string]any{"error": err.Error()})
	return state.NewMemory()
}

// pickPack loads packs from the configured directory and falls back to
// the built-in pack when the directory has none.
func pickPack(ctx context.Context, cfg Config) (content.Pack, error) {
	if cfg.PacksDir != "" {
		packs, err := content.NewLoader().LoadPacks(ctx, cfg.PacksDir)
		if err != nil {
			return content.Pack{}, fmt.Errorf("load packs: %w", err)
		}
		if len(packs) > 0 {
			return packs[0], nil
		}
	}
	return content.Builtin()
}

func (a *App) Game() *game.Game    { return a.game }
func (a *App) Settings() *Settings { return a.settings }
func (a *App) SessionID() string   { return a.sessionID }
func (a *App) Pack() content.Pack  { return a.pack }

func (a *App) Close() error {
	_ = a.game.Close()
	err := a.store.Close()
	if cerr := a.logger.Close(); err == nil {
		err = cerr
	}
	return err
}
