package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/leozex777/syncschwab/internal/cache"
	"github.com/leozex777/syncschwab/internal/config"
	"github.com/leozex777/syncschwab/internal/notify"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/registry"
	"github.com/leozex777/syncschwab/internal/shell"
	"github.com/leozex777/syncschwab/internal/status"
	"github.com/leozex777/syncschwab/internal/store"
	"github.com/leozex777/syncschwab/internal/token"
)

// app agrupa las dependencias compartidas por todos los subcomandos.
type app struct {
	cfg      *config.Config
	cache    cache.Client
	store    *store.FileStore
	registry *registry.Registry
	settings *store.SettingsStore
	uiState  *shell.Store
	checker  *token.Checker
	agg      *status.Aggregator
	queue    *notify.Queue
}

// buildApp cablea todo: .env → config → logger → cache → stores.
func buildApp(cfgPath, envFile string) (*app, error) {
	// .env ausente no es fatal: valen las variables del sistema.
	_ = godotenv.Load(envFile)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "syncschwab",
		Version:     version,
	})

	if err := cfg.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("ensure dirs: %w", err)
	}

	cc, err := cache.New(cache.Config{
		Driver:     cfg.Cache.Driver,
		Host:       cfg.Cache.Redis.Host,
		Port:       cfg.Cache.Redis.Port,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: cfg.MemoryTTL(),
	})
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	fs := store.NewFileStore(cfg.ClientsFile(), cc)
	reg := registry.New(fs)
	checker := token.NewChecker(cfg.RefreshTTL())

	return &app{
		cfg:      cfg,
		cache:    cc,
		store:    fs,
		registry: reg,
		settings: store.NewSettingsStore(cfg.SettingsFile(), cc),
		uiState:  shell.NewStore(cfg.UIStateFile(), cc),
		checker:  checker,
		agg:      status.NewAggregator(cfg, checker),
		queue:    notify.NewQueue(notify.DefaultCapacity),
	}, nil
}

func (a *app) close() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	_ = logger.Sync()
}
