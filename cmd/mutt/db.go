package main

import (
	"context"
	"fmt"

	"mutt/internal/config"
	"mutt/internal/graph"
	"mutt/internal/lineage"
	"mutt/internal/logger"
	"mutt/internal/store"
	"mutt/internal/store/postgres"
	"mutt/internal/store/sqlite"
)

var _ lineage.Mirror = (*graph.Client)(nil)

// app bundles what every command opens from the project config.
type app struct {
	cfg   *config.ProjectConfig
	log   *logger.Logger
	db    store.Store
	graph *graph.Client
	svc   *lineage.Service
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	a := &app{cfg: cfg, log: log, db: db}

	var mirror lineage.Mirror
	if cfg.GraphEnabled() {
		a.graph, err = openGraph(ctx, cfg)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		mirror = a.graph
	}

	a.svc = lineage.NewService(db, mirror, log)
	return a, nil
}

func (a *app) Close(ctx context.Context) {
	if a.graph != nil {
		_ = a.graph.Close(ctx)
	}
	if err := a.db.Close(ctx); err != nil {
		a.log.Warn("closing database", "error", err)
	}
	a.log.Sync()
}

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	var db store.Store
	var err error
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgres.New(ctx, cfg.Database.DSN)
	case "sqlite":
		db, err = sqlite.New(ctx, cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}
	return db, nil
}

func openGraph(ctx context.Context, cfg *config.ProjectConfig) (*graph.Client, error) {
	client, err := graph.NewClient(ctx, cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password, cfg.Neo4j.Database)
	if err != nil {
		return nil, err
	}
	if err := client.EnsureIndexes(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}
	return client, nil
}
