package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/paylinq/askhr/internal/db"
	"github.com/paylinq/askhr/internal/examples"
	"github.com/paylinq/askhr/internal/extract"
	"github.com/paylinq/askhr/internal/guard"
	"github.com/paylinq/askhr/internal/pipeline"
	"github.com/paylinq/askhr/pkg/anthropic"
)

// env holds the wired collaborators shared by the serve and ask commands.
type env struct {
	Database db.DB
	Pipeline *pipeline.Pipeline
}

// Close releases the environment's resources.
func (e *env) Close() {
	if e.Database != nil {
		if err := e.Database.Close(); err != nil {
			zap.L().Warn("close database", zap.Error(err))
		}
	}
}

// initEnv opens the database, materializes the schema and example set, and
// builds the pipeline with injected clients.
func initEnv(ctx context.Context) (*env, error) {
	database, err := openDatabase(ctx)
	if err != nil {
		return nil, err
	}

	sch, err := database.Schema(ctx)
	if err != nil {
		database.Close()
		return nil, eris.Wrap(err, "introspect schema")
	}
	if len(sch.Tables) == 0 {
		zap.L().Warn("schema has no tables; generated queries will likely fail")
	}

	exampleSet, err := examples.Load(cfg.Examples.Path)
	if err != nil {
		database.Close()
		return nil, eris.Wrap(err, "load examples")
	}

	client := anthropic.NewClient(cfg.Anthropic.Key,
		anthropic.WithRequestsPerSecond(cfg.Anthropic.RequestsPerSecond),
	)

	p := pipeline.New(
		cfg,
		database,
		client,
		guard.New(client, cfg.Anthropic.GuardModel),
		extract.NewRouter(cfg.Extract.PdfToTextPath),
		sch,
		exampleSet,
	)

	return &env{Database: database, Pipeline: p}, nil
}

func openDatabase(ctx context.Context) (db.DB, error) {
	switch cfg.Database.Driver {
	case "postgres", "":
		database, err := db.NewPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, eris.Wrap(err, "open postgres")
		}
		return database, nil
	case "sqlite":
		database, err := db.NewSQLite(cfg.Database.URL)
		if err != nil {
			return nil, eris.Wrap(err, "open sqlite")
		}
		return database, nil
	default:
		return nil, eris.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
