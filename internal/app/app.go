// Package app wires the learning core together: stores, curriculum catalog,
// assessor, path planner, daily plan builder, fingerprint index, session
// orchestrator, and (when a provider is configured) the content generator.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/assess"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/contentgen"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/fingerprint"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/pathplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/session"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/store"
)

// App is the assembled learning core. Fields are exported so callers can
// reach individual components directly; the cobra commands go through them.
type App struct {
	Log     *zap.SugaredLogger
	Catalog curriculum.Catalog

	Plans        dailyplan.PlanRepo
	Paths        pathplan.Repo
	Fingerprints fingerprint.Repo
	Mastery      learner.MasteryStore
	Profiles     learner.ProfileStore

	Assessor     *assess.Assessor
	Planner      *pathplan.Planner
	Builder      *dailyplan.Builder
	Index        *fingerprint.Index
	Orchestrator *session.Orchestrator

	// Generator is nil when no content provider is configured.
	Generator *contentgen.Generator
}

// New assembles the application from cfg. With an empty DatabaseDSN all
// state lives in memory; otherwise the GORM store backs every repository.
func New(ctx context.Context, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &App{
		Log:     log,
		Catalog: curriculum.DefaultCatalog(),
	}

	if cfg.DatabaseDSN == "" {
		mem := store.NewMemory()
		a.Plans = mem.Plans
		a.Paths = mem.Paths
		a.Fingerprints = mem.Fingerprints
		a.Mastery = mem.Mastery
		a.Profiles = mem.Profiles
	} else {
		db, err := store.Open(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.Plans = store.NewPlanRepo(db)
		a.Paths = store.NewPathRepo(db)
		a.Fingerprints = store.NewFingerprintRepo(db)
		a.Mastery = store.NewMasteryRepo(db)
		a.Profiles = store.NewProfileRepo(db)
	}

	a.Index = fingerprint.NewIndex(a.Fingerprints, log)
	a.Assessor = assess.New(a.Catalog, a.Mastery, a.Profiles, log)
	a.Planner = pathplan.New(a.Catalog, a.Assessor, a.Mastery, a.Profiles, a.Paths, log)
	a.Builder = dailyplan.NewBuilder(a.Plans, a.Profiles, a.Catalog, a.Index, log)
	a.Orchestrator = session.New(a.Plans, a.Builder, a.Mastery, a.Profiles, a.Index, log)

	if cfg.Content.Validate() == nil {
		provider, err := contentgen.NewProvider(ctx, cfg.Content, log)
		if err != nil {
			return nil, fmt.Errorf("content provider: %w", err)
		}
		a.Generator = contentgen.NewGenerator(provider, a.Index, cfg.Content, log)
	} else {
		log.Debugw("content generation disabled, no provider configured")
	}

	return a, nil
}

// Close flushes buffered log entries.
func (a *App) Close() {
	_ = a.Log.Sync()
}

func buildLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}
