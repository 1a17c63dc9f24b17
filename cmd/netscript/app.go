package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"netscript/pkg/config"
	"netscript/pkg/driver"
	"netscript/pkg/ramcost"
	"netscript/pkg/store"
)

// app holds the objects every command works with.
type app struct {
	cfg       *config.Config
	logger    *logrus.Logger
	table     *ramcost.Table
	store     *store.Store
	evaluator *driver.Evaluator
}

func newLogger(cfg *config.Config) *logrus.Logger {
	return cfg.Logger()
}

func newTable(cfg *config.Config) (*ramcost.Table, error) {
	return cfg.Table()
}

func newStore(lc fx.Lifecycle, cfg *config.Config, logger *logrus.Logger) (*store.Store, error) {
	s, err := store.Open(cfg.StorePath, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return s.Close()
		},
	})
	return s, nil
}

func newEvaluator(table *ramcost.Table, logger *logrus.Logger) *driver.Evaluator {
	return driver.NewEvaluator(table, logger)
}

// start builds the object graph for cfg. The returned stop function releases
// the store.
func start(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	a := &app{}
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			newTable,
			newStore,
			newEvaluator,
		),
		fx.Populate(
			&a.cfg,
			&a.logger,
			&a.table,
			&a.store,
			&a.evaluator,
		),
	)
	if err := fxApp.Start(ctx); err != nil {
		return nil, nil, err
	}
	stop := func() {
		if err := fxApp.Stop(context.Background()); err != nil {
			a.logger.WithError(err).Warn("shutdown failed")
		}
	}
	return a, stop, nil
}
