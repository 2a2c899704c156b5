// Package app wires configuration, storage and services into a runnable
// application shared by the HTTP server and the operator CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"gstbill/internal/config"
	redisctr "gstbill/internal/counter/redis"
	"gstbill/internal/gst"
	"gstbill/internal/handler"
	"gstbill/internal/logger"
	"gstbill/internal/port"
	"gstbill/internal/repository/memory"
	"gstbill/internal/repository/postgres"
	"gstbill/internal/router"
	"gstbill/internal/sequence"
	"gstbill/internal/service"
)

// Counter modes.
const (
	CounterNone  = "none"
	CounterLocal = "local"
	CounterRedis = "redis"
)

// App holds the wired services.
type App struct {
	Config    *config.Config
	Store     port.Store
	Engine    *gst.Engine
	Sequencer *sequence.Sequencer

	Customers service.CustomerService
	Invoices  service.InvoiceService
	Transfer  service.TransferService
	Register  service.RegisterService

	closers []func() error
	log     zerolog.Logger
}

// New opens the configured store and counter and builds the services.
// Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, log: logger.WithComponent("app")}

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.Store = store

	counter, err := a.openCounter(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	strategy, err := sequence.ParseStrategy(cfg.Sequence.Strategy)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Sequencer = &sequence.Sequencer{
		Prefix:   cfg.Sequence.Prefix,
		Width:    cfg.Sequence.Width,
		Strategy: strategy,
	}
	a.Engine = gst.NewEngine(gst.Config{
		HomeState: cfg.Tax.HomeState,
		Rates:     gst.Rates{CGST: cfg.Tax.CGST, SGST: cfg.Tax.SGST, IGST: cfg.Tax.IGST},
	})

	a.Customers = service.NewCustomerService(a.Store)
	a.Invoices = service.NewInvoiceService(a.Store, a.Engine, a.Sequencer, counter, cfg.Company)
	a.Transfer = service.NewTransferService(a.Store, a.Sequencer, counter)
	a.Register = service.NewRegisterService(a.Invoices)

	a.log.Info().
		Str("storage", cfg.Storage.Driver).
		Str("counter", cfg.Sequence.Counter).
		Str("home_state", a.Engine.HomeState()).
		Msg("application wired")
	return a, nil
}

func (a *App) openStore() (port.Store, error) {
	switch a.Config.Storage.Driver {
	case config.StorageMemory:
		return memory.NewStore(), nil
	case config.StoragePostgres:
		db, err := postgres.NewDB(&a.Config.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return postgres.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", a.Config.Storage.Driver)
	}
}

// openCounter returns nil when numbers come from stored invoices alone.
func (a *App) openCounter(ctx context.Context) (port.InvoiceCounter, error) {
	switch a.Config.Sequence.Counter {
	case CounterNone, "":
		return nil, nil
	case CounterLocal:
		return sequence.NewLocalCounter(), nil
	case CounterRedis:
		client, err := redisctr.Connect(ctx, a.Config.Redis.URL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return redisctr.NewCounter(client, a.Config.Redis.CounterKey), nil
	default:
		return nil, fmt.Errorf("unknown sequence counter %q", a.Config.Sequence.Counter)
	}
}

// Handlers builds the HTTP handlers over the wired services.
func (a *App) Handlers() router.Handlers {
	return router.Handlers{
		Health:   handler.NewHealthHandler(a.Store, a.Config.Storage.Driver),
		Company:  handler.NewCompanyHandler(a.Config.Company, a.Engine.Rates()),
		Customer: handler.NewCustomerHandler(a.Customers),
		Invoice:  handler.NewInvoiceHandler(a.Invoices, a.Register),
		Transfer: handler.NewTransferHandler(a.Transfer),
		Words:    handler.NewWordsHandler(),
	}
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
