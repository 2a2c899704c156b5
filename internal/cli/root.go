// Package cli implements the gstbill operator command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gstbill/internal/app"
	"gstbill/internal/config"
	"gstbill/internal/logger"
)

var version = "1.0.0"

// AppFactory opens the application for commands that need storage.
type AppFactory func(ctx context.Context, cfg *config.Config) (*app.App, error)

type runner struct {
	loadConfig func() (*config.Config, error)
	openApp    AppFactory
}

// NewRootCmd builds the command tree. openApp is used by commands that read
// or write the store; nil means app.New.
func NewRootCmd(openApp AppFactory) *cobra.Command {
	if openApp == nil {
		openApp = app.New
	}
	r := &runner{loadConfig: config.Load, openApp: openApp}

	root := &cobra.Command{
		Use:   "gstbill",
		Short: "gstbill - GST invoicing from the command line",
		Long: `gstbill computes GST totals, spells amounts in words and moves invoice
data in and out of the configured store.

Configuration is read from GSTBILL_* environment variables (and .env).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := r.loadConfig()
			if err != nil {
				return err
			}
			return logger.SetupWriter(cfg.Log, cmd.ErrOrStderr())
		},
	}

	root.AddCommand(
		newWordsCmd(),
		r.newTotalsCmd(),
		r.newNextNumberCmd(),
		r.newExportCmd(),
		r.newImportCmd(),
		r.newRegisterCmd(),
	)
	return root
}

// withApp loads config, opens the app and closes it once fn returns.
func (r *runner) withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}
	a, err := r.openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
