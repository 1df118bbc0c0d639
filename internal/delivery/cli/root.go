package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/smartkart/kiosk/config"
	"github.com/smartkart/kiosk/internal/infrastructure/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions is the state shared by every command of one invocation
type rootOptions struct {
	configFile string
	app        *App
	ownsApp    bool
}

// Option customizes the root command
type Option func(*rootOptions)

// WithApp runs commands against an already wired kiosk instead of loading
// configuration
func WithApp(app *App) Option {
	return func(o *rootOptions) {
		o.app = app
	}
}

// NewRootCommand builds the smartkart command tree
func NewRootCommand(opts ...Option) *cobra.Command {
	o := &rootOptions{}
	for _, opt := range opts {
		opt(o)
	}

	root := &cobra.Command{
		Use:           "smartkart",
		Short:         "SmartKart self-checkout kiosk",
		Long:          "Kiosk client for the SmartKart smart-cart backend: scan, weigh, budget and checkout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return o.teardown()
		},
	}

	root.PersistentFlags().StringVar(&o.configFile, "config", "", "config file (default is ./config.yaml)")

	root.AddCommand(
		newServeCommand(o),
		newShellCommand(o),
		newProductsCommand(o),
		newCategoriesCommand(o),
		newLookupCommand(o),
		newAddCommand(o),
		newCartCommand(o),
		newRemoveCommand(o),
		newClearCommand(o),
		newBudgetCommand(o),
		newCheckoutCommand(o),
		newInvoiceCommand(o),
	)

	return root
}

func (o *rootOptions) setup(ctx context.Context) error {
	if o.app != nil {
		return nil
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}

	logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		Development: cfg.IsDevelopment(),
	})

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	o.app = app
	o.ownsApp = true
	return nil
}

func (o *rootOptions) teardown() error {
	defer zap.L().Sync() //nolint:errcheck
	if !o.ownsApp {
		return nil
	}
	return o.app.Close()
}

// Execute runs the CLI until it finishes or the process is interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
