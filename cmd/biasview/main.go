package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/biasaware/biasview/pkg/config"
	"github.com/biasaware/biasview/pkg/loader"
	"github.com/biasaware/biasview/pkg/logging"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// app holds what every command needs once flags and config are resolved
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	loader *loader.Loader
	client *http.Client
	sample bool
}

// source returns the configured dataset source
func (a *app) source() loader.Source {
	if a.sample {
		return loader.NewSampleSource()
	}
	return loader.NewSource(a.cfg.Data, a.client)
}

// load fetches the dataset once
func (a *app) load(ctx context.Context) (*loader.Dataset, error) {
	return a.loader.LoadShared(ctx, a.source())
}

type rootFlags struct {
	data       string
	configPath string
	strict     bool
	watch      bool
	sample     bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	a := &app{}

	root := &cobra.Command{
		Use:   "biasview",
		Short: "Bias Aware News - read one story from the left, center and right",
		Long: `biasview reads a JSON Lines dataset of news issues. Each issue carries a
roundup and one article per perspective, annotated paragraph by paragraph for
lexical and informational bias.

Run without arguments to start the interactive viewer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd, flags)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a)
		},
	}

	root.PersistentFlags().StringVarP(&flags.data, "data", "d", "", "Dataset file path or http(s) URL (default from config)")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (default: "+config.DefaultConfigPath()+")")
	root.PersistentFlags().BoolVar(&flags.strict, "strict", false, "Fail the load on any shape warning")
	root.PersistentFlags().BoolVar(&flags.sample, "sample", false, "Use the built-in sample data")
	root.Flags().BoolVarP(&flags.watch, "watch", "w", false, "Reload when the dataset file changes")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newReadCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newChartCmd(a))
	return root
}

// setup loads config, applies flag overrides and builds the logger and loader
func (a *app) setup(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("data") {
		cfg.Data = flags.data
	}
	if changed("strict") {
		cfg.Strict = flags.strict
	}
	if changed("watch") {
		cfg.Watch = flags.watch
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.sample = flags.sample
	a.client = &http.Client{Timeout: cfg.FetchTimeoutDuration()}
	a.loader = loader.New(loader.Options{Strict: cfg.Strict}, logger)

	logger.Debug("configuration resolved",
		zap.String("data", cfg.Data),
		zap.Bool("strict", cfg.Strict),
		zap.Bool("watch", cfg.Watch),
		zap.Bool("sample", a.sample))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
