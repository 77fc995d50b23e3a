package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mthstanley/stockpot/internal/app"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type serverOptions struct {
	configPath string
	defaults   app.Config
	flags      app.Config
}

func newServerCommand(log *logger.Logger) *cobra.Command {
	cmd, _ := buildServerCommand(log)
	return cmd
}

func buildServerCommand(log *logger.Logger) (*cobra.Command, *serverOptions) {
	defaults := app.LoadConfig(log)
	opts := &serverOptions{defaults: defaults, flags: defaults}

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the HTTP API",
		Long: `Run the stockpot HTTP API.

Every flag defaults to its environment variable. A --config YAML file
overrides those defaults, and flags given on the command line win over both.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags().Changed, opts)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), log, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	f.StringVar(&opts.flags.Addr, "addr", defaults.Addr, "listen address (ADDR)")
	f.StringVar(&opts.flags.DB.Host, "db-host", defaults.DB.Host, "database host (DB_HOST)")
	f.IntVar(&opts.flags.DB.Port, "db-port", defaults.DB.Port, "database port (DB_PORT)")
	f.StringVar(&opts.flags.DB.Username, "db-username", defaults.DB.Username, "database user (DB_USERNAME)")
	f.StringVar(&opts.flags.DB.Password, "db-password", defaults.DB.Password, "database password (DB_PASSWORD)")
	f.StringVar(&opts.flags.DB.Database, "db-database", defaults.DB.Database, "database name, or DSN for sqlite (DB_DATABASE)")
	f.StringVar(&opts.flags.DB.Driver, "db-driver", defaults.DB.Driver, "postgres or sqlite (DB_DRIVER)")
	f.StringVar(&opts.flags.JWTTokenSecret, "jwt-token-secret", defaults.JWTTokenSecret, "HMAC secret for API tokens (JWT_TOKEN_SECRET)")
	return cmd, opts
}

// resolveConfig layers defaults, then the config file, then explicitly set flags.
func resolveConfig(changed func(name string) bool, opts *serverOptions) (app.Config, error) {
	cfg := opts.defaults
	if opts.configPath != "" {
		fileCfg, err := app.LoadConfigFile(opts.configPath, opts.defaults)
		if err != nil {
			return app.Config{}, err
		}
		cfg = fileCfg
	}
	overrides := map[string]func(){
		"addr":             func() { cfg.Addr = opts.flags.Addr },
		"db-host":          func() { cfg.DB.Host = opts.flags.DB.Host },
		"db-port":          func() { cfg.DB.Port = opts.flags.DB.Port },
		"db-username":      func() { cfg.DB.Username = opts.flags.DB.Username },
		"db-password":      func() { cfg.DB.Password = opts.flags.DB.Password },
		"db-database":      func() { cfg.DB.Database = opts.flags.DB.Database },
		"db-driver":        func() { cfg.DB.Driver = opts.flags.DB.Driver },
		"jwt-token-secret": func() { cfg.JWTTokenSecret = opts.flags.JWTTokenSecret },
	}
	for name, apply := range overrides {
		if changed(name) {
			apply()
		}
	}
	return cfg, nil
}

func runServer(parent context.Context, log *logger.Logger, cfg app.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info("Starting stockpot", "addr", cfg.Addr, "db_driver", cfg.DB.Driver)
	return a.Run(ctx)
}
