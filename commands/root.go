// Package commands implements the termgraph CLI commands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	"github.com/c360studio/termgraph/config"
	"github.com/c360studio/termgraph/storage"
)

// App carries the shared state commands run against.
type App struct {
	Config *config.Config
	Logger *slog.Logger
}

// NewRootCommand builds the termgraph root command.
func NewRootCommand(version string) *cobra.Command {
	app := &App{}
	var configPath string

	root := &cobra.Command{
		Use:           "termgraph",
		Short:         "Maintain and query a SKOS-style vocabulary term graph",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Logger = newLogger(cfg.Log.Level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (overrides discovery)")

	root.AddCommand(
		newLoadCommand(app),
		newGetCommand(app),
		newBroaderCommand(app),
		newNarrowerCommand(app),
		newSchemesCommand(app),
		newConvertCommand(app),
	)
	return root
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		merged := config.DefaultConfig()
		merged.Merge(cfg)
		if err := merged.Validate(); err != nil {
			return nil, err
		}
		return merged, nil
	}
	return config.NewLoader(slog.Default()).Load()
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// openStore creates the configured term store. The returned close function
// is always safe to call.
func openStore(ctx context.Context, app *App) (storage.TermStore, func(), error) {
	switch app.Config.Store.Backend {
	case config.BackendNATS:
		nc, err := nats.Connect(app.Config.NATS.URL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect to NATS: %w", err)
		}
		js, err := jetstream.New(nc)
		if err != nil {
			nc.Close()
			return nil, func() {}, fmt.Errorf("open JetStream: %w", err)
		}
		store, err := storage.NewKVStore(ctx, js)
		if err != nil {
			nc.Close()
			return nil, func() {}, err
		}
		return store, nc.Close, nil
	default:
		app.Logger.Debug("using in-memory store; state does not persist across invocations")
		return storage.NewMemoryStore(), func() {}, nil
	}
}
