package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/history"
	"github.com/GriffinCanCode/BlueprintStudio/internal/infrastructure/config"
	"github.com/GriffinCanCode/BlueprintStudio/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BlueprintStudio/internal/providers/storage"
)

var (
	// Global flags
	storageBackend string
	storagePath    string
	verbose        bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "bpctl",
	Short:         "Decode and encode blueprint strings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := logging.CLIConfig()
		if verbose {
			cfg.Level = "debug"
		}
		l, err := logging.New(cfg)
		if err != nil {
			return err
		}
		logger = l.Logger
		return nil
	},
}

func init() {
	cfg := config.LoadOrDefault()
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", cfg.Storage.Backend, "history storage backend (file, sqlite, memory)")
	rootCmd.PersistentFlags().StringVar(&storagePath, "data", cfg.Storage.Path, "storage directory or database file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(decodeCmd, encodeCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openHistory opens the configured store and loads the history from it.
// The caller closes the returned store.
func openHistory(cmd *cobra.Command) (*history.Store, storage.Store, error) {
	store, err := storage.Open(storage.Config{
		Backend:   storageBackend,
		Path:      storagePath,
		Namespace: config.LoadOrDefault().Storage.Namespace,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	l := logger
	if l == nil {
		l = zap.NewNop()
	}
	hist := history.NewStore(store, l.Named("history"))
	hist.Load(cmd.Context())
	return hist, store, nil
}
