package command

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"nestedset/pkg/config"
	"nestedset/pkg/expr"
	"nestedset/pkg/nset"
	"nestedset/pkg/storage"
	"nestedset/pkg/util/logging"
)

// app is the state shared by every subcommand, built before each run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *storage.Store
	parser *nset.Parser
}

func (a *app) evaluator() *expr.Evaluator {
	return &expr.Evaluator{
		Env:         a.store,
		Parser:      a.parser,
		MaxPowerset: a.cfg.Eval.MaxPowerset,
	}
}

var (
	configPathFlag string
	dbPathFlag     string
	current        *app
)

var rootCmd = &cobra.Command{
	Use:           "nset",
	Short:         "Parse, combine and store nested sets",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		current = a
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "bolt database for named sets (overrides storage.path)")

	rootCmd.AddCommand(parseCmd, evalCmd, powersetCmd, readCmd, replCmd, storeCmd)
}

func newApp(logOut io.Writer) (*app, error) {
	cfg := config.Default()
	if configPathFlag != "" {
		var err error
		if cfg, err = config.Read(configPathFlag); err != nil {
			return nil, err
		}
	}
	if dbPathFlag != "" {
		cfg.Storage.Path = dbPathFlag
	}

	logger := logging.New(logOut, cfg.Log, cfg.Session.ID)
	slog.SetDefault(logger)

	var backend storage.Backend
	if cfg.Storage.Path != "" {
		bolt, err := storage.NewBoltBackend(cfg.Storage.Path, cfg.Storage.Bucket)
		if err != nil {
			return nil, err
		}
		backend = bolt
	}
	store := storage.NewStore(storage.NewEngine(cfg.Storage.Shards), backend, logger)
	if err := store.Restore(); err != nil {
		store.Close()
		return nil, err
	}

	sets, err := cfg.ParseSets()
	if err != nil {
		store.Close()
		return nil, err
	}
	for name, s := range sets {
		if _, exists := store.Lookup(name); exists {
			continue
		}
		if err := store.Put(name, s); err != nil {
			store.Close()
			return nil, errors.Wrapf(err, "seed set %q", name)
		}
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		parser: cfg.Parser.NewParser(),
	}, nil
}

// Execute runs the command line and logs the failure, if any.
func Execute() error {
	err := execute()
	if err != nil {
		slog.Error("command failed", "error", err)
	}
	return err
}

// execute releases the app even when the command fails; cobra skips
// post-run hooks on error.
func execute() error {
	err := rootCmd.Execute()
	if current != nil {
		if cerr := current.store.Close(); err == nil {
			err = cerr
		}
		current = nil
	}
	return err
}
