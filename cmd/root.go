package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/tbscreen/internal/config"
	"github.com/abhisek/tbscreen/internal/diagnostic"
	"github.com/abhisek/tbscreen/internal/logging"
	"github.com/abhisek/tbscreen/internal/model"
	"github.com/abhisek/tbscreen/internal/store"
)

const serviceName = "tbscreen"

var rootCmd = &cobra.Command{
	Use:   "tbscreen",
	Short: "Tuberculosis risk screening",
	Long: "tbscreen scores a patient's symptoms, asks a pre-trained classifier for a TB risk class " +
		"and prints the matching recommendation plan.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/tbscreen/config.yaml)")
	flags.String("model", "", "Path to model artifact (overrides TBSCREEN_MODEL_PATH)")
	flags.String("model-url", "", "Base URL of a remote inference endpoint (overrides TBSCREEN_MODEL_URL)")
	flags.String("db", "", "Path to SQLite run log (overrides TBSCREEN_DB env var)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Bool("no-history", false, "Do not record evaluations in the run log")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(labelsCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration: file, then environment, then flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		cfg, err = config.Load(p)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if p, _ := cmd.Flags().GetString("model"); p != "" {
		cfg.Model.Path = p
		cfg.Model.URL = ""
	}
	if u, _ := cmd.Flags().GetString("model-url"); u != "" {
		cfg.Model.URL = u
		cfg.Model.Path = ""
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DB = db
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	if off, _ := cmd.Flags().GetBool("no-history"); off {
		cfg.NoHistory = true
	}
	if f := cmd.Flags().Lookup("parallel"); f != nil && f.Changed {
		n, _ := cmd.Flags().GetInt("parallel")
		cfg.Parallel = n
	}

	return cfg, cfg.Validate()
}

// env is what every command needs once configuration is resolved.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = e.logger.Sync()
}

// setup loads configuration and builds the logger. When withStore is set
// it also opens the run log, unless history is disabled.
func setup(cmd *cobra.Command, withStore bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	e := &env{cfg: cfg, logger: logger}
	if !withStore || cfg.NoHistory {
		return e, nil
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	e.store, err = store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return e, nil
}

// resolveDBPath returns the configured run-log path, or the default XDG
// path when none is set.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// classifier returns the configured model source, or nil when none is set.
func (e *env) classifier() model.Classifier {
	switch {
	case e.cfg.Model.Path != "":
		return model.FileLoader(e.cfg.Model.Path)
	case e.cfg.Model.URL != "":
		return model.NewRemote(e.cfg.Model.URL, e.cfg.Model.Timeout, e.logger)
	default:
		return nil
	}
}

// pipeline builds the evaluation pipeline for e.
func (e *env) pipeline() *diagnostic.Pipeline {
	opts := []diagnostic.Option{diagnostic.WithLogger(e.logger)}
	if e.store != nil {
		opts = append(opts, diagnostic.WithRecorder(e.store.Runs()))
	}
	return diagnostic.New(e.classifier(), opts...)
}
