package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/presupuesto/internal/article"
	"github.com/SergeyParamoshkin/presupuesto/internal/config"
	"github.com/SergeyParamoshkin/presupuesto/internal/diag"
	"github.com/SergeyParamoshkin/presupuesto/internal/store"
)

var (
	// Version is set at build time.
	Version = "dev"

	cfgFile string
	jsonOut bool

	v = viper.New()
)

// rootCmd runs the interactive menu when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "presupuesto",
	Short: "Budget article registry backed by Redis/KeyDB",
	Long: `presupuesto keeps budget line items ("articles") in a Redis compatible
key-value store. Without a subcommand it starts the interactive menu.

Configuration (in order of priority):
  1. Command-line flags (--redis-host, --redis-port, ...)
  2. Environment variables (PRESUPUESTO_REDIS_HOST, PRESUPUESTO_REDIS_PORT, ...)
  3. Config file (~/.presupuesto.yaml)`,
	SilenceUsage: true,
	RunE:         runMenu,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "presupuesto version %s\n", Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ~/.presupuesto.yaml)")
	flags.String("redis-host", "localhost", "store host (or PRESUPUESTO_REDIS_HOST)")
	flags.Int("redis-port", 6379, "store port (or PRESUPUESTO_REDIS_PORT)")
	flags.Int("redis-db", 0, "store database index (or PRESUPUESTO_REDIS_DB)")
	flags.String("redis-password", "", "store password (or PRESUPUESTO_REDIS_PASSWORD)")
	flags.String("key-prefix", "", "scope article keys with this prefix (or PRESUPUESTO_REDIS_KEY_PREFIX)")
	flags.Bool("memory", false, "keep articles in process memory instead of the store")
	flags.String("log-level", "", "log level (default warn, info for serve)")
	flags.String("log-output", "stderr", "log output: stderr, stdout or a file path")

	bind(config.KeyRedisHost, "redis-host")
	bind(config.KeyRedisPort, "redis-port")
	bind(config.KeyRedisDB, "redis-db")
	bind(config.KeyRedisPassword, "redis-password")
	bind(config.KeyRedisKeyPrefix, "key-prefix")
	bind(config.KeyMemory, "memory")
	bind(config.KeyLogLevel, "log-level")
	bind(config.KeyLogOutput, "log-output")

	rootCmd.AddCommand(versionCmd)
}

func bind(key, flag string) {
	_ = v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

// initConfig initializes viper configuration.
func initConfig() {
	config.SetDefaults(v)

	home, _ := os.UserHomeDir()
	if err := config.ReadFile(v, cfgFile, home); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// env is what every command needs: configuration, a logger and the service.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	store  store.Store
	svc    *article.Service
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Sugar().Warnw("close store", "error", err)
		}
	}
	_ = e.logger.Sync()
}

// setup loads configuration and opens the single store connection shared by
// all operations of the command. Only configuration errors fail setup.
func setup(ctx context.Context, defaultLevel string, metrics article.Recorder) (*env, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger, err := diag.NewLogger(cfg.Log.LevelOr(defaultLevel), cfg.Log.Output)
	if err != nil {
		return nil, err
	}
	sugar := logger.Sugar()

	var st store.Store
	if cfg.Memory {
		st = store.NewMemory()
	} else {
		// an unreachable store is reported by each operation, not here
		r := store.DialRedis(cfg.Redis.Store())
		if err := r.Ping(ctx); err != nil {
			sugar.Warnw("store unreachable", "addr", cfg.Redis.Store().Addr(), "error", err)
		}
		st = r
	}
	sugar.Infow("store ready", "memory", cfg.Memory, "addr", cfg.Redis.Store().Addr(), "db", cfg.Redis.DB)

	svc := article.NewService(st,
		article.WithLogger(sugar),
		article.WithRecorder(metrics),
	)

	return &env{cfg: cfg, logger: logger, store: st, svc: svc}, nil
}

// Output helpers

// printJSON outputs data as formatted JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// newTable creates a new tabwriter for formatted output.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
