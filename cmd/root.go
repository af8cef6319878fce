package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"kodibot/internal/config"
	"kodibot/internal/kodi"
	"kodibot/internal/logger"
)

var (
	verbose     bool
	testMode    bool
	configPath  string
	envFile     string
	kodiHost    string
	kodiLogin   string
	kodiPass    string
	callTimeout time.Duration
	log         = logger.New()
)

var rootCmd = &cobra.Command{
	Use:   "kodibot",
	Short: "kodibot - control a Kodi media center from chat commands",
	Long: `kodibot translates short chat commands into Kodi JSON-RPC calls.
Run commands directly from the shell, serve them to a chat framework over a
webhook, or drive the media center from an interactive remote.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.SetSilentMode(false)
			logger.SetLevel(logger.LOG_DEBUG)
		}
		log = logger.New()
		return loadEnvFile(envFile)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test", false, "log JSON-RPC calls instead of sending them")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file providing KODI_* variables")
	rootCmd.PersistentFlags().DurationVar(&callTimeout, "timeout", 30*time.Second, "bound on each JSON-RPC round trip (0 disables)")
	bindConnectionFlags(rootCmd.PersistentFlags())
}

// bindConnectionFlags registers the flags read by resolveConfig
func bindConnectionFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&configPath, "config", "c", "kodi.yaml", "configuration file (HOST, LOGIN, PASSWORD)")
	flags.StringVarP(&kodiHost, "host", "H", "", "Kodi JSON-RPC endpoint, overrides HOST")
	flags.StringVar(&kodiLogin, "login", "", "Kodi web server login, overrides LOGIN")
	flags.StringVar(&kodiPass, "password", "", "Kodi web server password, overrides PASSWORD")
}

// loadEnvFile loads a dotenv file if one exists. Variables already set in
// the environment are kept.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("Loaded env file")
	return nil
}

// resolveConfig layers the config file, KODI_* variables and flags over the
// defaults, in that order
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	fileOverrides, err := config.ReadOverrides(configPath)
	if err != nil {
		return config.Config{}, err
	}

	flagOverrides := map[string]string{}
	flags := cmd.Flags()
	if flags.Changed("host") {
		flagOverrides[config.KeyHost] = kodiHost
	}
	if flags.Changed("login") {
		flagOverrides[config.KeyLogin] = kodiLogin
	}
	if flags.Changed("password") {
		flagOverrides[config.KeyPassword] = kodiPass
	}

	cfg, err := config.Merge(config.Defaults(), config.Overlay(fileOverrides, config.EnvOverrides(), flagOverrides))
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Debug().
		Str("config_path", configPath).
		Str("host", cfg.Host).
		Str("login", cfg.Login).
		Msg("Resolved configuration")

	return cfg, nil
}

// newHandlers builds chat command handlers from the resolved configuration
func newHandlers(cmd *cobra.Command) (*kodi.Handlers, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return kodi.NewHandlers(cfg, kodi.WithDebug(verbose), kodi.WithTest(testMode)), nil
}

// commandContext bounds a single command by --timeout
func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if callTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, callTimeout)
}
