package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/briefcheck/internal/logging"
	"github.com/ppiankov/briefcheck/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// version is overridden at build time with -ldflags "-X ...cli.version=..."
var version = "v0.1.0"

var (
	cfgFile   string
	verbose   bool
	logFormat string
	configErr error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "briefcheck",
	Short: "Briefcheck - deterministic evidence analysis for investigation briefs",
	Long: `Briefcheck post-processes OSINT investigation briefs.

It recounts primary and secondary sources per evidence-strength theme,
maps how evidence is reused across the brief, flags structural
inconsistencies between sections, and lists what changed since the
previous version of the same brief.

Briefcheck does not judge whether a claim is true. Every result is a
structural check over the document and its evidence index.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "briefcheck %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.briefcheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if err := registerDefaults(model.DefaultConfig()); err != nil {
		configErr = err
		return
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".briefcheck"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// BRIEFCHECK_ANALYSIS_NETWORK_CENTRAL_TOP_N overrides analysis.network.central_top_n
	viper.SetEnvPrefix("BRIEFCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = fmt.Errorf("read config: %w", err)
		}
	}
}

// registerDefaults exposes every default to viper so env vars and the
// config file can override any key
func registerDefaults(cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("unmarshal defaults: %w", err)
	}

	setDefaults("", tree)
	return nil
}

func setDefaults(prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			setDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

// loadConfig returns the effective configuration: flags, env, file, defaults
func loadConfig() (*model.Config, error) {
	if configErr != nil {
		return nil, configErr
	}

	var cfg model.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	logging.Init(level, cfg.Logging.Format, cmd.ErrOrStderr())

	if file := viper.ConfigFileUsed(); file != "" {
		logging.New("cli").Debug("using config file", "path", file)
	}
	return nil
}
