// internal/cli/root.go
package cardsmith

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cardsmith/internal/appconfig"
	"cardsmith/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "cardsmith",
	Short: "cardsmith — turn raw vocabulary exports into clean flashcard datasets",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag
		//    so both pflags and viper reflect the same, final value.
		for name, val := range map[string]bool{
			"debug":    cfg.Debug,
			"progress": cfg.Progress,
			"stream":   cfg.Streaming,
			"no-clean": cfg.NoClean,
		} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}
		cfg.Debug = viper.GetBool("debug")
		cfg.Progress = viper.GetBool("progress")
		cfg.Streaming = viper.GetBool("stream")
		cfg.NoClean = viper.GetBool("no-clean")
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = viper.GetString("log-file")
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		return logging.Init(cfg.LogFilePath())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default config/config.json)")

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().Bool("progress", false, "render a live progress display")
	rootCmd.PersistentFlags().Bool("stream", false, "use streaming backend responses")
	rootCmd.PersistentFlags().Bool("no-clean", false, "skip the cleaned_definition post-fixes")
	rootCmd.PersistentFlags().String("log-file", "", "log file path")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("progress", rootCmd.PersistentFlags().Lookup("progress"))
	_ = viper.BindPFlag("stream", rootCmd.PersistentFlags().Lookup("stream"))
	_ = viper.BindPFlag("no-clean", rootCmd.PersistentFlags().Lookup("no-clean"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// GetConfig returns the loaded application configuration for other commands.
func GetConfig() *appconfig.Config {
	return currentConfig
}
