// internal/cli/show_config.go
package cardsmith

import (
	"os"

	"github.com/spf13/cobra"

	"cardsmith/internal/appconfig"
)

// showConfigCmd prints the merged configuration, ensuring the JSON config is
// loaded properly and overridden by flags accordingly.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		file := ""
		if cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(os.Stdout, file, cfg)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
