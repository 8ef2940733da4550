package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriRoast/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the app",
	Long:  `Switch to the specified backend profile and immediately start the app.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if err := cfg.SwitchProfile(args[0]); err != nil {
			log.Fatalf("%v", err)
		}
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runApplication()
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
