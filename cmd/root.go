package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriRoast/internal/app"
)

var initialTool string

var rootCmd = &cobra.Command{
	Use:   "roriroast",
	Short: "Roasts, toxic compliments, apologies and pickup lines in your terminal",
	Long: `RoriRoast is a terminal client for a family of AI text generators:
a roaster that also takes a photo, a toxic compliment generator, an apology
writer and an AI flirt.`,
	Run: func(cmd *cobra.Command, args []string) {
		runApplication()
	},
}

func runApplication() {
	application, err := app.NewApplication(app.Options{InitialTool: initialTool})
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&initialTool, "tool", "t", "", "tool to open with (roast, compliment, apology, flirt)")
	rootCmd.AddCommand(profileCmd)
}
