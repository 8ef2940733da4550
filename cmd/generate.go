package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriRoast/internal/app"
	"github.com/Rorical/RoriRoast/internal/config"
	"github.com/Rorical/RoriRoast/internal/models"
	"github.com/Rorical/RoriRoast/internal/utils"
)

var (
	generateLanguage string
	generateImage    string
)

var generateCmd = &cobra.Command{
	Use:   "generate [text...]",
	Short: "Run one generation and print the result",
	Long: `Submit a single request to a tool and print what the tool would show.
Exits with status 1 when the outcome is an error.`,
	Example: `  roriroast generate --tool compliment --lang Spanish boss
  roriroast generate --tool roast --image selfie.jpg`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		tool := initialTool
		if tool == "" {
			tool = "roast"
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		surface, err := app.Generate(ctx, cfg, app.GenerateRequest{
			Tool:      tool,
			Language:  generateLanguage,
			ImagePath: generateImage,
			Text:      strings.Join(args, " "),
		})
		if err != nil {
			log.Fatalf("Generation failed: %v", err)
		}

		switch surface.Outcome.Kind {
		case models.Success:
			fmt.Println(utils.StripMarkdown(surface.Outcome.Text))
		case models.Error:
			fmt.Fprintln(os.Stderr, surface.Outcome.Text)
			os.Exit(1)
		}
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateLanguage, "lang", "l", "", "response language (default English)")
	generateCmd.Flags().StringVarP(&generateImage, "image", "i", "", "image to attach (roast only)")
	rootCmd.AddCommand(generateCmd)
}
