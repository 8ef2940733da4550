package cmd

import (
	"fmt"
	"log"
	"net/url"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriRoast/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage backend profiles",
	Long:  `Manage backend profiles: the generation server base URL and an optional API key.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			printProfile(cfg.Profiles[name], "    ")
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		profile := mustProfile(cfg, args[0])

		fmt.Printf("Profile: %s\n", args[0])
		printProfile(profile, "")
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			profileName = ask(promptui.Prompt{Label: "Profile name"})
		}
		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		cfg.Profiles[profileName] = askProfile(config.Profile{BaseURL: config.DefaultBaseURL})
		mustSave(cfg)
		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		profileName := profileArg(cfg, args, "Select profile to edit", cfg.ProfileNames())

		cfg.Profiles[profileName] = askProfile(mustProfile(cfg, profileName))
		mustSave(cfg)
		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		profileName := profileArg(cfg, args, "Select profile to delete", cfg.ProfileNames())
		mustProfile(cfg, profileName)

		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		removeProfile(cfg, profileName)
		mustSave(cfg)
		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		others := make([]string, 0, len(cfg.Profiles))
		for _, name := range cfg.ProfileNames() {
			if name != cfg.ActiveProfile {
				others = append(others, name)
			}
		}
		if len(args) == 0 && len(others) == 0 {
			fmt.Println("No other profiles available to switch to")
			return
		}

		profileName := profileArg(cfg, args, "Select profile to switch to", others)
		if err := cfg.SwitchProfile(profileName); err != nil {
			log.Fatalf("%v", err)
		}
		mustSave(cfg)
		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func mustSave(cfg *config.Config) {
	if err := cfg.Save(); err != nil {
		log.Fatalf("Failed to save config: %v", err)
	}
}

func mustProfile(cfg *config.Config, name string) config.Profile {
	profile, exists := cfg.Profiles[name]
	if !exists {
		log.Fatalf("Profile '%s' does not exist", name)
	}
	return profile
}

func printProfile(profile config.Profile, indent string) {
	fmt.Printf("%sBase URL: %s\n", indent, profile.BaseURL)
	key := "Not set"
	if profile.APIKey != "" {
		key = "Set (hidden for security)"
	}
	fmt.Printf("%sAPI Key: %s\n", indent, key)
}

// profileArg returns the name given on the command line, or lets the user
// pick one of choices.
func profileArg(cfg *config.Config, args []string, label string, choices []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if len(choices) == 0 {
		log.Fatalf("No profiles available")
	}
	sel := promptui.Select{Label: label, Items: choices}
	_, name, err := sel.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func ask(p promptui.Prompt) string {
	value, err := p.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	return value
}

// askProfile prompts for every profile field, offering current values as defaults
func askProfile(current config.Profile) config.Profile {
	return config.Profile{
		BaseURL: ask(promptui.Prompt{
			Label:    "Base URL",
			Default:  current.BaseURL,
			Validate: validateBaseURL,
		}),
		APIKey: ask(promptui.Prompt{
			Label:   "API Key (optional)",
			Default: current.APIKey,
			Mask:    '*',
		}),
	}
}

// removeProfile deletes name. Deleting the active profile activates the
// next one by name, or a fresh default when none is left.
func removeProfile(cfg *config.Config, name string) {
	delete(cfg.Profiles, name)
	if cfg.ActiveProfile != name {
		return
	}
	if remaining := cfg.ProfileNames(); len(remaining) > 0 {
		cfg.ActiveProfile = remaining[0]
		return
	}
	def := config.NewDefaultConfig()
	cfg.Profiles = def.Profiles
	cfg.ActiveProfile = def.ActiveProfile
}

func validateBaseURL(input string) error {
	u, err := url.Parse(input)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("base URL needs a host")
	}
	return nil
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
