package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khanhdv/llm-cli/internal/config"
)

// NewConfigCmd creates the config subcommand with its init and path helpers.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file search paths in priority order",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.GetConfigPaths() {
				marker := ""
				if _, err := os.Stat(p); err == nil {
					marker = " (exists)"
				}
				fmt.Printf("%s%s\n", p, marker)
			}
		},
	})

	return configCmd
}
