package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .critcss.yaml config file",
	Long:  `Create a .critcss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".critcss.yaml"); err == nil && !force {
			return fmt.Errorf(".critcss.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".critcss.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .critcss.yaml")
		return nil
	},
}

const defaultConfig = `# critcss configuration

# Shared settings
verbose: false
color: false

# Declaration admission (default: strip all four families)
include:
  shadows: false
  animations: false
  transitions: false
  hover: false

# Extraction settings
extract:
  include:
    - "**/*.css"
  snapshot: ""             # DOM snapshot JSON with observed signals
  minify: false
  out: ""                  # empty = stdout

# Combination settings
combine:
  minify: false
  out: ""                  # empty = stdout
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
