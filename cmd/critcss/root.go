package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "critcss",
	Short: "Critical CSS extraction for fast first paint",
	Long: `Compute the minimal CSS required to render the above-the-fold
portion of a page, given the page's stylesheets and the tag/class/id
signals observed among above-fold elements.`,
	// Default behavior: run extract when no subcommand is given.
	// loadConfig must run here because PreRunE of extractCmd is not
	// triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runExtract(extractCmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress stats output (CSS only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".critcss.yaml", "Config file path")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(combineCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
