package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/critcss"
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge mobile and desktop critical CSS into one mobile-first stylesheet",
	Long: `Combine two viewport-specific extraction results. The mobile CSS is
the unconditional baseline; desktop declarations that differ are wrapped
in a (min-width: 768px) override block.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCombine,
}

func init() {
	f := combineCmd.Flags()
	f.String("mobile", "", "Mobile critical CSS file (required)")
	f.String("desktop", "", "Desktop critical CSS file (required)")
	f.Bool("minify", false, "Minify the output")
	f.StringP("out", "o", "", "Output file (default stdout)")
	_ = combineCmd.MarkFlagRequired("mobile")
	_ = combineCmd.MarkFlagRequired("desktop")
}

func runCombine(cmd *cobra.Command, _ []string) error {
	mobilePath, _ := cmd.Flags().GetString("mobile")
	desktopPath, _ := cmd.Flags().GetString("desktop")

	mobileCSS, err := os.ReadFile(mobilePath)
	if err != nil {
		return fmt.Errorf("reading mobile CSS: %w", err)
	}
	desktopCSS, err := os.ReadFile(desktopPath)
	if err != nil {
		return fmt.Errorf("reading desktop CSS: %w", err)
	}

	engine := critcss.New(buildOptions(), buildLogger())
	out := engine.Combine(string(mobileCSS), string(desktopCSS))

	if getBoolWithFallback("minify", "combine.minify", false) {
		out = critcss.Minify(out)
	}

	return writeOutput(cmd, out, "combine.out")
}
