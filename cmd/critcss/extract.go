package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/critcss"
)

var extractCmd = &cobra.Command{
	Use:     "extract [glob patterns...]",
	Aliases: []string{"ext"},
	Short:   "Extract critical CSS from stylesheets",
	Long: `Parse the stylesheets matched by the glob patterns, keep the rules
relevant to the observed above-fold signals, and print the resulting
critical CSS.

Signals come from a DOM snapshot JSON file ({"tags":[],"classes":[],"ids":[]})
or from the --tags/--classes/--ids flags.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.String("snapshot", "", "DOM snapshot JSON file with observed signals")
	f.StringSlice("tags", nil, "Above-fold tag names")
	f.StringSlice("classes", nil, "Above-fold class names")
	f.StringSlice("ids", nil, "Above-fold id values")
	f.Bool("minify", false, "Minify the output")
	f.StringP("out", "o", "", "Output file (default stdout)")
	f.Bool("include-shadows", false, "Admit shadow properties")
	f.Bool("include-animations", false, "Admit animation properties")
	f.Bool("include-transitions", false, "Admit transition properties")
	f.Bool("include-hover", false, "Admit :hover selectors")
}

func runExtract(cmd *cobra.Command, args []string) error {
	patterns := args
	if len(patterns) == 0 {
		patterns = getStringsWithFallback("include", "extract.include", []string{"**/*.css"})
	}

	cssText, stats, err := critcss.ScanStylesheets(patterns)
	if err != nil {
		return fmt.Errorf("scanning stylesheets: %w", err)
	}

	signals, err := loadSignals(cmd)
	if err != nil {
		return err
	}

	engine := critcss.New(buildOptions(), buildLogger())
	result := engine.Extract(cssText, signals)

	out := result.CSS
	if getBoolWithFallback("minify", "extract.minify", false) {
		out = critcss.Minify(out)
	}

	if err := writeOutput(cmd, out, "extract.out"); err != nil {
		return err
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		printExtractStats(stats, result, len(out))
	}
	return nil
}

// loadSignals builds the signal set from the snapshot file and/or the
// explicit flag lists.
func loadSignals(cmd *cobra.Command) (critcss.Signals, error) {
	snapshot := getStringWithFallback("snapshot", "extract.snapshot", "")
	if snapshot != "" {
		signals, err := critcss.LoadSnapshot(snapshot)
		if err != nil {
			return critcss.Signals{}, fmt.Errorf("loading snapshot: %w", err)
		}
		return signals, nil
	}

	tags, _ := cmd.Flags().GetStringSlice("tags")
	classes, _ := cmd.Flags().GetStringSlice("classes")
	ids, _ := cmd.Flags().GetStringSlice("ids")
	return critcss.NewSignals(tags, classes, ids), nil
}

// writeOutput writes CSS to --out or stdout. outConfigKey is the
// per-command config file key backing the flag.
func writeOutput(cmd *cobra.Command, css, outConfigKey string) error {
	outPath := getStringWithFallback("out", outConfigKey, "")
	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), css)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(css), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

func printExtractStats(stats critcss.ScanStats, result critcss.ExtractResult, outBytes int) {
	useColors := getBoolWithFallback("color", "color", false)

	fmt.Fprintln(os.Stderr, renderStyle(styleGreen, "Critical CSS extracted", useColors))
	fmt.Fprintf(os.Stderr, "  Stylesheets scanned: %d (skipped %d)\n", stats.FilesScanned, stats.FilesSkipped)
	fmt.Fprintf(os.Stderr, "  Critical rules: %d\n", len(result.Rules))
	fmt.Fprintf(os.Stderr, "  Output size: %d bytes\n", outBytes)
	if len(result.Rules) == 0 {
		fmt.Fprintln(os.Stderr, renderStyle(styleYellow, "  No rules matched the provided signals", useColors))
	}
}
