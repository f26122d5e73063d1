// Package cli implements the command-line interface of momentsens.
package cli

import (
	"fmt"
	"os"

	"github.com/estimagic/momentsens/internal/config"
	"github.com/estimagic/momentsens/internal/trace"
	"github.com/estimagic/momentsens/internal/util"
	"github.com/spf13/cobra"
)

// parseOutputFormat takes "table" or "json" and returns an
// outputFormat enum value.
func parseOutputFormat(formatStr string) outputFormat {
	switch formatStr {
	case "table":
		return outputFormatTable
	case "json":
		return outputFormatJSON
	default:
		util.Die(`Error: invalid format %#v (must be "table" or "json")`, formatStr)
		return 0
	}
}

// version is set at build time to a Git tag or the string
// "development version" when not tagging a release.
var version = "development version"

// getVersion returns a string that can be printed when calling
// 'momentsens --version'.
func getVersion() string {
	return "momentsens " + version
}

// DoCLI reads the command-line arguments and runs the appropriate
// code, then exits the process (or returns to indicate normal exit).
func DoCLI() {
	if trace.MaybeTrace(version) {
		defer trace.Stop()
	}
	defer util.SyncLogger()

	var configPath string
	var formatStr string
	var outDir string
	var titles []string
	var measures []string
	var force bool
	var noCache bool
	var settings config.Settings

	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:     "momentsens",
		Short:   "Plot the sensitivity of estimated parameters to moments",
		Version: getVersion(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			settings, err = config.Load(configPath)
			if err != nil {
				util.Die("%s", err)
			}
			config.Verbose = config.Verbose || settings.Verbose
			if err := util.SetupLogger(config.Verbose); err != nil {
				util.Die("%s", err)
			}

			flags := cmd.Flags()
			if flags.Changed("out-dir") {
				settings.OutDir = outDir
			}
			if flags.Changed("titles") {
				settings.Titles = titles
			}
			if flags.Changed("measures") {
				settings.Measures = measures
			}
			if flags.Changed("no-cache") {
				settings.NoCache = noCache
			}
		},
	}
	rootCmd.SetVersionTemplate(`{{.Version}}` + "\n")
	rootCmd.PersistentFlags().StringVarP(
		&configPath, "config", "c", "",
		fmt.Sprintf("settings file (default %s, if present)", config.DefaultFile),
	)
	rootCmd.PersistentFlags().BoolVarP(
		&config.Quiet, "quiet", "q", false, "don't show progress messages",
	)
	rootCmd.PersistentFlags().BoolVar(
		&config.Verbose, "verbose", false, "log debugging information to stderr",
	)
	rootCmd.PersistentFlags().BoolP(
		"help", "h", false, "display command-line usage",
	)
	rootCmd.PersistentFlags().BoolP(
		"version", "v", false, "display command version",
	)

	addSelectionFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringSliceVarP(
			&measures, "measures", "m", []string{},
			"measure columns to plot (comma-separated; default: the last N columns for N tables)",
		)
	}

	cmdPlot := &cobra.Command{
		Use:   "plot SOURCE...",
		Short: "Draw one sensitivity figure per table",
		Long: `Draw one sensitivity figure per table.

A SOURCE is a .csv, .json or .yaml file, sqlite://PATH?table=NAME
or bigquery://PROJECT?query=SQL. Figure i is written to
sensitivity_plot<i>.png.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			span, ctx := trace.StartSpanFromExistingContext("momentsens plot")
			defer span.Finish()
			runPlot(ctx, settings, args, force)
		},
	}
	cmdPlot.Flags().SortFlags = false
	cmdPlot.Flags().StringVarP(
		&outDir, "out-dir", "o", ".", "directory to write the figures to",
	)
	cmdPlot.Flags().StringSliceVarP(
		&titles, "titles", "t", []string{},
		`subplot titles, one per parameter, or "regression" (default: the parameter names)`,
	)
	addSelectionFlags(cmdPlot)
	cmdPlot.Flags().BoolVarP(
		&force, "force", "f", false, "redraw figures even if up to date",
	)
	cmdPlot.Flags().BoolVar(
		&noCache, "no-cache", false, "don't read or write the render cache",
	)
	rootCmd.AddCommand(cmdPlot)

	cmdReshape := &cobra.Command{
		Use:   "reshape SOURCE...",
		Short: "Show the tables as they would be plotted",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			span, ctx := trace.StartSpanFromExistingContext("momentsens reshape")
			defer span.Finish()
			outputFormat := parseOutputFormat(formatStr)
			runReshape(ctx, settings, args, outputFormat)
		},
	}
	cmdReshape.Flags().SortFlags = false
	addSelectionFlags(cmdReshape)
	cmdReshape.Flags().StringVarP(
		&formatStr, "format", "f", "table", `output format ("table" or "json")`,
	)
	rootCmd.AddCommand(cmdReshape)

	cmdInspect := &cobra.Command{
		Use:   "inspect SOURCE...",
		Short: "Show the tables as loaded",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			span, ctx := trace.StartSpanFromExistingContext("momentsens inspect")
			defer span.Finish()
			outputFormat := parseOutputFormat(formatStr)
			runInspect(ctx, args, outputFormat)
		},
	}
	cmdInspect.Flags().SortFlags = false
	cmdInspect.Flags().StringVarP(
		&formatStr, "format", "f", "table", `output format ("table" or "json")`,
	)
	rootCmd.AddCommand(cmdInspect)

	specialArgs := map[string](func()){}
	for _, helpFlag := range []string{"-help", "-?"} {
		specialArgs[helpFlag] = func() {
			rootCmd.Usage()
			os.Exit(0)
		}
	}
	for _, versionFlag := range []string{"-version", "-V"} {
		specialArgs[versionFlag] = func() {
			fmt.Println(getVersion())
			os.Exit(0)
		}
	}

	if len(os.Args) >= 2 {
		fn, ok := specialArgs[os.Args[1]]
		if ok {
			fn()
		}
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
