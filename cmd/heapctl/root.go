package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcraney2/HeapAllocator/heap/printer"
	"github.com/mcraney2/HeapAllocator/heap/script"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	relative bool

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Run and inspect a best-fit heap allocator",
	Long: `heapctl drives a boundary-tag, best-fit heap allocator. It executes
allocation scripts, walks through a built-in demo, and reports block lists,
usage totals and operation counters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&relative, "relative", false, "Print arena offsets instead of addresses")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

func setupLogger() {
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		return
	}
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runnerOptions builds script options from the global flags.
func runnerOptions() script.Options {
	opts := script.DefaultOptions()
	opts.Heap.Logger = logger
	opts.Logger = logger
	opts.Printer = printerOptions()
	return opts
}

func printerOptions() printer.Options {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	opts.Relative = relative
	return opts
}

// output returns where command output goes, honoring --quiet.
func output() io.Writer {
	if quiet {
		return io.Discard
	}
	return os.Stdout
}

// openScript parses the script at path, or stdin when path is "" or "-".
func openScript(path string) ([]script.Op, error) {
	if path == "" || path == "-" {
		printVerbose("Reading script from stdin\n")
		return script.Parse(os.Stdin)
	}
	printVerbose("Reading script: %s\n", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return script.Parse(f)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// scriptArg returns the optional script argument.
func scriptArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
