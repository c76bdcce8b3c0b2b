package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/blockpool/pool"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	capacity int
	mapped   bool
	paranoid bool
)

// printer formats counts with digit grouping.
var printer = message.NewPrinter(language.English)

var rootCmd = &cobra.Command{
	Use:   "poolctl",
	Short: "Exercise a fixed-capacity block pool",
	Long: `poolctl creates a block pool, replays allocate and free operations
against it and reports per-step results, capacity usage and the block chain.

Operations:
  aSIZE   allocate SIZE bytes
  fINDEX  free the INDEX-th successful allocation (0-based)
  reset   discard every block`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log allocator events to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().IntVarP(&capacity, "capacity", "c", 1024, "Usable pool capacity in bytes")
	rootCmd.PersistentFlags().BoolVar(&mapped, "mmap", false, "Back the pool with an anonymous mapping")
	rootCmd.PersistentFlags().BoolVar(&paranoid, "paranoid", false, "Verify the block chain after every operation")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a debug logger on stderr in verbose mode and a discarding one otherwise.
func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// openPool builds a pool from the global flags.
func openPool() (*pool.Pool, error) {
	cfg := pool.DefaultConfig
	if mapped {
		cfg = pool.ConfigMapped
	}
	cfg.Name = "poolctl"
	cfg.Paranoid = paranoid
	cfg.Logger = newLogger()

	printVerbose("Creating %s-backed pool of %s bytes\n", cfg.Backing, num(capacity))
	p, err := pool.New(capacity, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return p, nil
}

// Helper functions for output

// num formats n with thousands separators.
func num(n int) string {
	return printer.Sprintf("%d", n)
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
