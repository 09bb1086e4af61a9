// Package main is the luna script runner.
//
// Usage:
//
//	luna [flags] <command> [args]
//
// Commands:
//
//	run      - Run a Lua script, optionally invoking a script function
//	eval     - Evaluate a Lua expression and print the result
//	version  - Show version information
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "luna",
	Short: "Lua script runner with host value bridging",
	Long: `luna - run Lua scripts against a set of host builtins.

Scripts see a global 'host' table with JSON, jq, env, time, logging,
uuid and key-value builtins. Values crossing the host boundary are
converted through a closed tagged representation, so script tables come
back to the host as real data structures.

Examples:
  luna run script.lua
  luna run --config luna.yaml --call main script.lua
  luna eval '1 + 2'
  luna eval '{greeting = "hello", n = 42}'`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("luna", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the host-side diagnostic logger. Script output goes
// to stdout; diagnostics stay on stderr.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
