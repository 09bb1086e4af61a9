package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smallfx/luna/pkg/bridge"
)

var (
	flagConfig string
	flagStore  string
	flagCall   string
)

var runCmd = &cobra.Command{
	Use:   "run <script.lua>",
	Short: "Run a Lua script",
	Long: `Run a Lua script with the host builtins registered.

With --call, the named script global (or the config's entry function) is
invoked after the script body runs, with the arguments from the config
file, and its result is printed.

Examples:
  luna run script.lua
  luna run --store ./data script.lua
  luna run --config luna.yaml --call main script.lua`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "config file path")
	runCmd.Flags().StringVar(&flagStore, "store", "", "key-value store directory (overrides config)")
	runCmd.Flags().StringVar(&flagCall, "call", "", "script function to invoke after the script runs")

	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	if flagStore != "" {
		cfg.Store = flagStore
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	rt, err := newRuntime(cfg, newLogger())
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.state.DoString(string(source)); err != nil {
		return fmt.Errorf("script error: %w", err)
	}
	// Drop anything the chunk returned.
	rt.state.SetTop(0)

	entry := flagCall
	if entry == "" {
		entry = rt.cfg.Entry
	}
	if entry == "" {
		return nil
	}

	ret, err := bridge.Call(rt.state, entry, rt.entryArgs()...)
	if err != nil {
		return err
	}
	fmt.Println(renderValue(ret))
	return nil
}
