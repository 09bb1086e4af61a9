package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smallfx/luna/pkg/bridge"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a Lua expression and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  evalExpr,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func evalExpr(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(&Config{}, newLogger())
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.state.DoString("return (" + args[0] + ")"); err != nil {
		return fmt.Errorf("eval error: %w", err)
	}
	v := bridge.Pull(rt.state, -1)
	rt.state.SetTop(0)

	fmt.Println(renderValue(v))
	return nil
}
