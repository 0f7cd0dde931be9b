package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/Otixa/luajs"
	"github.com/Otixa/luajs/engine"
	"github.com/Otixa/luajs/internal/ui"
	"github.com/spf13/cobra"
)

var runEval string
var runName string
var runAsync bool
var runJSON bool

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or an inline chunk",
	Long: `Run a script in a fresh interpreter state and print its result.

The script is read from the given file, or from --eval. With --async the
script is queued and the command waits on its future instead of blocking
in the synchronous entry point.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (runEval == "") == (len(args) == 0) {
			return fmt.Errorf("provide exactly one of a script file or --eval")
		}

		s, err := newState(cmd.OutOrStdout(), runName)
		if err != nil {
			return err
		}
		defer s.Close()

		var v engine.Value
		switch {
		case runAsync:
			var f *luajs.Future
			if runEval != "" {
				f = s.DoString(runEval)
			} else {
				f = s.DoFile(args[0])
			}
			v, err = f.Await(cmd.Context())
		case runEval != "":
			v, err = s.DoStringSync(runEval)
		default:
			v, err = s.DoFileSync(args[0])
		}
		if err != nil {
			ui.FormatError(cmd.ErrOrStderr(), err)
			return errScriptFailed
		}

		if runJSON {
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		ui.FormatResult(cmd.OutOrStdout(), v)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "Inline source to run instead of a file")
	runCmd.Flags().StringVar(&runName, "name", "", "Name for the interpreter state (generated if empty)")
	runCmd.Flags().BoolVar(&runAsync, "async", false, "Queue the script and await its future")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(runCmd)
}
