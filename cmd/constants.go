package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/Otixa/luajs"
	"github.com/Otixa/luajs/internal/ui"
	"github.com/spf13/cobra"
)

var constantsJSON bool

var constantsCmd = &cobra.Command{
	Use:   "constants [name]",
	Short: "List the exported interpreter constants",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			v, ok := luajs.LookupConstant(args[0])
			if !ok {
				return fmt.Errorf("unknown constant: %q", args[0])
			}
			fmt.Fprintln(out, v)
			return nil
		}

		if constantsJSON {
			m := make(map[string]int, len(luajs.Constants))
			for _, c := range luajs.Constants {
				m[c.Name] = c.Value
			}
			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		ui.FormatConstants(out, luajs.Constants)
		return nil
	},
}

func init() {
	constantsCmd.Flags().BoolVar(&constantsJSON, "json", false, "Print the constants as a JSON object")

	rootCmd.AddCommand(constantsCmd)
}
