package cmd

import (
	"github.com/Otixa/luajs"
	"github.com/Otixa/luajs/internal/ui"
	"github.com/spf13/cobra"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List the available script engines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.FormatEngines(cmd.OutOrStdout(), luajs.Engines(), cfg.Engine)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enginesCmd)
}
