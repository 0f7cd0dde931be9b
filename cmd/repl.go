package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Otixa/luajs"
	"github.com/Otixa/luajs/engine"
	"github.com/Otixa/luajs/internal/ui"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const replHelp = `Commands:
  :help          show this help
  :global NAME   print a global variable
  :quit          leave the REPL`

var replName string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session on a single interpreter state",
	Long: `Start an interactive session. Every line runs in the same state, so
globals persist between lines. History is kept in the configured history
file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		s, err := newState(out, replName)
		if err != nil {
			return err
		}
		defer s.Close()

		ui.FormatHeader(out, s)

		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		histPath := cfg.HistoryPath()
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		prompt := s.Engine() + "> "
		for {
			line, err := ln.Prompt(prompt)
			if err != nil {
				if errors.Is(err, liner.ErrPromptAborted) {
					continue
				}
				// io.EOF on Ctrl+D
				fmt.Fprintln(out)
				break
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			ln.AppendHistory(line)

			if strings.HasPrefix(line, ":") {
				if handleReplCommand(out, s, line) {
					break
				}
				continue
			}

			v, err := evalLine(s, line)
			if err != nil {
				ui.FormatError(out, err)
				continue
			}
			if v != nil {
				ui.FormatResult(out, v)
			}
		}

		if histPath != "" {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}
		return nil
	},
}

// evalLine runs a REPL line. Lua lines that do not parse as a chunk are
// retried as an expression so `1 + 1` prints 2.
func evalLine(s *luajs.State, line string) (engine.Value, error) {
	v, err := s.DoStringSync(line)
	if err == nil || s.Engine() != "lua" {
		return v, err
	}
	var engErr *engine.Error
	if !errors.As(err, &engErr) || engErr.Phase != engine.PhaseParse {
		return v, err
	}
	if v, exprErr := s.DoStringSync("return " + line); exprErr == nil {
		return v, nil
	}
	return v, err
}

// handleReplCommand runs a colon command and reports whether to exit.
func handleReplCommand(out io.Writer, s *luajs.State, line string) (exit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprintln(out, replHelp)
	case ":global", ":g":
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: :global NAME")
			return false
		}
		v, err := s.GetGlobal(fields[1])
		if err != nil {
			ui.FormatError(out, err)
			return false
		}
		ui.FormatResult(out, v)
	default:
		fmt.Fprintf(out, "unknown command %s (try :help)\n", fields[0])
	}
	return false
}

func init() {
	replCmd.Flags().StringVar(&replName, "name", "", "Name for the interpreter state (generated if empty)")

	rootCmd.AddCommand(replCmd)
}
