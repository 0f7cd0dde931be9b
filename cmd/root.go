package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Otixa/luajs"
	"github.com/Otixa/luajs/engine"
	"github.com/Otixa/luajs/internal/config"
	"github.com/Otixa/luajs/internal/version"
	"github.com/spf13/cobra"
)

// errScriptFailed signals a script error that has already been reported.
var errScriptFailed = errors.New("script failed")

var configPath string
var engineName string
var logLevel string

// cfg is loaded before every command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "luajs",
	Short: "Run scripts in isolated interpreter states",
	Long: `luajs hosts Lua (and JavaScript or Tengo) interpreters. Every state has a
unique name and runs one script at a time; scripts can be executed
synchronously or queued asynchronously.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("engine") {
			loaded.Engine = engineName
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		if _, err := luajs.LookupEngine(loaded.Engine); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("luajs %s\n", version.String()))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "Script engine to use (lua, js, tengo)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// newState creates a state from the loaded configuration. Script output is
// written to out.
func newState(out io.Writer, name string) (*luajs.State, error) {
	eng, err := luajs.LookupEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	opts := []luajs.Option{
		luajs.WithEngine(eng),
		luajs.WithLogger(cfg.Logger()),
		luajs.WithEngineConfig(engine.Config{
			Libraries: cfg.Libraries,
			Stdout:    out,
		}),
	}
	if name != "" {
		opts = append(opts, luajs.WithName(name))
	}
	return luajs.New(opts...)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errScriptFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
