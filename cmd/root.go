// Package cmd wires the front-ends into a CLI. The root command runs
// the windowed game, subcommands cover the terminal renderer and the
// shape catalog.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mr-Slinky/UglyTetris/audio"
	"github.com/Mr-Slinky/UglyTetris/tetris"
	"github.com/Mr-Slinky/UglyTetris/window"
)

var rootCmd = &cobra.Command{
	Use:   "uglytetris",
	Short: "A falling-blocks game with a deliberately oversized field",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var sounds window.Sounds
		if viper.GetBool("sound") {
			system, err := audio.NewSystem()
			if err != nil {
				fmt.Fprintln(os.Stderr, "audio unavailable, continuing muted:", err)
			} else {
				sounds = system
			}
		}
		ui, err := window.New(window.Options{
			Rows:             viper.GetInt("rows"),
			Cols:             viper.GetInt("cols"),
			UpdatesPerSecond: viper.GetInt("updates-per-second"),
			FullCatalog:      viper.GetBool("full-catalog"),
			GridLines:        viper.GetBool("grid-lines"),
			Logger:           newLogger(),
			Sounds:           sounds,
		})
		if err != nil {
			return err
		}
		return ui.Run()
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.Int("rows", 35, "Field height in cells")
	pf.Int("cols", 20, "Field width in cells")
	pf.Int("updates-per-second", 5, "Gravity drops per second")
	pf.Bool("full-catalog", false, "Draw pieces from the whole catalog, pentominoes included")
	pf.String("log-file", "", "Write logs to this file instead of discarding them")
	viper.BindPFlag("rows", pf.Lookup("rows"))
	viper.BindPFlag("cols", pf.Lookup("cols"))
	viper.BindPFlag("updates-per-second", pf.Lookup("updates-per-second"))
	viper.BindPFlag("full-catalog", pf.Lookup("full-catalog"))
	viper.BindPFlag("log-file", pf.Lookup("log-file"))

	f := rootCmd.Flags()
	f.Bool("grid-lines", true, "Draw cell grid lines")
	f.Bool("sound", true, "Play sound effects")
	viper.BindPFlag("grid-lines", f.Lookup("grid-lines"))
	viper.BindPFlag("sound", f.Lookup("sound"))
}

func initConfig() {
	viper.SetConfigName("uglytetris")
	viper.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "uglytetris"))
	}
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config: ", err)
		}
	}
	viper.SetEnvPrefix("UGLYTETRIS")
	viper.AutomaticEnv()
}

// newLogger writes to the log-file setting, or swallows everything.
// Both front-ends draw over the whole screen, logging there would
// wreck the frame.
func newLogger() *slog.Logger {
	path := viper.GetString("log-file")
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening log file: ", err)
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}

func gameOptions() tetris.Options {
	return tetris.Options{
		Rows:             viper.GetInt("rows"),
		Cols:             viper.GetInt("cols"),
		UpdatesPerSecond: viper.GetInt("updates-per-second"),
		FullCatalog:      viper.GetBool("full-catalog"),
		Logger:           newLogger(),
	}
}
