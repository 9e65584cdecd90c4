package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/eiannone/keyboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mr-Slinky/UglyTetris/terminal"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[?25h\033[2J\033[H"
)

func init() {
	rootCmd.AddCommand(terminalCmd)
}

var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Play in the terminal instead of a window",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		restore := startRawConsole()
		defer restore()
		defer keyboard.Close()

		terminal.New(&terminal.Options{
			Logger: newLogger(),
			Game:   gameOptions(),
		}).Start()
	},
}

func startRawConsole() func() {
	fmt.Print(hideCursor)
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Error setting terminal to raw mode: %v", err)
	}

	return func() {
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			log.Fatalf("unable to restore the terminal original state: %v", err)
		}
		fmt.Print(showCursor)
	}
}
