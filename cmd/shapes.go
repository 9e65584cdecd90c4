package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Mr-Slinky/UglyTetris/tetris"
)

func init() {
	rootCmd.AddCommand(shapesCmd)
}

var emph = color.New(color.FgBlue, color.Bold).SprintFunc()

var shapeColors = map[tetris.Type]*color.Color{
	tetris.TypeI: color.New(color.FgCyan),
	tetris.TypeO: color.New(color.FgYellow),
	tetris.TypeT: color.New(color.FgMagenta),
	tetris.TypeS: color.New(color.FgGreen),
	tetris.TypeZ: color.New(color.FgRed),
	tetris.TypeJ: color.New(color.FgBlue),
	tetris.TypeL: color.New(color.FgHiYellow),
}

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Print the piece catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tets, err := tetris.OneOfEach()
		if err != nil {
			return err
		}
		for i, t := range tetris.AllTypes() {
			tet := tets[i]
			c, ok := shapeColors[t]
			if !ok {
				c = color.New(color.FgWhite)
			}
			fmt.Printf("%s (%dx%d)\n", emph(t.String()), tet.VBlockCount(), tet.HBlockCount())
			for y := 0; y < tet.VBlockCount(); y++ {
				fmt.Print("  ")
				for x := 0; x < tet.HBlockCount(); x++ {
					b, err := tet.BlockAt(y, x)
					if err != nil {
						return err
					}
					if b.Visible() {
						c.Print("[]")
					} else {
						fmt.Print("  ")
					}
				}
				fmt.Println()
			}
			fmt.Println()
		}
		return nil
	},
}
