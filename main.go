package main

import "github.com/Mr-Slinky/UglyTetris/cmd"

func main() {
	cmd.Execute()
}
