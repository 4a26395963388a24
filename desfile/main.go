package main

import (
	"os"

	"github.com/sahib/desfile/cmd"
)

func main() {
	os.Exit(cmd.RunCmdline(os.Args))
}
