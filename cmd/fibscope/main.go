package main

import (
	"os"

	"github.com/dersalik/fibscope/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
