package main

import (
	"os"

	"github.com/filepilot/filepilot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
