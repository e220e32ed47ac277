package main

import (
	"os"

	"github.com/ankr/toolhub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
