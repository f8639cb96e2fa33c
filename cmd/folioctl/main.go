package main

import (
	"os"

	"github.com/morphofolio/backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
