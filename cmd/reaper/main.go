package main

import (
	"os"

	"github.com/rajbhatia-png/reaperAgent/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
