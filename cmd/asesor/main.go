package main

import (
	"os"

	"github.com/xaenox/asesor-legal/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
