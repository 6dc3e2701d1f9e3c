package main

import (
	"fmt"
	"os"

	"github.com/oddlabs/oddly/internal/cli"
	"github.com/oddlabs/oddly/internal/logger"
)

func main() {
	logger.Init()
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
