package main

import (
	"os"

	"github.com/finbench/pixiu-adapters/cli"
	"github.com/finbench/pixiu-adapters/pkg/logger"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
