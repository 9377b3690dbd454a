package main

import (
	"os"

	"github.com/grellus/pgdbc/pkg/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
