package main

import (
	"os"

	"github.com/agencia1/merch-catalog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
