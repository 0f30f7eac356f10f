package main

import (
	"os"

	"github.com/kennelops/kennelplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
