package main

import (
	"os"

	"github.com/vitalvas/jwsjcs/cmd/jwsjcs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
