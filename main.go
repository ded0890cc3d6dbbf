package main

import (
	"os"

	"github.com/rushmore-labs/rushseed/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
