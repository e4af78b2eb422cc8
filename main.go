package main

import (
	"os"

	"github.com/ragdoc/ragdoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
