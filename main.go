package main

import (
	"os"

	"github.com/maelqr/ecosched/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
