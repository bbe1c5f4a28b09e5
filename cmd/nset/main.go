package main

import (
	"os"

	"nestedset/cmd/nset/command"
)

func main() {
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
