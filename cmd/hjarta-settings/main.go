package main

import (
	"os"

	"github.com/0xalexb/hjarta-settings/internal/cli"
)

func main() {
	err := cli.Execute()
	if err != nil {
		os.Exit(1)
	}
}
