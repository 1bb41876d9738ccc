package main

import (
	"os"

	"NewsTrust/internal/cli"
)

func main() {
	if err := cli.Run(nil); err != nil {
		os.Exit(1)
	}
}
