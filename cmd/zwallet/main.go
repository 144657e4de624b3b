package main

import (
	"os"

	"github.com/ziesha-network/zwallet/cmd/zwallet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
