package main

import (
	"os"

	"pet-grooming-agenda/cmd/groomctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
