package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/iwvelando/amortizer/internal/commands"
)

func main() {
	// AMORTIZER_* overrides may live in a local .env file.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
