package main

import (
	"github.com/joho/godotenv"

	"accessible-palette/internal/cli"
)

func main() {
	// Load .env file if it exists; in production the environment is set directly
	_ = godotenv.Load()

	cli.Execute()
}
