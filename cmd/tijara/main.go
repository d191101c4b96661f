package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/me/tijara/internal/cli"
)

func main() {
	// Local .env overrides are optional.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
