package main

import (
	"os"

	"musicshell/internal/cmd"
)

var version = "dev"

// Entry point for the application
func main() {
	cmd.Version = version
	os.Exit(cmd.Execute())
}
