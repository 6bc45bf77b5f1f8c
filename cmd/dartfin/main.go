package main

import (
	"os"

	"github.com/wonny/dartfin/cmd/dartfin/commands"
)

// main is the entry point for the dartfin CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/dartfin [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
