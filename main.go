// main holds the entry logic for the lesiontrack CLI.
package main

import (
	"github.com/lesiontrack/lesiontrack/cmd"
	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/internal/store"
)

func main() {
	defer store.CloseStore()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
