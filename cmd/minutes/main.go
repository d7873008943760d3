package main

import (
	"os"

	"github.com/nguyentantai21042004/voice-minutes/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
