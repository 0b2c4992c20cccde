package main

import (
	"log"
	"os"

	"github.com/raesene/slackdump-searcher/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cmd.NewRootCmd(version, commit, date).Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
