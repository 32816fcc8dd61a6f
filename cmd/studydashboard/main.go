package main

import (
	"log"
	"os"

	"study-dashboard/cmd/studydashboard/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		log.Printf("command failed: %v", err)
		os.Exit(1)
	}
}
