package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entrypoint"
	"github.com/mrlokans/bookstore/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "-h", "--help", "help":
		printUsage()
		return
	case "version":
		fmt.Printf("bookstore %s (%s)\n", Version, Commit)
		return
	}

	cfg := config.NewConfig()
	logging.Init(cfg.Log)

	switch command {
	case "serve":
		entrypoint.RunAPI(cfg, Version)

	case "ui":
		entrypoint.RunUI(cfg, Version)

	case "seed":
		if err := entrypoint.Seed(cfg); err != nil {
			log.Fatal().Err(err).Msg("Seeding failed")
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve    Start the bookstore API (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  ui       Start the browser-facing host in front of the API\n")
	fmt.Fprintf(os.Stderr, "  seed     Create the schema and seed roles and users, then exit\n")
	fmt.Fprintf(os.Stderr, "  version  Print version information\n")
}
