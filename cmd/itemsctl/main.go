package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	ctx := &AppContext{}

	flag.StringVar(&ctx.ConfigPath, "config", "itemsctl.toml", "Path to configuration file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Item console %s\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [command]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  tui       Browse and edit items interactively (default)\n")
		fmt.Fprintf(os.Stderr, "  export    Upload a JSON snapshot of every item to S3 storage\n")
		fmt.Fprintf(os.Stderr, "  token     Mint a bearer token for the write endpoints\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	// Load .env file if it exists
	godotenv.Load()

	cmds := []Runner{
		CreateTUICommand(),
		CreateExportCommand(),
		CreateTokenCommand(),
	}

	args := flag.Args()
	subcommand := "tui"
	if len(args) > 0 {
		subcommand, args = args[0], args[1:]
	}

	for _, cmd := range cmds {
		if cmd.Name() != subcommand {
			continue
		}
		if err := cmd.Init(args, ctx); err != nil {
			log.Fatalf("Failed to initialize command: %v", err)
		}
		if err := cmd.Run(); err != nil {
			log.Fatalf("Failed to run command: %v", err)
		}
		os.Exit(0)
	}

	flag.Usage()
	log.Fatalf("Unknown subcommand: %s", subcommand)
}
