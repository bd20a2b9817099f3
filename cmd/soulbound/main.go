package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "issue":
		if err := issue(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "destroy":
		if err := destroy(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "balance":
		if err := balance(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "supply":
		if err := supply(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "events":
		if err := events(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := export(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("soulbound version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`soulbound - administrator-driven token ledger

Usage:
  soulbound <command> [options]

Commands:
  issue      Issue tokens to an account
  destroy    Destroy tokens held by an account
  balance    Show the balance of an account
  supply     Show total supply and ledger snapshot id
  events     Show the audit trail
  export     Export the audit trail to JSONL or CSV
  help       Show this help message
  version    Show version information

Examples:
  # Issue 1000 tokens
  soulbound issue --db ledger.db 0x00000000000000000000000000000000000000a1 1000

  # Destroy 400 tokens
  soulbound destroy --db ledger.db 0x00000000000000000000000000000000000000a1 400

  # Inspect state
  soulbound balance --db ledger.db 0x00000000000000000000000000000000000000a1
  soulbound supply --db ledger.db

  # Audit trail
  soulbound events --db ledger.db --type Issued
  soulbound export --db ledger.db --format jsonl --output audit.jsonl`)
}
