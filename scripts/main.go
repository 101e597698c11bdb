package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/finbooks/finbooks/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "seed-demo",
		Description: "Seed demo tax rates, customers, items and accounts through the service layer",
		Run:         internal.SeedDemoData,
	},
	{
		Name:        "bulk-invoices",
		Description: "Create invoices against a running API",
		Run:         internal.BulkCreateInvoices,
	},
}

func main() {
	// Define command line flags
	var (
		listCommands bool
		cmdName      string
		tenantID     string
		userID       string
		apiURL       string
		apiToken     string
		customerID   string
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&tenantID, "tenant-id", "", "Tenant ID for operations")
	flag.StringVar(&userID, "user-id", "", "User ID for operations")
	flag.StringVar(&apiURL, "api-url", "", "Base URL of a running API for the bulk commands")
	flag.StringVar(&apiToken, "api-token", "", "Bearer token for the bulk commands")
	flag.StringVar(&customerID, "customer-id", "", "Customer ID the bulk invoices are billed to")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	if tenantID != "" {
		os.Setenv("TENANT_ID", tenantID)
	}
	if userID != "" {
		os.Setenv("USER_ID", userID)
	}
	if apiURL != "" {
		os.Setenv("API_URL", apiURL)
	}
	if apiToken != "" {
		os.Setenv("API_TOKEN", apiToken)
	}
	if customerID != "" {
		os.Setenv("CUSTOMER_ID", customerID)
	}

	// Find and run the command
	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
