package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "eventos",
		Short: "Event registration API",
		Long: `Event registration API.

Running without a subcommand starts the HTTP server.

Examples:
  eventos serve
  eventos create-admin --username admin --email admin@example.com --password s3cret-pass
  eventos promote ana`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newCreateAdminCommand())
	root.AddCommand(newPromoteCommand())
	return root
}
