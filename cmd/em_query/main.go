// Package main provides the em_query command-line client for the disco server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const appName = "em_query"

var rootCmd = &cobra.Command{
	Use:   appName + " [query words...]",
	Short: "Query the disco server",
	Long: `Send a query to the disco server and print the matching embryos.

With arguments, the words are joined into one query, sent once, and the result
is printed. Words starting with "-" are part of the query. Without arguments,
queries are read one per line from standard input until end of input.

"em_query --show-config" prints the effective configuration instead.
"em_query -- embox ..." sends a query whose first word is a subcommand name.`,
	Args:               cobra.ArbitraryArgs,
	RunE:               runQuery,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	// Replaces cobra's "help" subcommand so a query may start with "help".
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "__help",
		Hidden: true,
		Run:    func(*cobra.Command, []string) {},
	})
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
