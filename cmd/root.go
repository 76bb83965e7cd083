package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/deepseek-export/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dbPath  string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deepseek-export",
	Short: "Extract and export DeepSeek chat history",
	Long: `A CLI tool to extract and export chat history from a DeepSeek
history-message store.

The tool reads raw conversation records from a SQLite dump of the
deepseek-chat IndexedDB database, normalizes them into clean chats, and
exports them in several formats (JSON, plain text, Markdown, DOC).

Features:
  • List all chats with titles and message counts
  • Search and filter by text, author, and filter mode
  • Export whole chats or matching messages only
  • Four export formats with shared filtering and ordering
  • Optional upload of artifacts to Yandex Disk

Quick Start:
  deepseek-export list --db deepseek-chat.db      # List all chats
  deepseek-export export --db deepseek-chat.db    # Export everything
  deepseek-export filter --search "hello"         # Preview a filter`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "deepseek-chat.db", "Path to the history-message SQLite store")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// openStorage opens the record store behind the --db flag.
func openStorage() (*internal.Storage, func() error, error) {
	db, err := internal.OpenDatabase(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return internal.NewStorage(db, dbPath), db.Close, nil
}
