package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iksnae/deepseek-export/internal"
	"github.com/spf13/cobra"
)

// inspectCmd explores the record store without exporting anything, useful
// when a dump does not produce the expected chats.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect the record store",
	Long: `Explore the history-message store: verify the record table exists,
count records, and show the structure of a sample record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := internal.OpenDatabase(dbPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		exists, err := internal.TableExists(db, internal.RecordTable)
		if err != nil {
			return fmt.Errorf("failed to inspect store: %w", err)
		}
		if !exists {
			internal.PrintError(fmt.Sprintf("Table %q not found in %s", internal.RecordTable, dbPath))
			return nil
		}
		fmt.Printf("Store: %s\n", dbPath)
		fmt.Printf("Table: %s\n", internal.RecordTable)

		count, err := internal.CountRecords(db)
		if err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}
		fmt.Printf("Records: %d\n", count)
		if count == 0 {
			return nil
		}

		pairs, err := internal.QueryRecords(db)
		if err != nil {
			return fmt.Errorf("failed to read records: %w", err)
		}

		storage := internal.NewStorage(db, dbPath)
		records, err := storage.ReadAllRecords(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Decoded: %d of %d row(s)\n\n", len(records), len(pairs))

		if len(records) > 0 {
			sample := records[0]
			fmt.Println("Sample record:")
			fmt.Printf("  keys: %s\n", strings.Join(recordKeys(sample), ", "))
			if data, ok := sample["data"].(map[string]any); ok {
				fmt.Printf("  data: %s\n", strings.Join(recordKeys(data), ", "))
				if messages, ok := data["chat_messages"].(map[string]any); ok {
					fmt.Printf("  chat_messages: %d entr(ies)\n", len(messages))
				}
			}

			chat := internal.NewNormalizer().Normalize(sample)
			fmt.Printf("  extracted messages: %d\n", len(chat.Messages))
			if len(chat.Messages) > 0 {
				preview := chat.Messages[0].Content
				if len([]rune(preview)) > 50 {
					preview = string([]rune(preview)[:50]) + "..."
				}
				fmt.Printf("  first message: %q\n", preview)
			}
		}

		return nil
	},
}

func recordKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
