package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/deepseek-export/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available chats",
	Long:  `List all chats found in the history-message store, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, closeDB, err := openStorage()
		if err != nil {
			return err
		}
		defer func() { _ = closeDB() }()

		records, err := storage.ReadAllRecords(context.Background())
		if err != nil {
			return err
		}

		chats := internal.NewAggregator().Aggregate(records)
		chats = internal.SortChats(chats, internal.SortNewestFirst)

		if len(chats) == 0 {
			internal.PrintWarning("No chats found")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d chat(s)", len(chats))))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tMESSAGES\tCREATED")
		for i := range chats {
			chat := &chats[i]
			created := ""
			if chat.CreateTime > 0 {
				created = time.UnixMilli(chat.CreateTime).Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				idStyle.Render(shortID(chat.ID)),
				titleStyle.Render(truncateTitle(chat.Title, 50)),
				countStyle.Render(fmt.Sprintf("%d", len(chat.Messages))),
				dateStyle.Render(created))
		}
		return w.Flush()
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	rootCmd.AddCommand(listCmd)
}
