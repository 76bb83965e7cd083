package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/deepseek-export/internal"
	"github.com/iksnae/deepseek-export/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	previewSearch        string
	previewCaseSensitive bool
	previewMessageType   string
	previewFilterMode    string
)

// filterCmd previews filter criteria without exporting, so chats can be
// picked by id before running a filtered export.
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Preview filter results",
	Long: `Apply filter criteria to the store and report what a filtered export
would include, listing the candidate chats and their ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, closeDB, err := openStorage()
		if err != nil {
			return err
		}
		defer func() { _ = closeDB() }()

		criteria := internal.FilterCriteria{
			SearchText:    previewSearch,
			CaseSensitive: previewCaseSensitive,
			MessageType:   previewMessageType,
			FilterMode:    previewFilterMode,
		}

		p := pipeline.New(storage, internal.NewConsoleReporter())
		_, report, err := p.FilterPreview(context.Background(), criteria)
		if err != nil {
			return err
		}

		fmt.Println(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().StringVar(&previewSearch, "search", "", "Search text")
	filterCmd.Flags().BoolVar(&previewCaseSensitive, "case-sensitive", false, "Case-sensitive search")
	filterCmd.Flags().StringVar(&previewMessageType, "message-type", internal.MessageTypeAll, "Message type filter (all, user, assistant)")
	filterCmd.Flags().StringVar(&previewFilterMode, "filter-mode", internal.FilterModeWholeChat, "Filter mode (whole-chat, message-only)")
}
