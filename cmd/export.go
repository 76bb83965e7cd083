package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/deepseek-export/internal"
	"github.com/iksnae/deepseek-export/internal/export"
	"github.com/iksnae/deepseek-export/internal/pipeline"
	"github.com/iksnae/deepseek-export/internal/sync"
	"github.com/iksnae/deepseek-export/internal/syncconfig"
	"github.com/spf13/cobra"
)

var (
	exportKind    string
	exportFormats []string
	outputDir     string
	searchText    string
	caseSensitive bool
	messageType   string
	filterMode    string
	sortOrder     string
	selectedIDs   []string
	recentLimit   int
	syncAfter     bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export chats to files",
	Long: `Export chats in one or more formats (json, txt, markdown, doc).

The export type controls which chats are included: "all" exports everything,
"filtered" applies the search/type criteria (optionally restricted to chats
picked with --chat-id), and "recent" takes the newest chats up to --limit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, closeDB, err := openStorage()
		if err != nil {
			return err
		}
		defer func() { _ = closeDB() }()

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		p := pipeline.New(storage, internal.NewConsoleReporter())
		p.Save = func(artifact export.Artifact) error {
			path := filepath.Join(outputDir, artifact.Filename)
			if err := os.WriteFile(path, artifact.Content, 0644); err != nil {
				return err
			}
			internal.LogDebug("wrote %s (%d bytes)", path, len(artifact.Content))
			return nil
		}

		opts := pipeline.Options{
			Kind:        exportKind,
			Criteria:    criteriaFromFlags(cmd),
			SelectedIDs: selectedIDs,
			Limit:       recentLimit,
			Formats:     exportFormats,
		}

		result, err := p.Export(context.Background(), opts)
		if errors.Is(err, internal.ErrNothingToExport) {
			internal.PrintWarning("Nothing to export")
			return nil
		}
		if err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d file(s) written to %s", len(result.Artifacts), outputDir))

		if syncAfter {
			return syncArtifacts(result.Artifacts)
		}
		return nil
	},
}

// criteriaFromFlags builds filter criteria from the export flags. Returns
// nil when no filter or sort flag was given so the pipeline can skip the
// filter stage entirely.
func criteriaFromFlags(cmd *cobra.Command) *internal.FilterCriteria {
	if searchText == "" && messageType == internal.MessageTypeAll && !cmd.Flags().Changed("sort") {
		return nil
	}
	return &internal.FilterCriteria{
		SearchText:    searchText,
		CaseSensitive: caseSensitive,
		MessageType:   messageType,
		FilterMode:    filterMode,
		SortOrder:     sortOrder,
	}
}

func syncArtifacts(artifacts []export.Artifact) error {
	path, err := syncconfig.DefaultPath()
	if err != nil {
		return err
	}
	settings, err := syncconfig.Load(path)
	if err != nil {
		return err
	}

	report, err := sync.NewManager(settings).SyncExports(context.Background(), artifacts)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	if report.Skipped {
		internal.PrintWarning("Sync skipped: no artifacts match the configured formats")
		return nil
	}

	for _, r := range report.Results {
		if r.Err != nil {
			internal.PrintWarning(fmt.Sprintf("Upload failed for %s: %v", r.Filename, r.Err))
		}
	}
	internal.PrintSuccess(fmt.Sprintf("Synced %d of %d file(s) to Yandex Disk", report.Uploaded, len(report.Results)))
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportKind, "type", "t", pipeline.KindAll, "Export type (all, filtered, recent)")
	exportCmd.Flags().StringSliceVarP(&exportFormats, "formats", "f", []string{"json"}, "Export formats (json, txt, markdown, doc)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&searchText, "search", "", "Search text")
	exportCmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Case-sensitive search")
	exportCmd.Flags().StringVar(&messageType, "message-type", internal.MessageTypeAll, "Message type filter (all, user, assistant)")
	exportCmd.Flags().StringVar(&filterMode, "filter-mode", internal.FilterModeWholeChat, "Filter mode (whole-chat, message-only)")
	exportCmd.Flags().StringVar(&sortOrder, "sort", internal.SortNewestFirst, "Sort order (newest-first, oldest-first)")
	exportCmd.Flags().StringSliceVar(&selectedIDs, "chat-id", nil, "Restrict a filtered export to specific chat ids")
	exportCmd.Flags().IntVar(&recentLimit, "limit", 10, "Chat limit for recent export")
	exportCmd.Flags().BoolVar(&syncAfter, "sync", false, "Upload artifacts to Yandex Disk after export")
}
