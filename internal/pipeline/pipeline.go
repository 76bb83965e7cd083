// Package pipeline wires the export stages together: read raw records,
// aggregate them into canonical chats, filter, sort, and render every
// requested format.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/iksnae/deepseek-export/internal"
	"github.com/iksnae/deepseek-export/internal/export"
)

// Export kinds.
const (
	KindAll      = "all"
	KindFiltered = "filtered"
	KindRecent   = "recent"
)

const defaultRecentLimit = 10

// Options describe one export request.
type Options struct {
	Kind        string // all, filtered, recent
	Criteria    *internal.FilterCriteria
	SelectedIDs []string // restrict a filtered export to chosen chats
	Limit       int      // recent kind only
	Formats     []string
}

// Result is a completed export run. On a partial render failure it still
// carries the artifacts that were produced.
type Result struct {
	Artifacts []export.Artifact
	Stats     internal.ExportStats
	Chats     int
}

// Pipeline runs the Normalization → Filter → Render flow. Source and
// Reporter are required; Save, when set, is invoked for every rendered
// artifact (saves already performed are not retracted when a later format
// fails).
type Pipeline struct {
	Source   internal.RecordSource
	Reporter internal.Reporter
	Save     func(export.Artifact) error
}

// New creates a pipeline over a record source, reporting to reporter.
func New(source internal.RecordSource, reporter internal.Reporter) *Pipeline {
	if reporter == nil {
		reporter = internal.NopReporter{}
	}
	return &Pipeline{Source: source, Reporter: reporter}
}

// Export runs the full pipeline for one request. Storage failures abort
// immediately; an empty post-filter result returns ErrNothingToExport;
// per-format render failures are joined after all formats finish.
func (p *Pipeline) Export(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Formats) == 0 {
		return nil, fmt.Errorf("no export formats requested")
	}
	renderers := make([]export.Renderer, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		renderer, err := export.NewRenderer(format)
		if err != nil {
			return nil, err
		}
		renderers = append(renderers, renderer)
	}

	p.Reporter.Progress(20, "Loading data from history-message...")
	chats, err := p.loadChats(ctx)
	if err != nil {
		p.Reporter.Result(fmt.Sprintf("❌ Failed to load data: %v", err))
		return nil, err
	}

	p.Reporter.Progress(60, "Processing data...")

	stats := internal.ExportStats{
		OriginalChats:    len(chats),
		OriginalMessages: internal.CountMessages(chats),
	}
	selected := chats

	switch opts.Kind {
	case KindFiltered:
		criteria := opts.Criteria
		if criteria == nil {
			criteria = &internal.FilterCriteria{MessageType: internal.MessageTypeAll}
		}
		result := internal.FilterChats(chats, *criteria)
		selected = result.Chats
		stats.FilteredChats = result.Stats.FilteredChats
		stats.FilteredMessages = result.Stats.FilteredMessages

		if len(opts.SelectedIDs) > 0 {
			selected = restrictToIDs(selected, opts.SelectedIDs)
			stats.FilteredChats = len(selected)
			stats.FilteredMessages = internal.CountMessages(selected)
		}
	case KindRecent:
		limit := opts.Limit
		if limit <= 0 {
			limit = defaultRecentLimit
		}
		selected = internal.SortChats(chats, internal.SortNewestFirst)
		if len(selected) > limit {
			selected = selected[:limit]
		}
		stats.FilteredChats = len(selected)
		stats.FilteredMessages = internal.CountMessages(selected)
	default:
		stats.FilteredChats = len(selected)
		stats.FilteredMessages = stats.OriginalMessages
	}

	if len(selected) == 0 {
		p.Reporter.Result("❌ No chats to export")
		return nil, internal.ErrNothingToExport
	}

	if opts.Criteria != nil && opts.Criteria.SortOrder != "" {
		selected = internal.SortChats(selected, opts.Criteria.SortOrder)
	}

	p.Reporter.Progress(80, "Rendering files...")
	p.Reporter.Stats(stats, opts.Criteria)

	artifacts, renderErr := p.renderAll(selected, opts.Kind, opts.Criteria, stats, renderers)
	if renderErr != nil {
		p.Reporter.Result(fmt.Sprintf("❌ Export failed: %v", renderErr))
		return &Result{Artifacts: artifacts, Stats: stats, Chats: len(selected)}, renderErr
	}

	p.Reporter.Progress(100, "Export complete!")
	p.Reporter.Result(successMessage(opts, stats, len(selected)))

	return &Result{Artifacts: artifacts, Stats: stats, Chats: len(selected)}, nil
}

// FilterPreview applies criteria without exporting, surfacing the candidate
// chats for user selection, and returns a human-readable report.
func (p *Pipeline) FilterPreview(ctx context.Context, criteria internal.FilterCriteria) (*internal.FilterResult, string, error) {
	p.Reporter.Progress(30, "Loading data for preview...")
	chats, err := p.loadChats(ctx)
	if err != nil {
		return nil, "", err
	}

	p.Reporter.Progress(70, "Applying filters...")
	result := internal.FilterChats(chats, criteria)

	p.Reporter.Progress(90, "Building report...")
	p.Reporter.ChatsList(result.Chats)

	var b strings.Builder
	fmt.Fprintf(&b, "Filter preview:\n\n")
	fmt.Fprintf(&b, "Total chats: %d\n", len(chats))
	fmt.Fprintf(&b, "Total messages: %d\n", result.Stats.OriginalMessages)
	if criteria.FilterMode == internal.FilterModeMessageOnly {
		fmt.Fprintf(&b, "Matching messages: %d\n", result.Stats.FilteredMessages)
		fmt.Fprintf(&b, "Coverage: %s\n", coverage(result.Stats.FilteredMessages, result.Stats.OriginalMessages))
	} else {
		fmt.Fprintf(&b, "Matching chats: %d\n", result.Stats.FilteredChats)
		fmt.Fprintf(&b, "Coverage: %s\n", coverage(result.Stats.FilteredChats, len(chats)))
	}
	if len(result.Chats) == 0 {
		b.WriteString("\nNothing found. Try adjusting the search parameters.\n")
	} else {
		fmt.Fprintf(&b, "\nFound %d chat(s) — pick the ones to export.\n", len(result.Chats))
	}

	p.Reporter.Progress(100, "Preview complete!")
	p.Reporter.Stats(result.Stats, &criteria)

	return &result, b.String(), nil
}

// loadChats reads all raw records and aggregates them into canonical chats.
func (p *Pipeline) loadChats(ctx context.Context) ([]internal.Chat, error) {
	records, err := p.Source.ReadAllRecords(ctx)
	if err != nil {
		return nil, err
	}
	return internal.NewAggregator().Aggregate(records), nil
}

// renderAll runs every renderer concurrently. Renderers are pure over
// independent inputs, so the only shared state is the collection of results.
func (p *Pipeline) renderAll(chats []internal.Chat, kind string, criteria *internal.FilterCriteria, stats internal.ExportStats, renderers []export.Renderer) ([]export.Artifact, error) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		artifacts []export.Artifact
		errs      []error
	)

	for _, renderer := range renderers {
		wg.Add(1)
		go func(renderer export.Renderer) {
			defer wg.Done()

			artifact, err := renderer.Render(chats, kind, criteria, stats)
			if err == nil && p.Save != nil {
				err = p.Save(artifact)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, &internal.RenderError{Format: renderer.Format(), Err: err})
				return
			}
			artifacts = append(artifacts, artifact)
		}(renderer)
	}

	wg.Wait()
	return artifacts, errors.Join(errs...)
}

func restrictToIDs(chats []internal.Chat, ids []string) []internal.Chat {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var kept []internal.Chat
	for i := range chats {
		if _, ok := wanted[chats[i].ID]; ok {
			kept = append(kept, chats[i])
		}
	}
	return kept
}

func successMessage(opts Options, stats internal.ExportStats, chatCount int) string {
	msg := fmt.Sprintf("✅ Exported %d chat(s) (%d messages) in formats: %s",
		chatCount, stats.FilteredMessages, strings.Join(opts.Formats, ", "))

	if opts.Criteria != nil && opts.Criteria.SearchText != "" {
		if opts.Criteria.FilterMode == internal.FilterModeWholeChat {
			msg += fmt.Sprintf("\n📊 Matching chats: %d of %d", stats.FilteredChats, stats.OriginalChats)
		} else {
			msg += fmt.Sprintf("\n📊 Messages: %d of %d", stats.FilteredMessages, stats.OriginalMessages)
		}
	}
	if len(opts.SelectedIDs) > 0 {
		msg += fmt.Sprintf("\n🎯 Selected chats exported: %d", len(opts.SelectedIDs))
	}
	return msg
}

func coverage(part, whole int) string {
	if whole == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}
