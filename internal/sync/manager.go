package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/iksnae/deepseek-export/internal/export"
	"github.com/iksnae/deepseek-export/internal/syncconfig"
)

// Manager applies sync settings to a batch of export artifacts.
type Manager struct {
	settings syncconfig.Settings
	client   *DiskClient
}

// NewManager creates a manager for the given settings.
func NewManager(settings syncconfig.Settings) *Manager {
	return &Manager{
		settings: settings,
		client:   NewDiskClient(settings.Yandex.AccessToken, ""),
	}
}

// NewManagerWithClient creates a manager with an explicit client, used by
// tests to point at a stub server.
func NewManagerWithClient(settings syncconfig.Settings, client *DiskClient) *Manager {
	return &Manager{settings: settings, client: client}
}

// UploadResult records the outcome of one file upload.
type UploadResult struct {
	Format   string
	Filename string
	Path     string
	Err      error
}

// Report summarizes a sync run.
type Report struct {
	Results  []UploadResult
	Uploaded int
	Skipped  bool
}

// SyncExports uploads the artifacts allowed by the format settings, grouping
// them into one remote folder per format. Individual upload failures do not
// stop the batch.
func (m *Manager) SyncExports(ctx context.Context, artifacts []export.Artifact) (*Report, error) {
	if !m.settings.Enabled || !m.settings.Yandex.Enabled {
		return nil, fmt.Errorf("sync disabled or provider not configured")
	}

	allowed := make(map[string]struct{}, len(m.settings.Yandex.SyncFormats))
	for _, format := range m.settings.Yandex.SyncFormats {
		allowed[format] = struct{}{}
	}

	var selected []export.Artifact
	for _, artifact := range artifacts {
		if _, ok := allowed[artifact.Format]; ok {
			selected = append(selected, artifact)
		}
	}
	if len(selected) == 0 {
		return &Report{Skipped: true}, nil
	}

	baseFolder := m.settings.Yandex.Folder
	if err := m.client.CreateFolder(ctx, baseFolder); err != nil {
		return nil, fmt.Errorf("create base folder: %w", err)
	}

	folders := make(map[string]struct{})
	report := &Report{}
	for _, artifact := range selected {
		folder := baseFolder + "/" + strings.ToUpper(artifact.Format)
		if _, ok := folders[folder]; !ok {
			if err := m.client.CreateFolder(ctx, folder); err != nil {
				return report, fmt.Errorf("create folder %s: %w", folder, err)
			}
			folders[folder] = struct{}{}
		}

		path := folder + "/" + artifact.Filename
		err := m.client.UploadFile(ctx, path, artifact.MIMEType, artifact.Content)
		report.Results = append(report.Results, UploadResult{
			Format:   artifact.Format,
			Filename: artifact.Filename,
			Path:     path,
			Err:      err,
		})
		if err == nil {
			report.Uploaded++
		}
	}

	return report, nil
}

// Test verifies provider connectivity.
func (m *Manager) Test(ctx context.Context) (*DiskInfo, error) {
	if !m.settings.Yandex.Enabled {
		return nil, fmt.Errorf("provider not configured")
	}
	return m.client.CheckConnection(ctx)
}
