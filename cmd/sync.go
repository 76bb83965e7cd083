package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/iksnae/deepseek-export/internal"
	"github.com/iksnae/deepseek-export/internal/sync"
	"github.com/iksnae/deepseek-export/internal/syncconfig"
	"github.com/spf13/cobra"
)

var syncConfigPath string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Manage cloud sync",
	Long:  `Inspect and test the Yandex Disk sync configuration used by 'export --sync'.`,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, settings, err := loadSyncSettings()
		if err != nil {
			return err
		}

		fmt.Printf("Settings file: %s\n", path)
		fmt.Printf("Sync enabled: %v\n", settings.Enabled)
		fmt.Printf("Sync on export: %v\n", settings.SyncOnExport)
		fmt.Printf("Yandex Disk:\n")
		fmt.Printf("  configured: %v\n", settings.Yandex.AccessToken != "")
		fmt.Printf("  enabled: %v\n", settings.Yandex.Enabled)
		fmt.Printf("  folder: %s\n", settings.Yandex.Folder)
		fmt.Printf("  formats: %s\n", strings.Join(settings.Yandex.SyncFormats, ", "))
		if settings.Yandex.LastSync != "" {
			fmt.Printf("  last sync: %s\n", settings.Yandex.LastSync)
		}
		return nil
	},
}

var syncTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the provider connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, settings, err := loadSyncSettings()
		if err != nil {
			return err
		}

		info, err := sync.NewManager(settings).Test(context.Background())
		if err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Connected as %s (%d of %d bytes used)",
			info.User.Login, info.UsedSpace, info.TotalSpace))
		return nil
	},
}

func loadSyncSettings() (string, syncconfig.Settings, error) {
	path := syncConfigPath
	if path == "" {
		var err error
		path, err = syncconfig.DefaultPath()
		if err != nil {
			return "", syncconfig.Settings{}, err
		}
	}
	settings, err := syncconfig.Load(path)
	return path, settings, err
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncTestCmd)
	syncCmd.PersistentFlags().StringVar(&syncConfigPath, "config", "", "Path to sync settings file")
}
