package syncconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "sync.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(settings, Default()) {
		t.Errorf("settings = %+v, want defaults %+v", settings, Default())
	}
	if settings.Yandex.Folder != "DeepSeek-Exports" {
		t.Errorf("default folder = %q", settings.Yandex.Folder)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sync.yaml")

	want := Settings{
		Enabled:      true,
		SyncOnExport: false,
		Yandex: Provider{
			Enabled:     true,
			AccessToken: "token123",
			Folder:      "Custom-Folder",
			SyncFormats: []string{"json"},
			LastSync:    "2026-08-31T10:00:00Z",
		},
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("settings file mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.yaml")
	if err := os.WriteFile(path, []byte("enabled: [not a bool"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail on invalid YAML")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.yaml")
	if err := os.WriteFile(path, []byte("enabled: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !settings.Enabled {
		t.Error("enabled flag not loaded")
	}
	if settings.Yandex.Folder != "DeepSeek-Exports" {
		t.Errorf("folder = %q, want default preserved", settings.Yandex.Folder)
	}
}
