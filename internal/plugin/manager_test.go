package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()
	pluginDir := filepath.Join(tmpDir, "keys")

	manifest := Manifest{
		Name:        "keyboard",
		Version:     "1.0.0",
		Description: "Sends keystrokes",
		Executable:  "keyboard-bin",
		Actions:     []string{"keystroke", "shortcut"},
	}
	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	writeManifest(t, pluginDir, data)

	manager := NewManager(tmpDir)
	if err := manager.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	// Plugins are keyed by manifest name, not directory name.
	plugin, err := manager.Get("keyboard")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if plugin.Manifest.Description != "Sends keystrokes" {
		t.Errorf("expected description 'Sends keystrokes', got %q", plugin.Manifest.Description)
	}
	if len(plugin.Manifest.Actions) != 2 {
		t.Errorf("expected 2 actions, got %d", len(plugin.Manifest.Actions))
	}
	if plugin.Path != pluginDir {
		t.Errorf("expected path %q, got %q", pluginDir, plugin.Path)
	}
	if want := filepath.Join(pluginDir, "keyboard-bin"); plugin.Executable != want {
		t.Errorf("expected executable %q, got %q", want, plugin.Executable)
	}
}

func TestManager_Discover_SortedAndRescanned(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"zeta", "alpha"} {
		data, _ := json.Marshal(Manifest{Name: name, Executable: "run", Actions: []string{"go"}})
		writeManifest(t, filepath.Join(tmpDir, name), data)
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(plugins))
	}
	if plugins[0].Manifest.Name != "alpha" || plugins[1].Manifest.Name != "zeta" {
		t.Errorf("expected alpha, zeta; got %s, %s", plugins[0].Manifest.Name, plugins[1].Manifest.Name)
	}

	if err := os.RemoveAll(filepath.Join(tmpDir, "zeta")); err != nil {
		t.Fatalf("failed to remove plugin: %v", err)
	}
	if err := manager.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if _, err := manager.Get("zeta"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("removed plugin should be forgotten, got %v", err)
	}
}

func TestManager_Discover_SkipsInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	writeManifest(t, filepath.Join(tmpDir, "bad-json"), []byte("not valid json"))
	writeManifest(t, filepath.Join(tmpDir, "no-exe"), []byte(`{"name":"no-exe"}`))
	writeManifest(t, filepath.Join(tmpDir, "no-name"), []byte(`{"executable":"run"}`))
	if err := os.MkdirAll(filepath.Join(tmpDir, "no-manifest"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "stray-file"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() failed unexpectedly: %v", err)
	}

	if plugins := manager.List(); len(plugins) != 0 {
		t.Fatalf("expected 0 plugins, got %d", len(plugins))
	}
}

func TestManager_Discover_EmptyDir(t *testing.T) {
	manager := NewManager(t.TempDir())
	if err := manager.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() failed on empty dir: %v", err)
	}
	if plugins := manager.List(); len(plugins) != 0 {
		t.Fatalf("expected 0 plugins, got %d", len(plugins))
	}
}

func TestManager_Discover_NonExistentDir(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing"))
	if err := manager.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() failed on non-existent dir: %v", err)
	}
	if plugins := manager.List(); len(plugins) != 0 {
		t.Fatalf("expected 0 plugins, got %d", len(plugins))
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	manager := NewManager(t.TempDir())
	if _, err := manager.Get("nonexistent-plugin"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestManager_PluginDir(t *testing.T) {
	pluginDir := "/path/to/plugins"
	if got := NewManager(pluginDir).PluginDir(); got != pluginDir {
		t.Errorf("expected plugin dir %q, got %q", pluginDir, got)
	}
}
