package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kaylendog/kali/internal/config"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "module: example\nentry: src/main.kali\nindent_width: 4\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Module != "example" {
		t.Errorf("want module example, got %s", cfg.Module)
	}
	if cfg.Entry != "src/main.kali" {
		t.Errorf("want entry src/main.kali, got %s", cfg.Entry)
	}
	if cfg.IndentWidth != 4 {
		t.Errorf("want indent_width 4, got %d", cfg.IndentWidth)
	}
}

func TestLoadMissingModuleField(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "entry: src/main.kali\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("want error for missing module field, got nil")
	}
}

func TestLoadMissingEntryField(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "module: example\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("want error for missing entry field, got nil")
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("want error for a nonexistent manifest, got nil")
	}
}

func TestEntryPathIsRelativeToManifestDir(t *testing.T) {
	cfg := &config.Config{Module: "example", Entry: "src/main.kali"}
	got := cfg.EntryPath("/project/kali.yaml")
	want := filepath.Join("/project", "src/main.kali")
	if got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestFindManifestWalksUpToRoot(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "module: example\nentry: main.kali\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := config.FindManifest(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantPath, _ := filepath.EvalSymlinks(filepath.Join(root, config.FileName))
	gotPath, _ := filepath.EvalSymlinks(found)
	if gotPath != wantPath {
		t.Errorf("want %s, got %s", wantPath, gotPath)
	}
}

func TestFindManifestReturnsErrorWhenNoneExists(t *testing.T) {
	dir := t.TempDir()
	if _, err := config.FindManifest(dir); err == nil {
		t.Fatal("want error when no manifest exists above dir, got nil")
	}
}
