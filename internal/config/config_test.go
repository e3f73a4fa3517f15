package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Language != "chi_sim+eng" {
		t.Errorf("Language: got %q, want chi_sim+eng", cfg.Language)
	}
	if cfg.Workers <= 0 {
		t.Errorf("Workers must be positive, got %d", cfg.Workers)
	}
	if cfg.TOCWindow <= 0 {
		t.Errorf("TOCWindow must be positive, got %d", cfg.TOCWindow)
	}
	if !cfg.Enhance.Enabled {
		t.Error("enhancement should be enabled by default")
	}
}

func TestNewManagerWithoutConfigFile(t *testing.T) {
	cm, err := NewManager("", t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg := cm.Get()
	if cfg.Language != "chi_sim+eng" {
		t.Errorf("Language: got %q, want default", cfg.Language)
	}
	if cfg.TOCWindow != 25 {
		t.Errorf("TOCWindow: got %d, want 25", cfg.TOCWindow)
	}
}

func TestNewManagerReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "language: eng\nworkers: 8\nenhance:\n  enabled: false\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cm, err := NewManager(cfgPath, "")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg := cm.Get()
	if cfg.Language != "eng" {
		t.Errorf("Language: got %q, want eng", cfg.Language)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers: got %d, want 8", cfg.Workers)
	}
	if cfg.Enhance.Enabled {
		t.Error("enhancement should be disabled by the config file")
	}
	// Keys absent from the file keep their defaults.
	if cfg.TOCWindow != 25 {
		t.Errorf("TOCWindow: got %d, want default 25", cfg.TOCWindow)
	}
}

func TestNewManagerRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("language: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := NewManager(cfgPath, ""); err == nil {
		t.Error("expected an error for a malformed config file")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	cm, err := NewManager(path, "")
	if err != nil {
		t.Fatalf("written default config does not load: %v", err)
	}
	if cm.Get().Language != DefaultConfig().Language {
		t.Errorf("round-tripped language %q differs from default", cm.Get().Language)
	}
}

func TestEnhanceOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.EnhanceOptions()

	if opts.Scale != cfg.Enhance.Scale {
		t.Errorf("Scale: got %d, want %d", opts.Scale, cfg.Enhance.Scale)
	}
	if opts.Binarize != cfg.Enhance.Binarize {
		t.Errorf("Binarize: got %v, want %v", opts.Binarize, cfg.Enhance.Binarize)
	}
}
