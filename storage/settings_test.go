package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/launix-de/tinylisp/scm"
)

func withSettings(t *testing.T) {
	t.Helper()
	saved := Settings
	Settings = DefaultSettings()
	t.Cleanup(func() { Settings = saved })
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	withSettings(t)
	path := writeFile(t, "tinylisp.toml", []byte(`
stack-size = 32
max-source = "2KiB"
listen = ":4322"

[s3]
region = "eu-central-1"
force-path-style = true
`))
	if err := LoadSettings(path); err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if Settings.StackSize != 32 || Settings.Listen != ":4322" {
		t.Fatalf("unexpected settings %+v", Settings)
	}
	if Settings.TokenSize != scm.DefaultTokenSize {
		t.Fatalf("missing key lost its default: %d", Settings.TokenSize)
	}
	if Settings.S3.Region != "eu-central-1" || !Settings.S3.ForcePathStyle {
		t.Fatalf("unexpected s3 settings %+v", Settings.S3)
	}
	if n := Settings.MaxSourceBytes(); n != 2048 {
		t.Fatalf("expected 2048 bytes, got %d", n)
	}
}

func TestLoadSettingsRejectsBadInput(t *testing.T) {
	withSettings(t)
	for _, content := range []string{
		`max-source = "lots"`,
		`stack-size = "deep"`,
		`stack-size = `,
	} {
		path := writeFile(t, "bad.toml", []byte(content))
		if err := LoadSettings(path); err == nil {
			t.Fatalf("%q: expected an error", content)
		}
	}
	if Settings != DefaultSettings() {
		t.Fatalf("failed load changed settings: %+v", Settings)
	}
	if err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml")); err == nil || !strings.Contains(err.Error(), "cannot read") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestInitSettings(t *testing.T) {
	withSettings(t)
	Settings.StackSize = 9
	Settings.Trace = filepath.Join(t.TempDir(), "trace.json")
	config, err := InitSettings()
	if err != nil {
		t.Fatalf("InitSettings: %v", err)
	}
	if config.StackSize != 9 || config.TokenSize != scm.DefaultTokenSize || config.Trace == nil {
		t.Fatalf("unexpected config %+v", config)
	}
	if err := config.Trace.Close(); err != nil {
		t.Fatalf("close trace: %v", err)
	}
	data, err := os.ReadFile(Settings.Trace)
	if err != nil || string(data) != "[]" {
		t.Fatalf("unexpected trace file %q: %v", data, err)
	}
}
