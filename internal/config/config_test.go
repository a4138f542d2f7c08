package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Input != "cameralist.csv" || cfg.Output != "config.yaml" {
		t.Fatalf("unexpected default paths: %+v", cfg)
	}
	if cfg.Probe.Timeout.Std() != 3*time.Second || cfg.Probe.Workers != 16 || !cfg.Probe.Enabled {
		t.Fatalf("unexpected probe defaults: %+v", cfg.Probe)
	}
	if cfg.RTSP.Port != 554 || cfg.RTSP.RestreamBase != "rtsp://127.0.0.1:8554" {
		t.Fatalf("unexpected rtsp defaults: %+v", cfg.RTSP)
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confgen.yaml")
	content := `
input: cams.csv
probe:
  timeout: 1s
  workers: 4
rtsp:
  main_path: main
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Input != "cams.csv" {
		t.Fatalf("expected input override, got %q", cfg.Input)
	}
	if cfg.Probe.Timeout.Std() != time.Second || cfg.Probe.Workers != 4 {
		t.Fatalf("expected probe overrides, got %+v", cfg.Probe)
	}
	if !cfg.Probe.Enabled {
		t.Fatalf("omitted probe.enabled should keep its default")
	}
	if cfg.RTSP.MainPath != "main" || cfg.RTSP.SubPath != "s1" {
		t.Fatalf("expected partial rtsp override, got %+v", cfg.RTSP)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confgen.yaml")
	if err := os.WriteFile(path, []byte("input: from-file.csv\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFGEN_INPUT", "from-env.csv")
	t.Setenv("CONFGEN_PROBE_TIMEOUT", "2s")
	t.Setenv("CONFGEN_PROBE_ENABLED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Input != "from-env.csv" {
		t.Fatalf("expected env to win, got %q", cfg.Input)
	}
	if cfg.Probe.Timeout.Std() != 2*time.Second {
		t.Fatalf("expected 2s timeout, got %s", cfg.Probe.Timeout.Std())
	}
	if cfg.Probe.Enabled {
		t.Fatalf("expected probing disabled via env")
	}
}

func TestLoad_InvalidDurationIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confgen.yaml")
	if err := os.WriteFile(path, []byte("probe:\n  timeout: soon\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error for invalid duration")
	}
}

func TestValidate_Bounds(t *testing.T) {
	cfg := Default()
	cfg.Probe.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected worker bound error")
	}

	cfg = Default()
	cfg.Probe.Timeout = Duration(0)
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected timeout bound error")
	}

	cfg = Default()
	cfg.RTSP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected port bound error")
	}
}
