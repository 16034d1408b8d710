package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"

	"vcrc/failure"
	"vcrc/solver"
)

func TestDefault(t *testing.T) {
	want := &Config{
		Server: ServerConfig{Addr: ":9000", ReadBufferSize: 1024, WriteBufferSize: 1024, HistorySize: 32},
		Solver: solver.DefaultOptions(),
		Sweep:  SweepConfig{Workers: 4},
		Log:    LogConfig{Level: log.InfoLevel},
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("default config (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	data := []byte(`
[server]
Addr = :9100
HistorySize = 8

[solver]
Tolerance = 1e-10

[sweep]
Workers = 2

[log]
Level = debug
`)
	cfg, err := Load(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9100" || cfg.Server.HistorySize != 8 || cfg.Server.ReadBufferSize != 1024 {
		t.Errorf("server %+v", cfg.Server)
	}
	if cfg.Solver.Tolerance != 1e-10 || cfg.Solver.MaxIterations != 200 {
		t.Errorf("solver %+v", cfg.Solver)
	}
	if cfg.Sweep.Workers != 2 || cfg.Log.Level != log.DebugLevel {
		t.Errorf("sweep %+v, log %+v", cfg.Sweep, cfg.Log)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte("[sweep]\nWorkers = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg := LoadOrDefault(path); cfg.Sweep.Workers != 3 {
		t.Errorf("workers %d", cfg.Sweep.Workers)
	}
	if cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.ini")); cfg.Sweep.Workers != 4 {
		t.Errorf("missing file should fall back to defaults, got %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	for _, data := range []string{
		"[server]\nHistorySize = 0\n",
		"[solver]\nTolerance = 2\n",
		"[solver]\nMaxIterations = -1\n",
		"[sweep]\nWorkers = 0\n",
		"[log]\nLevel = loud\n",
	} {
		if _, err := Load([]byte(data)); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("%q: expected ErrConfig, got %v", data, err)
		}
	}
}
