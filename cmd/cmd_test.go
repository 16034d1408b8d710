package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join("..", "conf", "config.ini")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalcTable(t *testing.T) {
	out, err := run(t, "calc", filepath.Join("..", "examples", "case.yaml"), "--format", "table")
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	for _, s := range []string{"split unit", "zubadan", "EER", "perfection", "gas_cooler"} {
		if !strings.Contains(strings.ToLower(out), strings.ToLower(s)) {
			t.Errorf("output misses %q", s)
		}
	}
}

func TestCalcJSON(t *testing.T) {
	out, err := run(t, "calc", filepath.Join("..", "examples", "case.yaml"), "--format", "json")
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	var results []struct {
		Name string  `json:"name"`
		EER  float64 `json:"eer"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if len(results) != 4 {
		t.Errorf("results %+v", results)
	}
}

func TestCalcFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := `cycles:
  - topology: simple
    refrigerant: R32
    evaporator: {temperature: 10, superheat: 5}
    condenser: {temperature: 5, subcooling: 3}
    compressor_efficiency: 80
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "calc", path, "--format", "table"); err == nil || !strings.Contains(err.Error(), "1 of 1") {
		t.Errorf("expected a failed cycle, got %v", err)
	}
	if _, err := run(t, "calc", filepath.Join("..", "examples", "case.yaml"), "--format", "xml"); err == nil {
		t.Error("expected an unknown format error")
	}
}

func TestSweep(t *testing.T) {
	out, err := run(t, "sweep", filepath.Join("..", "examples", "case.yaml"), "--format", "yaml", "--workers", "2")
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if !strings.Contains(out, "condensing temperature") || strings.Count(out, "- value:") != 6 {
		t.Errorf("unexpected sweep output:\n%s", out)
	}
}

func TestTopologies(t *testing.T) {
	out, err := run(t, "topologies")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Fields(out)); n != 12 {
		t.Errorf("%d topologies listed", n)
	}
}
