package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.OutputFormat != "markdown" || c.ReportRows != 20 || c.LogLevel != "warn" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if want := filepath.Join(home, ".dataqa", "runs"); c.RunsDir != want {
		t.Fatalf("runs_dir = %q, want %q", c.RunsDir, want)
	}
	if len(c.NAValues) == 0 {
		t.Fatalf("expected default na_values")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("output_format: yaml\nreport_rows: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATAQA_REPORT_ROWS", "7")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.OutputFormat != "yaml" {
		t.Fatalf("output_format = %q", c.OutputFormat)
	}
	if c.ReportRows != 7 {
		t.Fatalf("report_rows = %d, want env value 7", c.ReportRows)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.OutputFormat = "json"
	c.Delimiter = ";"
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.OutputFormat != "json" || got.Delimiter != ";" {
		t.Fatalf("round trip lost values: %+v", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]Global{
		"format":    {OutputFormat: "html", LogLevel: "warn", LogFormat: "console"},
		"level":     {OutputFormat: "json", LogLevel: "loud", LogFormat: "console"},
		"delimiter": {OutputFormat: "json", LogLevel: "warn", LogFormat: "console", Delimiter: ";;"},
		"rows":      {OutputFormat: "json", LogLevel: "warn", LogFormat: "console", MaxRows: -1},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			if err := Validate(&c); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
	ok := Global{OutputFormat: "markdown", LogLevel: "debug", LogFormat: "json"}
	if err := Validate(&ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
