package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	path := writeFile(t, "config.yaml", "output_format: parquet\nlog_format: json\nfail_fast: true\n")

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.OutputFormat != "parquet" || c.LogFormat != "json" || !c.FailFast {
		t.Errorf("unexpected config: %+v", c)
	}
}

func TestLoadFromFile_FlagsWin(t *testing.T) {
	path := writeFile(t, "config.yaml", "output_format: parquet\nlog_format: json\n")

	c := Config{OutputFormat: "jsonl"}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.OutputFormat != "jsonl" {
		t.Errorf("OutputFormat = %q; flag value should win", c.OutputFormat)
	}
	if c.LogFormat != "json" {
		t.Errorf("LogFormat = %q; want json from file", c.LogFormat)
	}
}

func TestLoadFromFile_UnknownFormat(t *testing.T) {
	path := writeFile(t, "config.yaml", "output_format: csv\n")

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	if err := c.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "output_format: [unclosed\n")

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_Defaults(t *testing.T) {
	c := Config{FilePath: writeFile(t, "in.jsonl", "{}\n")}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.OutputFormat != "jsonl" || c.LogFormat != "text" {
		t.Errorf("defaults not applied: %+v", c)
	}
}

func TestValidate_MissingFile(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for missing --file")
	}
	c.FilePath = "/nonexistent/in.jsonl"
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for inaccessible file")
	}
}

func TestValidateWithOutput(t *testing.T) {
	c := Config{FilePath: writeFile(t, "in.jsonl", "{}\n")}
	if err := c.ValidateWithOutput(); err == nil {
		t.Fatal("expected error for missing --out")
	}
	c.OutPath = filepath.Join(t.TempDir(), "out.jsonl")
	if err := c.ValidateWithOutput(); err != nil {
		t.Fatalf("ValidateWithOutput: %v", err)
	}
}

func TestValidate_BadLogFormat(t *testing.T) {
	c := Config{FilePath: writeFile(t, "in.jsonl", "{}\n"), LogFormat: "xml"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}
