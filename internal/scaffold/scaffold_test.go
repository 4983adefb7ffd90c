package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/darsum/internal/config"
	"gopkg.in/yaml.v3"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "parser-bin: darshan-parser") {
		t.Fatalf("unexpected template:\n%s", string(data))
	}

	// The template must parse and validate as-is.
	cfg := config.Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		t.Fatalf("template is not valid yaml: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("template does not validate: %v", err)
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}
	if err := Init(dir); err == nil {
		t.Fatal("expected error when config already exists")
	}
}
