package artifacts

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/darsum/internal/darshan"
)

const (
	headerFile = "header.txt"
	csvSuffix  = ".csv"
	descSuffix = "_description.txt"
)

// EnsureDir creates the output directory. Safe to call repeatedly.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", dir, err)
	}
	return nil
}

// WriteDocument reshapes every module in the document and persists the full
// artifact set: header.txt, one <module>.csv and one <module>_description.txt
// per module. Existing same-named artifacts are overwritten. A reshape failure
// on any module aborts the run; per-artifact writes are atomic, so everything
// already written is intact.
func WriteDocument(dir string, doc *darshan.Document) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}

	if err := writeFileAtomic(filepath.Join(dir, headerFile), []byte(doc.Header), 0644); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, m := range doc.Modules {
		table, err := darshan.Reshape(m)
		if err != nil {
			return err
		}
		if err := writeTable(dir, m.Name, table); err != nil {
			return err
		}
		descPath := filepath.Join(dir, m.Name+descSuffix)
		if err := writeFileAtomic(descPath, []byte(m.Description), 0644); err != nil {
			return fmt.Errorf("writing %s description: %w", m.Name, err)
		}
	}

	return nil
}

func writeTable(dir, name string, table *darshan.Table) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("encoding %s table: %w", name, err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("encoding %s table: %w", name, err)
	}
	return writeFileAtomic(filepath.Join(dir, name+csvSuffix), buf.Bytes(), 0644)
}

// WriteText persists a free-text artifact (analysis transcript, summary)
// alongside the module tables.
func WriteText(dir, name, content string) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, name), []byte(content), 0644)
}

// ReadHeader reads back the persisted header text.
func ReadHeader(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, headerFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListModules returns the module names present in a previously populated
// output directory, derived from the table artifacts on disk. Order follows
// the directory listing and is not significant.
func ListModules(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output dir %s: %w", dir, err)
	}
	var modules []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), csvSuffix) {
			continue
		}
		modules = append(modules, strings.TrimSuffix(e.Name(), csvSuffix))
	}
	return modules, nil
}
