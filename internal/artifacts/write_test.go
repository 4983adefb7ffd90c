package artifacts

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/jorge-barreto/darsum/internal/darshan"
)

func sampleDoc() *darshan.Document {
	doc, err := darshan.Scan(`# nprocs: 4
# log file regions

# POSIX module data
# posix counters

#<module> <rank> <record id> <counter> <value>
POSIX 0 17 POSIX_OPENS 4
POSIX 0 17 POSIX_READS 9

# STDIO module data
# stdio counters

#<module> <rank> <record id> <counter> <value>
STDIO 0 21 STDIO_WRITES 3
`)
	if err != nil {
		panic(err)
	}
	return doc
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	if err := WriteDocument(dir, sampleDoc()); err != nil {
		t.Fatal(err)
	}

	header, err := os.ReadFile(filepath.Join(dir, "header.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(header) != "# nprocs: 4\n" {
		t.Fatalf("header.txt: got %q", string(header))
	}

	data, err := os.ReadFile(filepath.Join(dir, "POSIX.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "module,rank,record_id,POSIX_OPENS,POSIX_READS\nPOSIX,0,17,4,9\n"
	if string(data) != want {
		t.Fatalf("POSIX.csv:\ngot  %q\nwant %q", string(data), want)
	}

	desc, err := os.ReadFile(filepath.Join(dir, "POSIX_description.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(desc) != "# posix counters" {
		t.Fatalf("POSIX_description.txt: got %q", string(desc))
	}
}

// Writing the same document twice produces byte-identical artifacts.
func TestWriteDocument_Idempotent(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDoc()

	if err := WriteDocument(dir, doc); err != nil {
		t.Fatal(err)
	}
	first := readAll(t, dir)
	if err := WriteDocument(dir, doc); err != nil {
		t.Fatal(err)
	}
	second := readAll(t, dir)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("artifacts differ between identical runs")
	}
}

func TestWriteDocument_NoTempResidue(t *testing.T) {
	dir := t.TempDir()
	if err := WriteDocument(dir, sampleDoc()); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

// Re-writing a free-text artifact replaces it in place: last write wins,
// nothing staged survives.
func TestWriteText_Overwrites(t *testing.T) {
	dir := t.TempDir()
	if err := WriteText(dir, "summary.txt", "first"); err != nil {
		t.Fatal(err)
	}
	if err := WriteText(dir, "summary.txt", "second"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "summary.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Fatalf("got %q, want %q", string(data), "second")
	}
	if _, err := os.Stat(filepath.Join(dir, "summary.txt.tmp")); !os.IsNotExist(err) {
		t.Fatal("temp file should not exist after write")
	}
}

func TestListModules_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := WriteDocument(dir, sampleDoc()); err != nil {
		t.Fatal(err)
	}
	// Non-table artifacts must not be enumerated.
	if err := WriteText(dir, "summary.txt", "done"); err != nil {
		t.Fatal(err)
	}

	modules, err := ListModules(dir)
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(modules)
	if !reflect.DeepEqual(modules, []string{"POSIX", "STDIO"}) {
		t.Fatalf("got %v", modules)
	}
}

func TestSession_SaveLoad(t *testing.T) {
	dir := t.TempDir()

	s := NewSession("/logs/app.darshan", "sonnet")
	if s.RunID == "" {
		t.Fatal("expected a run ID")
	}
	if err := s.Save(dir); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadSession(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil || loaded.RunID != s.RunID || loaded.Model != "sonnet" {
		t.Fatalf("got %+v", loaded)
	}
	if loaded.Status != StatusRunning {
		t.Fatalf("status: got %q", loaded.Status)
	}
}

func TestLoadSession_Missing(t *testing.T) {
	s, err := LoadSession(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Fatalf("expected nil session, got %+v", s)
	}
}

func readAll(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	files := make(map[string]string)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		files[e.Name()] = string(data)
	}
	return files
}
