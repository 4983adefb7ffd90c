package darshan

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const sampleLog = `# darshan log version: 3.41
# exe: ./ior -a POSIX
# nprocs: 64
# run time: 12.5

# log file regions
# -------------------------------

# POSIX module data
# description of what POSIX counters mean
# and how to interpret them

#<module>	<rank>	<record id>	<counter>	<value>	<file name>
POSIX	0	17	POSIX_OPENS	4	/scratch/testfile
POSIX	0	17	POSIX_READS	9	/scratch/testfile

# MPIIO module data
# collective I/O counters

#<module>	<rank>	<record id>	<counter>	<value>	<file name>
MPIIO	0	21	MPIIO_COLL_OPENS	2	/scratch/testfile
`

func TestScan_Header(t *testing.T) {
	doc, err := Scan(sampleLog)
	if err != nil {
		t.Fatal(err)
	}

	want := "# darshan log version: 3.41\n# exe: ./ior -a POSIX\n# nprocs: 64\n# run time: 12.5\n\n"
	if doc.Header != want {
		t.Fatalf("header:\ngot  %q\nwant %q", doc.Header, want)
	}
}

func TestScan_Modules(t *testing.T) {
	doc, err := Scan(sampleLog)
	if err != nil {
		t.Fatal(err)
	}

	if got := doc.ModuleNames(); !reflect.DeepEqual(got, []string{"POSIX", "MPIIO"}) {
		t.Fatalf("module names: got %v", got)
	}

	posix := doc.Module("POSIX")
	if posix == nil {
		t.Fatal("POSIX module not found")
	}
	wantCols := []string{"module", "rank", "record_id", "counter", "value", "file_name"}
	if !reflect.DeepEqual(posix.Columns, wantCols) {
		t.Fatalf("columns: got %v, want %v", posix.Columns, wantCols)
	}
	if len(posix.Rows) != 2 {
		t.Fatalf("expected 2 POSIX rows, got %d", len(posix.Rows))
	}
	if posix.Rows[0][3] != "POSIX_OPENS" || posix.Rows[0][4] != "4" {
		t.Fatalf("unexpected first row: %v", posix.Rows[0])
	}
}

func TestScan_Descriptions(t *testing.T) {
	doc, err := Scan(sampleLog)
	if err != nil {
		t.Fatal(err)
	}

	want := "# description of what POSIX counters mean\n# and how to interpret them"
	if doc.Module("POSIX").Description != want {
		t.Fatalf("POSIX description:\ngot  %q\nwant %q", doc.Module("POSIX").Description, want)
	}
	if got := doc.Module("MPIIO").Description; got != "# collective I/O counters" {
		t.Fatalf("MPIIO description: got %q", got)
	}
}

// The module data marker discards whatever description accumulated before it,
// so the regions separator comment never bleeds into the first module.
func TestScan_MarkerResetsDescription(t *testing.T) {
	input := "# header\n# log file regions\n# leftover comment\n# POSIX module data\n# real description\n#<module> <counter> <value> <rank>\nPOSIX X 1 0\n"
	doc, err := Scan(input)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Module("POSIX").Description; got != "# real description" {
		t.Fatalf("description: got %q", got)
	}
}

func TestScan_SkipLinesDroppedEverywhere(t *testing.T) {
	warning := "# *WARNING*: The POSIX module contains incomplete data!"
	input := warning + "\n# header line\n# log file regions\n" + warning + "\n# POSIX module data\n" + warning + "\n#<module> <rank> <counter> <value>\n" + warning + "\nPOSIX 0 POSIX_OPENS 4\n"

	doc, err := Scan(input)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc.Header, "WARNING") {
		t.Fatalf("warning leaked into header: %q", doc.Header)
	}
	m := doc.Module("POSIX")
	if strings.Contains(m.Description, "WARNING") {
		t.Fatalf("warning leaked into description: %q", m.Description)
	}
	if len(m.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(m.Rows))
	}
}

func TestScan_NoRegionsMarker_AllHeader(t *testing.T) {
	input := "# just some text\n# more text\n"
	doc, err := Scan(input)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Header != input {
		t.Fatalf("header: got %q, want %q", doc.Header, input)
	}
	if len(doc.Modules) != 0 {
		t.Fatalf("expected 0 modules, got %d", len(doc.Modules))
	}
}

// A document without a final newline still yields newline-terminated header
// text; only a phantom empty line from a trailing newline must not appear.
func TestScan_NoTrailingNewline(t *testing.T) {
	doc, err := Scan("# just some text\n# more text")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Header != "# just some text\n# more text\n" {
		t.Fatalf("header: got %q", doc.Header)
	}
}

func TestScan_EmptyInput(t *testing.T) {
	if _, err := Scan(""); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

// A module emitted in two discontiguous blocks accumulates into one Module.
func TestScan_ReappearingModuleMerges(t *testing.T) {
	input := `# header
# log file regions

# POSIX module data
# first block description

#<module> <rank> <counter> <value>
POSIX 0 POSIX_OPENS 4

# POSIX module data
# second block description

#<module> <rank> <counter> <value>
POSIX 1 POSIX_OPENS 7
`
	doc, err := Scan(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(doc.Modules))
	}
	m := doc.Module("POSIX")
	if len(m.Rows) != 2 {
		t.Fatalf("expected 2 accumulated rows, got %d", len(m.Rows))
	}
	if m.Description != "# first block description" {
		t.Fatalf("first occurrence should fix the description, got %q", m.Description)
	}
}

// A section still open at end of input is closed implicitly.
func TestScan_UnterminatedSection(t *testing.T) {
	input := "# h\n# log file regions\n#<module> <rank> <counter> <value>\nSTDIO 0 STDIO_WRITES 3"
	doc, err := Scan(input)
	if err != nil {
		t.Fatal(err)
	}
	m := doc.Module("STDIO")
	if m == nil || len(m.Rows) != 1 {
		t.Fatalf("expected STDIO with 1 row, got %+v", m)
	}
}

func TestParseColumns_SpacesNormalized(t *testing.T) {
	cols := parseColumns("#<module>\t<rank>\t<record id>\t<counter>\t<value>\t<file name>\t<mount pt>\t<fs type>")
	want := []string{"module", "rank", "record_id", "counter", "value", "file_name", "mount_pt", "fs_type"}
	if !reflect.DeepEqual(cols, want) {
		t.Fatalf("got %v, want %v", cols, want)
	}
}
