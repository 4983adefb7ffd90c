package darshan

import (
	"regexp"
	"strings"
)

// Markers in darshan-parser output that drive section transitions.
const (
	// regionsMarker ends the free-text header block. The line carrying it
	// belongs to neither the header nor any module section.
	regionsMarker = "log file regions"
	// moduleDataMarker opens a module's descriptive block and discards any
	// partial description accumulated before it.
	moduleDataMarker = "module data"
	// columnSpecPrefix introduces the column definition line for a module.
	columnSpecPrefix = "#<module>"
)

// skipLines are boilerplate warnings darshan-runtime injects into parser
// output. They are dropped wherever they appear so they never leak into the
// header, a description, or a data row.
var skipLines = map[string]bool{
	"# *WARNING*: The POSIX module contains incomplete data!": true,
	"#            This happens when a module runs out of":     true,
	"#            memory to store new record data.":           true,
	"# To avoid this error, consult the darshan-runtime":      true,
	"# documentation and consider setting the":                true,
	"# DARSHAN_EXCLUDE_DIRS environment variable to prevent":  true,
	"# Darshan from instrumenting unecessary files.":          true,
}

var columnRe = regexp.MustCompile(`<(.*?)>`)

// Module holds one named subsystem's accumulated section data in long format:
// one raw row per counter observation.
type Module struct {
	Name        string
	Description string   // comment lines preceding the column spec, verbatim
	Columns     []string // from the column spec line, spaces normalized to _
	Rows        [][]string
}

// Document is the structured form of one darshan-parser run.
type Document struct {
	Header  string    // free-text metadata before the regions marker
	Modules []*Module // first-seen order

	byName map[string]*Module
}

// Module returns the named module, or nil if the document has none.
func (d *Document) Module(name string) *Module {
	return d.byName[name]
}

// ModuleNames returns module names in first-seen order.
func (d *Document) ModuleNames() []string {
	names := make([]string, len(d.Modules))
	for i, m := range d.Modules {
		names[i] = m.Name
	}
	return names
}

// Scan partitions darshan-parser output into a header block and per-module
// sections in a single pass. A module section starts at a column spec line and
// ends at a blank line or end of input. A module name that reappears in a
// later block accumulates rows into the same Module; the first occurrence
// fixes its columns and description.
//
// If the regions marker never appears the whole document is header and zero
// modules are returned. Empty input is the only scan error.
func Scan(text string) (*Document, error) {
	if text == "" {
		return nil, ErrNoData
	}

	doc := &Document{byName: make(map[string]*Module)}
	var header strings.Builder
	var desc []string
	var columns []string
	var current *Module
	inHeader := true
	inModule := false

	// A newline-terminated document must not grow a phantom empty line, so
	// the final newline is dropped before splitting and restored per line.
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if skipLines[line] {
			continue
		}

		if inHeader {
			if strings.Contains(line, regionsMarker) {
				inHeader = false
				continue
			}
			header.WriteString(line)
			header.WriteByte('\n')
			continue
		}

		switch {
		case strings.Contains(line, moduleDataMarker):
			desc = nil

		case strings.HasPrefix(line, columnSpecPrefix):
			columns = parseColumns(line)
			current = nil
			inModule = true

		case !inModule && strings.HasPrefix(line, "#"):
			desc = append(desc, line)

		case inModule:
			if strings.TrimSpace(line) == "" {
				inModule = false
				current = nil
				columns = nil
				continue
			}
			fields := strings.Fields(line)
			if current == nil {
				name := fields[0]
				m := doc.byName[name]
				if m == nil {
					m = &Module{
						Name:        name,
						Columns:     columns,
						Description: strings.Join(desc, "\n"),
					}
					doc.byName[name] = m
					doc.Modules = append(doc.Modules, m)
				}
				current = m
			}
			current.Rows = append(current.Rows, fields)
		}
	}

	doc.Header = header.String()
	return doc, nil
}

// parseColumns extracts the <name> tokens from a column spec line.
// Embedded spaces become underscores so names are usable as CSV headers.
func parseColumns(line string) []string {
	matches := columnRe.FindAllStringSubmatch(line, -1)
	columns := make([]string, 0, len(matches))
	for _, m := range matches {
		columns = append(columns, strings.ReplaceAll(m[1], " ", "_"))
	}
	return columns
}
