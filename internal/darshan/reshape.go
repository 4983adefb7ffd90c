package darshan

import "strings"

// Table is the wide-format reshape of one module: one row per distinct
// identity-key combination, one column per observed counter.
type Table struct {
	Columns []string // identity columns in spec order, then counters first-seen
	Rows    [][]string
}

// wideRow accumulates counter/value pairs for one identity-key group.
type wideRow struct {
	identity []string
	values   map[string]string
}

// Reshape pivots a module's long-format rows into a wide table. The grouping
// key is every column except counter and value. The first observed value wins
// when an (identity, counter) pair repeats; counters never observed for a
// group leave an empty cell. Row order follows first appearance of each group.
func Reshape(m *Module) (*Table, error) {
	if len(m.Rows) == 0 {
		return nil, &EmptyCategoryError{Module: m.Name}
	}

	counterIdx, valueIdx := -1, -1
	var identityIdx []int
	for i, c := range m.Columns {
		switch c {
		case "counter":
			counterIdx = i
		case "value":
			valueIdx = i
		default:
			identityIdx = append(identityIdx, i)
		}
	}
	if counterIdx < 0 || valueIdx < 0 {
		return nil, &DegenerateSchemaError{Module: m.Name, Reason: "no counter/value columns"}
	}
	if len(identityIdx) == 0 {
		return nil, &DegenerateSchemaError{Module: m.Name, Reason: "no identity columns"}
	}

	groups := make(map[string]*wideRow)
	var order []*wideRow
	var counters []string
	counterSeen := make(map[string]bool)

	for _, raw := range m.Rows {
		row, err := alignRow(m, raw)
		if err != nil {
			return nil, err
		}

		identity := make([]string, len(identityIdx))
		for i, idx := range identityIdx {
			identity[i] = row[idx]
		}
		key := strings.Join(identity, "\x1f")

		g := groups[key]
		if g == nil {
			g = &wideRow{identity: identity, values: make(map[string]string)}
			groups[key] = g
			order = append(order, g)
		}

		counter := row[counterIdx]
		if !counterSeen[counter] {
			counterSeen[counter] = true
			counters = append(counters, counter)
		}
		if _, ok := g.values[counter]; !ok {
			g.values[counter] = row[valueIdx]
		}
	}

	columns := make([]string, 0, len(identityIdx)+len(counters))
	for _, idx := range identityIdx {
		columns = append(columns, m.Columns[idx])
	}
	columns = append(columns, counters...)

	rows := make([][]string, 0, len(order))
	for _, g := range order {
		row := make([]string, 0, len(columns))
		row = append(row, g.identity...)
		for _, c := range counters {
			row = append(row, g.values[c])
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// alignRow maps a raw token sequence onto the module's columns. Extra leading
// tokens are dropped so the trailing window lines up with the named columns;
// a row shorter than the column spec cannot be aligned at all.
func alignRow(m *Module, raw []string) ([]string, error) {
	switch {
	case len(raw) == len(m.Columns):
		return raw, nil
	case len(raw) > len(m.Columns):
		return raw[len(raw)-len(m.Columns):], nil
	default:
		return nil, &RowMismatchError{Module: m.Name, Tokens: len(raw), Columns: len(m.Columns)}
	}
}
