package agent

import (
	"fmt"
	"strings"
)

// varName makes a module name usable as a Python identifier.
func varName(module string) string {
	r := strings.NewReplacer("-", "_", " ", "_")
	return r.Replace(module)
}

// SetupCode renders the Python bootstrap that loads every module's table and
// description into the analysis environment. Module order is preserved so the
// rendered code is deterministic for a given document.
func SetupCode(modules []string) string {
	lines := []string{
		"import pandas as pd",
		"import numpy as np",
		"import os",
		"",
		"header = open('header.txt', 'r').read()",
		"",
	}
	for _, module := range modules {
		v := varName(module)
		lines = append(lines,
			fmt.Sprintf("%s_data = pd.read_csv('%s.csv')", v, module),
			fmt.Sprintf("%s_description = open('%s_description.txt', 'r').read()", v, module),
		)
	}
	return strings.Join(lines, "\n")
}
