package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/darsum/internal/config"
	"github.com/jorge-barreto/darsum/internal/ux"
)

const configTemplate = `# darsum configuration. All fields are optional; these are the defaults.

# Agent model used for analysis and questions: opus, sonnet, or haiku.
model: sonnet

# Binary used to dump .darshan logs to text.
parser-bin: darshan-parser

# Timeouts in minutes. 0 disables the limit.
parser-timeout: 5
agent-timeout: 30

# File system parameters you are tuning. Each entry is injected into the
# analysis prompt so findings are framed around these knobs.
#tuning:
#  stripe_count: number of OSTs a file is striped across
#  stripe_size: bytes written to one OST before moving to the next
`

// Init writes an example darsum.yaml into targetDir. Refuses to overwrite an
// existing one.
func Init(targetDir string) error {
	path := filepath.Join(targetDir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, targetDir)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}

	fmt.Printf("%s✓%s Created %s\n", ux.Green, ux.Reset, path)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Edit %s if you want a different model or tuning parameters.\n", config.FileName)
	fmt.Printf("  2. Run %sdarsum analyze <app>.darshan%s to parse and analyze a log.\n", ux.Bold, ux.Reset)
	return nil
}
