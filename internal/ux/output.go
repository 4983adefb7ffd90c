package ux

import (
	"fmt"
	"strings"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

const rule = "══════════════════════════════════════"

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Banner prints the top-level program banner.
func Banner(title string) {
	fmt.Printf("%s%s%s\n%s%s%s\n", Cyan, rule, Reset, Bold, title, Reset)
}

// StepHeader prints a numbered pipeline step header.
func StepHeader(n int, title string) {
	fmt.Printf("\n%s[%s]%s %s%s%s\n", Dim, timestamp(), Reset, Cyan, rule, Reset)
	fmt.Printf("%s[%s]%s  %sSTEP %d: %s%s\n", Dim, timestamp(), Reset, Bold, n, title, Reset)
	fmt.Printf("%s[%s]%s %s%s%s\n", Dim, timestamp(), Reset, Cyan, rule, Reset)
}

// ModuleSaved prints a per-module progress line.
func ModuleSaved(name string) {
	fmt.Printf("  %s✓%s saved %s.csv and %s_description.txt\n", Green, Reset, name, name)
}

// Info prints a dim informational line.
func Info(format string, args ...any) {
	fmt.Printf("%s%s%s\n", Dim, fmt.Sprintf(format, args...), Reset)
}

// Complete prints the final completion message with the output location.
func Complete(outputDir string) {
	fmt.Printf("\n%s%s✓ Complete!%s Results saved to: %s\n", Green, Bold, Reset, outputDir)
}

// Answer prints a highlighted answer section for question runs.
func Answer(text string) {
	fmt.Printf("\n%s%s%s\n%sANSWER%s\n%s%s%s\n\n%s\n",
		Cyan, rule, Reset, Bold, Reset, Cyan, rule, Reset, strings.TrimSpace(text))
}
