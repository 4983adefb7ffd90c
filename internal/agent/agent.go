package agent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jorge-barreto/darsum/internal/artifacts"
	"github.com/jorge-barreto/darsum/internal/prompts"
)

// Agent drives LLM analysis sessions over a populated output directory by
// invoking the claude CLI there. The agent's own tools execute the pandas
// analysis code inside that directory.
type Agent struct {
	OutputDir string
	Model     string
	Timeout   time.Duration // per invocation; 0 means no limit
}

// Preflight checks that the agent CLI is available before any work starts.
func Preflight() error {
	if _, err := exec.LookPath("claude"); err != nil {
		return fmt.Errorf("claude not found in PATH (required for analysis)")
	}
	return nil
}

// Analyze runs the main analysis session and persists the transcript as
// analysis.md in the output directory.
func (a *Agent) Analyze(ctx context.Context, modules []string, tuning map[string]string) (string, error) {
	prompt := prompts.Analysis(modules, SetupCode(modules), tuning)
	transcript, err := a.run(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("analysis session: %w", err)
	}
	if err := artifacts.WriteText(a.OutputDir, "analysis.md", transcript); err != nil {
		return "", err
	}
	return transcript, nil
}

// Summarize condenses an analysis transcript and persists the result as
// summary.txt in the output directory.
func (a *Agent) Summarize(ctx context.Context, transcript string) (string, error) {
	summary, err := a.run(ctx, prompts.Summary(transcript))
	if err != nil {
		return "", fmt.Errorf("summary session: %w", err)
	}
	if err := artifacts.WriteText(a.OutputDir, "summary.txt", summary); err != nil {
		return "", err
	}
	return summary, nil
}

// Question answers a follow-up question against the existing output directory.
func (a *Agent) Question(ctx context.Context, modules []string, question string) (string, error) {
	prompt := prompts.QA(question, SetupCode(modules), true)
	answer, err := a.run(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("question session: %w", err)
	}
	return answer, nil
}

// run invokes claude -p in the output directory, streaming output to the
// terminal while teeing it into darsum.log and a capture buffer.
func (a *Agent) run(ctx context.Context, prompt string) (string, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "claude", "-p", prompt, "--model", a.Model)
	cmd.Dir = a.OutputDir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second

	logPath := filepath.Join(a.OutputDir, "darsum.log")
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}
	defer logFile.Close()

	var captured bytes.Buffer
	cmd.Stdout = io.MultiWriter(os.Stdout, logFile, &captured)
	cmd.Stderr = io.MultiWriter(os.Stderr, logFile, &captured)

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return captured.String(), nil
}
