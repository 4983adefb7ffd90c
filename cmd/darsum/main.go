package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jorge-barreto/darsum/internal/agent"
	"github.com/jorge-barreto/darsum/internal/artifacts"
	"github.com/jorge-barreto/darsum/internal/config"
	"github.com/jorge-barreto/darsum/internal/darshan"
	"github.com/jorge-barreto/darsum/internal/docs"
	"github.com/jorge-barreto/darsum/internal/dump"
	"github.com/jorge-barreto/darsum/internal/scaffold"
	"github.com/jorge-barreto/darsum/internal/ux"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:        "darsum",
		Usage:       "Analyze and summarize Darshan I/O profiling logs",
		Description: "Run 'darsum docs' for documentation on the log format, workflow, config, and output layout.",
		Commands: []*cli.Command{
			analyzeCmd(),
			parseCmd(),
			questionCmd(),
			modulesCmd(),
			initCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Parse a Darshan log and run the full LLM analysis",
		ArgsUsage: "<log.darshan>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "Output directory (default: darshan_analysis_<logname>)"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "Agent model: opus, sonnet, or haiku"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logPath := cmd.Args().First()
			if logPath == "" {
				return fmt.Errorf("log argument is required")
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := agent.Preflight(); err != nil {
				return err
			}

			outputDir := cmd.String("output-dir")
			if outputDir == "" {
				outputDir = defaultDir("darshan_analysis_", logPath)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			ux.Banner("DARSHAN LOG SUMMARIZER")
			ux.Info("log file: %s", logPath)
			ux.Info("model:    %s", cfg.Model)

			doc, err := parseToDir(ctx, cfg, logPath, outputDir)
			if err != nil {
				return err
			}
			if len(doc.Modules) == 0 {
				return darshan.ErrNoData
			}

			sess := artifacts.NewSession(logPath, cfg.Model)
			if err := sess.Save(outputDir); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			a := &agent.Agent{
				OutputDir: outputDir,
				Model:     cfg.Model,
				Timeout:   cfg.AgentTimeoutDuration(),
			}

			ux.StepHeader(2, "Analyzing Darshan log")
			transcript, err := a.Analyze(ctx, doc.ModuleNames(), cfg.Tuning)
			if err != nil {
				return failSession(sess, outputDir, err)
			}

			ux.StepHeader(3, "Generating summary")
			if _, err := a.Summarize(ctx, transcript); err != nil {
				return failSession(sess, outputDir, err)
			}

			sess.Status = artifacts.StatusCompleted
			if err := sess.Save(outputDir); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			ux.Complete(outputDir)
			return nil
		},
	}
}

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a Darshan log to CSV tables without running any analysis",
		ArgsUsage: "<log.darshan>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "Output directory (default: darshan_parsed_<logname>)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logPath := cmd.Args().First()
			if logPath == "" {
				return fmt.Errorf("log argument is required")
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			outputDir := cmd.String("output-dir")
			if outputDir == "" {
				outputDir = defaultDir("darshan_parsed_", logPath)
			}

			ux.Banner("DARSHAN LOG PARSER")
			if _, err := parseToDir(ctx, cfg, logPath, outputDir); err != nil {
				return err
			}
			ux.Complete(outputDir)
			return nil
		},
	}
}

func questionCmd() *cli.Command {
	return &cli.Command{
		Name:      "question",
		Usage:     "Ask a question about a previously parsed log",
		ArgsUsage: "<analysis-dir> <question>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "Agent model: opus, sonnet, or haiku"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().Get(0)
			question := cmd.Args().Get(1)
			if dir == "" || question == "" {
				return fmt.Errorf("analysis-dir and question arguments are required")
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := agent.Preflight(); err != nil {
				return err
			}

			modules, err := artifacts.ListModules(dir)
			if err != nil {
				return err
			}
			if len(modules) == 0 {
				return fmt.Errorf("no module tables found in %s — run 'darsum parse' first", dir)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			ux.Banner("DARSHAN LOG Q&A")
			ux.Info("analysis directory: %s", dir)
			ux.Info("modules: %d", len(modules))

			a := &agent.Agent{
				OutputDir: dir,
				Model:     cfg.Model,
				Timeout:   cfg.AgentTimeoutDuration(),
			}
			answer, err := a.Question(ctx, modules, question)
			if err != nil {
				return err
			}

			ux.Answer(answer)
			return nil
		},
	}
}

func modulesCmd() *cli.Command {
	return &cli.Command{
		Name:      "modules",
		Usage:     "List the Darshan modules present in an output directory",
		ArgsUsage: "<analysis-dir>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				return fmt.Errorf("analysis-dir argument is required")
			}

			modules, err := artifacts.ListModules(dir)
			if err != nil {
				return err
			}
			if len(modules) == 0 {
				fmt.Println("(no module tables found)")
				return nil
			}
			for _, m := range modules {
				fmt.Println(m)
			}

			if sess, err := artifacts.LoadSession(dir); err == nil && sess != nil {
				ux.Info("\nlast run %s (%s, model %s, status %s)",
					sess.RunID, sess.Started.Format("2006-01-02 15:04"), sess.Model, sess.Status)
			}
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write an example darsum.yaml to the current directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'darsum docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// parseToDir runs the dump tool, restructures its output, and writes the
// artifact set. Shared by analyze and parse.
func parseToDir(ctx context.Context, cfg *config.Config, logPath, outputDir string) (*darshan.Document, error) {
	ux.StepHeader(1, "Parsing Darshan log")

	runner := dump.New(cfg.ParserBin, cfg.ParserTimeoutDuration())
	content, err := runner.Run(ctx, logPath)
	if err != nil {
		return nil, err
	}

	doc, err := darshan.Scan(content)
	if err != nil {
		return nil, err
	}

	if err := artifacts.WriteDocument(outputDir, doc); err != nil {
		return nil, err
	}
	for _, m := range doc.Modules {
		ux.ModuleSaved(m.Name)
	}
	ux.Info("parsed %d modules from %s", len(doc.Modules), filepath.Base(logPath))
	return doc, nil
}

// resolveConfig loads the nearest darsum.yaml (or defaults) and applies any
// --model override.
func resolveConfig(cmd *cli.Command) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if model := cmd.String("model"); model != "" {
		cfg.Model = model
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// defaultDir derives an output directory next to cwd from the log name.
func defaultDir(prefix, logPath string) string {
	return prefix + dump.BaseName(logPath)
}

// failSession marks the session failed before surfacing the pipeline error.
func failSession(sess *artifacts.Session, outputDir string, err error) error {
	sess.Status = artifacts.StatusFailed
	if saveErr := sess.Save(outputDir); saveErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save session: %v\n", saveErr)
	}
	return err
}
