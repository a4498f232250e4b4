package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"gitbookpdf/internal/archive"
	"gitbookpdf/internal/browser"
	"gitbookpdf/internal/config"
	"gitbookpdf/internal/discover"
	"gitbookpdf/internal/log"
	"gitbookpdf/internal/model"
	"gitbookpdf/internal/mutate"
	"gitbookpdf/internal/report"
	"gitbookpdf/internal/robots"
)

// NewRootCmd creates the root command for gitbookpdf.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitbookpdf <url>",
		Short: "Archive a GitBook documentation site as a folder of PDFs",
		Long: `gitbookpdf crawls a GitBook-hosted documentation site, discovers every
internal page reachable from the starting URL, and renders each page to a
PDF under the output directory, preserving the site's URL structure.

Pages are archived sequentially. A page that fails to load or render is
logged and skipped; only a failure on the starting page aborts the run.

Examples:
  # Archive a site into ./pages
  gitbookpdf https://docs.example.com

  # Custom output directory and a longer per-page timeout
  gitbookpdf https://docs.example.com --outDir archive --timeout 60

  # Keep a Markdown manifest of the run next to the PDFs
  gitbookpdf https://docs.example.com --report archive/manifest.md`,
		Args:          cobra.ExactArgs(1),
		RunE:          runRootCmd,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringP("outDir", "o", config.DefaultOutDir,
		"Directory to write PDFs under")
	cmd.Flags().Float64P("timeout", "t", config.DefaultTimeoutSeconds,
		"Per-page navigation timeout in seconds (0 disables)")
	cmd.Flags().BoolP("verbose", "v", false,
		"Enable debug logging")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .gitbookpdf.yaml in current or XDG config directory)")
	cmd.Flags().String("report", "",
		"Write a run report to the specified file (creates directories if needed)")
	cmd.Flags().Bool("json", false,
		"Output the run report as JSON instead of Markdown")
	cmd.Flags().Bool("ignore-robots", false,
		"Skip the robots.txt check before archiving links")
	cmd.Flags().Bool("skip-platform-check", false,
		"Archive even if the entry page does not look like a GitBook site")
	cmd.Flags().Bool("headful", false,
		"Run a visible browser window instead of headless (debugging)")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRootCmd executes the archive run.
func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, rules, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.New(cmd.ErrOrStderr(), cfg.Verbose)

	// Cancel the run on interrupt so the browser shuts down cleanly.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runArchive(ctx, cfg, rules, logger, cmd.OutOrStdout())
}

// buildConfig assembles the run configuration from flags plus the
// optional YAML file, and resolves the DOM preparation rules.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, []mutate.Rule, error) {
	cfg := config.NewConfig()
	cfg.EntryURL = args[0]

	var err error

	cfg.OutDir, err = cmd.Flags().GetString("outDir")
	if err != nil {
		return nil, nil, err
	}

	timeoutSeconds, err := cmd.Flags().GetFloat64("timeout")
	if err != nil {
		return nil, nil, err
	}
	cfg.SetTimeoutSeconds(timeoutSeconds)

	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report")
	if err != nil {
		return nil, nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, nil, err
	}

	cfg.IgnoreRobots, err = cmd.Flags().GetBool("ignore-robots")
	if err != nil {
		return nil, nil, err
	}

	cfg.SkipPlatformCheck, err = cmd.Flags().GetBool("skip-platform-check")
	if err != nil {
		return nil, nil, err
	}

	cfg.Headful, err = cmd.Flags().GetBool("headful")
	if err != nil {
		return nil, nil, err
	}

	// Load the YAML file: required when explicitly specified, optional
	// otherwise.
	rules := mutate.DefaultRules()
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
		if len(cf.Rules) > 0 {
			rules, err = mutate.FromConfig(cf.Rules)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid rules in %s: %w", configPath, err)
			}
		}
	} else if explicitConfigPath {
		return nil, nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, rules, nil
}

// runArchive acquires the browser, runs discovery and archiving, and
// writes the run report.
//
// The browsing engine is the run's one shared resource: acquired here,
// released exactly once via defer on every exit path.
func runArchive(ctx context.Context, cfg *config.Config, rules []mutate.Rule, logger *slog.Logger, stdout io.Writer) error {
	logger.Info("starting archive",
		"entryURL", cfg.EntryURL,
		"outDir", cfg.OutDir,
		"timeout", cfg.Timeout,
	)

	engine, err := browser.Launch(cfg)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Error("failed to close browser", "error", err)
		}
	}()

	var robotRules *robots.Rules
	if !cfg.IgnoreRobots {
		robotRules, err = robots.Fetch(ctx, robots.DefaultClient(cfg.Timeout), cfg.EntryURL, cfg.UserAgent, logger)
		if err != nil {
			return err
		}
	}

	archiver, err := archive.New(cfg, engine,
		archive.WithRules(rules),
		archive.WithRobots(robotRules),
		archive.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	discoverer := discover.New(cfg.EntryURL,
		discover.WithRules(rules),
		discover.WithPlatformCheck(!cfg.SkipPlatformCheck),
		discover.WithLogger(logger),
	)

	runReport, err := archiver.Run(ctx, discoverer)
	if err != nil {
		if errors.Is(err, context.Canceled) && runReport != nil {
			// Interrupted mid-run: report what was archived, then
			// surface the cancellation.
			if reportErr := writeReport(cfg, runReport, stdout); reportErr != nil {
				logger.Error("failed to write report", "error", reportErr)
			}
		}
		return err
	}

	return writeReport(cfg, runReport, stdout)
}

// writeReport outputs the run report in the requested format.
func writeReport(cfg *config.Config, runReport *model.RunReport, stdout io.Writer) error {
	var output io.Writer = stdout

	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // Report output is not sensitive
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output)
	case cfg.ReportFile != "":
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(runReport)
	return err
}
