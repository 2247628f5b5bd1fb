package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clawaudit/clawaudit/internal/audit"
	"github.com/clawaudit/clawaudit/internal/config"
	"github.com/clawaudit/clawaudit/internal/errors"
	"github.com/clawaudit/clawaudit/internal/log"
	"github.com/clawaudit/clawaudit/internal/metrics"
	"github.com/clawaudit/clawaudit/internal/paths"
	"github.com/clawaudit/clawaudit/internal/probe"
	"github.com/clawaudit/clawaudit/internal/report"
	"github.com/clawaudit/clawaudit/internal/security"
	"github.com/clawaudit/clawaudit/internal/version"
)

// newHost returns the host the audit probes. Tests replace it.
var newHost = func() probe.Host { return probe.NewSystem() }

// NewRootCommand builds the command tree. The root command runs the audit.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "clawaudit",
		Short: "Security posture verification for OpenClaw gateway hosts",
		Long: `clawaudit inspects an OpenClaw deployment (the gateway configuration document
plus the host it runs on) and reports pass, warn and fail findings across eight
security domains. It never modifies the configuration or the host.

Exit status is 1 when any check fails and 0 otherwise. It is not affected by
--metrics-file: a metrics file that cannot be written is logged to stderr.
Usage errors exit 2 and a missing or invalid configuration exits 3.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runAudit,
	}

	flags := root.Flags()
	flags.BoolP("verbose", "v", false, "show informational notes")
	flags.Bool("json", false, "emit the report as JSON (same as --format json)")
	flags.String("format", "text", "output format: text, json, yaml")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("parallel", false, "evaluate checks concurrently")
	flags.String("state-dir", "", "deployment state directory (default $OPENCLAW_STATE_DIR or ~/.openclaw)")
	flags.String("config", "", "gateway configuration file (default $OPENCLAW_CONFIG_PATH or <state-dir>/openclaw.json)")
	flags.String("metrics-file", "", "write Prometheus textfile metrics to this path")

	persistent := root.PersistentFlags()
	persistent.String("log-level", "warn", "log level: debug, info, warn, error")
	persistent.String("log-format", "text", "log format: text, json")

	root.AddCommand(newChecksCommand(), newVersionCommand())
	return root
}

// ExecuteContext runs the root command with ctx, which is cancelled on interrupt
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func runAudit(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cc.LogLevel, cc.LogFormat)
	if err != nil {
		return err
	}

	format := report.FormatJSON
	if !cc.JSON {
		if format, err = report.ParseFormat(cc.Format); err != nil {
			return err
		}
	}

	p, err := paths.Resolve(paths.Overrides{StateDir: cc.StateDir, ConfigFile: cc.ConfigFile})
	if err != nil {
		return err
	}

	tree, err := config.Load(p.ConfigFile)
	if err != nil {
		logger.WithError(err).Debug("configuration not loaded", "path", p.ConfigFile)
		return err
	}

	logger = logger.With("run_id", uuid.NewString(), "config_digest", tree.ShortDigest())
	logger.Debug("configuration loaded",
		"path", tree.Source(),
		"state_dir", p.StateDir,
		"parallel", cc.Parallel,
	)

	evaluator := audit.NewEvaluator(audit.DefaultCatalog(),
		audit.WithLogger(logger),
		audit.WithParallel(cc.Parallel),
	)

	start := time.Now()
	result := evaluator.Evaluate(cmd.Context(), audit.Input{
		Config:  tree,
		Host:    newHost(),
		Paths:   p,
		Scanner: security.NewSecretScanner(),
	})
	elapsed := time.Since(start)

	if err := cmd.Context().Err(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer, err := report.NewRenderer(format, report.Options{
		Writer:  out,
		Verbose: cc.Verbose,
		NoColor: cc.NoColor || !isTerminal(out),
		Source:  tree.Source(),
		Digest:  tree.ShortDigest(),
	})
	if err != nil {
		return err
	}
	if err := renderer.Render(result); err != nil {
		return err
	}

	// The exit status reflects the posture only, so a metrics failure is
	// logged rather than returned.
	if cc.MetricsFile != "" {
		if err := metrics.WriteTextfile(cc.MetricsFile, result, time.Now(), elapsed); err != nil {
			logger.LogError(err)
		} else {
			logger.Debug("metrics written", "path", cc.MetricsFile)
		}
	}

	disposition := result.Disposition()
	logger.Info("audit complete",
		"disposition", disposition.String(),
		"pass", result.Counts.Pass,
		"warn", result.Counts.Warn,
		"fail", result.Counts.Fail,
		"total", result.Counts.Total(),
		"duration", elapsed,
	)

	if disposition.Failed() {
		return errors.NewPostureFailedError(result.Counts.Fail)
	}
	if disposition == audit.DispositionWarn && format.IsDocument() {
		logger.Warn("audit passed with warnings", "warn", result.Counts.Warn)
	}
	return nil
}

func newLogger(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	fmtLog, err := log.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	cfg := log.DefaultConfig()
	if lvl == log.LevelDebug {
		cfg = log.DebugConfig()
	}
	cfg.Level = lvl
	cfg.Format = fmtLog
	cfg.Output = log.NewOutput(w)
	cfg.ServiceVersion = version.GetInfo().Version

	return log.New(cfg), nil
}

// isTerminal reports whether w is a terminal. Colors are only emitted then.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
