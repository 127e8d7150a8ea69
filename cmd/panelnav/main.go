package main

import (
	"context"
	"fmt"
	"os"

	"panelnav/internal/config"
	"panelnav/internal/input"
	"panelnav/internal/lifecycle"
	"panelnav/internal/localize"
	"panelnav/internal/location"
	"panelnav/internal/logging"
	"panelnav/internal/pages"
	"panelnav/internal/panel"
	"panelnav/internal/progress"
	"panelnav/internal/telemetry"
	"panelnav/internal/transition"
	"panelnav/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath  string
	panel       string
	historyPath string
	logFile     string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:   "panelnav",
		Short: "Navigate between the panels of a document, one at a time",
		Long: `panelnav shows one panel of a document at a time. Buttons and the
SPC leader switch panels, Escape goes back, and the header progress bar
follows the scroll position. The current panel is kept in the location's
"panel" parameter and recorded in history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/panelnav/config.yaml)")
	f.StringVar(&opts.panel, "panel", "", "panel to open at start, overriding the start location")
	f.StringVar(&opts.historyPath, "history", "", "sqlite history database (default: in memory)")
	f.StringVar(&opts.logFile, "log-file", "", "log file (default $XDG_STATE_HOME/panelnav/panelnav.log)")
	return cmd
}

func run(ctx context.Context, opts rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.historyPath != "" {
		cfg.History.Path = opts.historyPath
	}
	logPath := cfg.Log.File
	if opts.logFile != "" {
		logPath = opts.logFile
	}
	if logPath == "" {
		logPath = logging.DefaultPath()
	}

	logger, logFile, err := logging.Open(logPath, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctx = logging.WithContext(ctx, logger)

	tp, err := telemetry.NewProvider(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	start, err := location.Parse(cfg.StartURL)
	if err != nil {
		return fmt.Errorf("start location: %w", err)
	}
	var hist location.History
	if cfg.History.Path != "" {
		sh, err := location.OpenSQLite(cfg.History.Path, start)
		if err != nil {
			return err
		}
		defer sh.Close()
		hist = sh
	} else {
		hist = location.NewMemoryHistory(start)
	}
	// A persisted history resumes at its last location.
	start = hist.Location()
	if opts.panel != "" {
		start = start.WithPanel(opts.panel)
	}

	doc := cfg.Document()
	if cfg.Labels != "" {
		labels, err := localize.Load(cfg.Labels)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.Labels).Msg("labels not loaded")
		} else {
			localize.Apply(doc, labels)
		}
	}
	reg := panel.Discover(doc)

	ns := lifecycle.NewNamespace()
	if _, _, err := pages.Register(ns); err != nil {
		return err
	}
	lm := lifecycle.NewManager(ns)
	tracker := progress.NewTracker(nil)

	ctrl := transition.New(transition.Options{
		Registry:  reg,
		History:   hist,
		Lifecycle: lm,
		Tracker:   tracker,
		Logger:    logging.WithComponent(logger, "transition"),
		Tracer:    tp.Tracer(),
	})
	router := input.NewRouter(reg, ctrl, logging.WithComponent(logger, "input"))
	if cfg.Input.EscapeRelease > 0 {
		router.ReleaseWindow = cfg.Input.EscapeRelease
	}

	zone.NewGlobal()
	model := ui.NewAppModel(ctx, ui.Options{
		Registry:     reg,
		Controller:   ctrl,
		Router:       router,
		Tracker:      tracker,
		Lifecycle:    lm,
		Start:        start,
		Logger:       logging.WithComponent(logger, "ui"),
		RowUnits:     cfg.Progress.RowUnits,
		SmoothFrames: cfg.Progress.SmoothFrames,
		WheelRows:    cfg.Progress.WheelRows,
	})
	p := tea.NewProgram(model.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	if cfg.Labels != "" {
		startWatcher(ctx, cfg.Labels, p, logging.WithComponent(logger, "localize"))
	}

	logger.Info().
		Str("config", cfg.File).
		Str("start", start.String()).
		Int("panels", reg.Len()).
		Bool("tracing", tp.Enabled()).
		Msg("panelnav starting")

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// startWatcher forwards label file changes to the program until ctx is done.
func startWatcher(ctx context.Context, path string, p *tea.Program, log zerolog.Logger) {
	w, err := localize.NewWatcher(path, func(labels localize.Labels) {
		p.Send(ui.LocalizedMsg{Labels: labels})
	}, log)
	if err != nil {
		log.Warn().Err(err).Msg("label watcher disabled")
		return
	}
	go func() {
		defer w.Close()
		w.Run(ctx)
	}()
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
