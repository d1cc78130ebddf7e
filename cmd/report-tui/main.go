package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/csams/report-tui/internal/config"
	"github.com/csams/report-tui/internal/logging"
	"github.com/csams/report-tui/internal/markdown"
	"github.com/csams/report-tui/internal/models"
	"github.com/csams/report-tui/internal/render"
	"github.com/csams/report-tui/internal/ui"
)

// Output formats of the render command
const (
	formatANSI  = "ansi"
	formatPlain = "plain"
	formatJSON  = "json"
)

type rootOptions struct {
	configDir string
	agent     string
}

// session is what every command needs after startup
type session struct {
	config *config.Config
	logger zerolog.Logger
	closer io.Closer
	set    *models.ReportSet
}

func (s *session) Close() {
	if s.closer != nil {
		s.closer.Close()
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "report-tui",
		Short:         "Read AI chess analysis reports in the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: user config dir)")
	root.PersistentFlags().StringVarP(&opts.agent, "agent", "a", "", "agent ID to show")

	root.AddCommand(newViewCmd(opts), newRenderCmd(opts), newExportCmd(opts))
	return root
}

func newViewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view <reports>",
		Short: "Browse every agent's report interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			app := ui.NewApp(s.config, s.set, opts.agent, s.logger)
			if err := app.Run(); err != nil {
				s.logger.Error().Err(err).Msg("viewer failed")
				return err
			}
			return nil
		},
	}
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		width  int
		color  string
	)

	cmd := &cobra.Command{
		Use:   "render <reports>",
		Short: "Print one report as styled text or JSON annotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := selectReport(s.set, opts.agent)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			cache := markdown.NewCache()
			s.logger.Debug().Str("agent_id", report.AgentID).Str("format", format).Msg("rendering report")

			switch format {
			case formatJSON:
				return render.WriteJSON(out, render.NewDocument(report, cache))
			case formatANSI, formatPlain:
				mode := color
				if mode == "" {
					mode = s.config.Color
				}
				profile := render.ProfileFor(mode, out)
				if format == formatPlain {
					profile = termenv.Ascii
				}
				w := outputWidth(width, s.config.Width, out)
				r := render.NewANSIRenderer(out, profile, w)
				_, err := fmt.Fprintln(out, r.RenderReport(report, cache))
				return err
			default:
				return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatANSI, formatPlain, formatJSON)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatANSI, "output format: ansi, plain or json")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "wrap at this many columns (default: config, then terminal width)")
	cmd.Flags().StringVar(&color, "color", "", "color mode: auto, always or never (default: config)")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <reports>",
		Short: "Write one report as a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := selectReport(s.set, opts.agent)
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				return render.ExportHTML(cmd.OutOrStdout(), report)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			if err := render.ExportHTML(f, report); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			s.logger.Info().Str("agent_id", report.AgentID).Str("path", outPath).Msg("exported report")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	return cmd
}

// openSession loads the config, opens the log and reads the report set
func openSession(opts *rootOptions, path string) (*session, error) {
	dir := opts.configDir
	if dir == "" {
		var err error
		if dir, err = config.GetConfigDir(); err != nil {
			return nil, err
		}
	}

	cm := config.NewConfigManager(dir)
	if err := cm.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.GetConfig()

	logger, closer, err := logging.Setup(cm.GetLogPath(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	s := &session{config: cfg, logger: logger, closer: closer}

	set, err := models.LoadReportSet(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("failed to load reports")
		s.Close()
		return nil, err
	}
	s.set = set
	logger.Info().Str("path", path).Int("reports", len(set.Reports)).Msg("loaded reports")
	return s, nil
}

// selectReport returns the requested agent's report, or the first
// successful one when no agent was asked for.
func selectReport(set *models.ReportSet, agent string) (*models.Report, error) {
	if agent != "" {
		return set.Get(agent)
	}
	id, err := set.InitialAgent("")
	if err != nil {
		return nil, err
	}
	return set.Get(id)
}

// outputWidth picks the wrap width: flag, then config, then the terminal
func outputWidth(flag, configured int, out io.Writer) int {
	if flag > 0 {
		return flag
	}
	if configured > 0 {
		return configured
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			return w
		}
	}
	return 0
}
