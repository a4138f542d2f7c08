package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"frigate_confgen/internal/camera"
	"frigate_confgen/internal/config"
	"frigate_confgen/internal/logging"
	"frigate_confgen/internal/pipeline"
	"frigate_confgen/internal/probe"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile  string
		input    string
		output   string
		timeout  time.Duration
		workers  int
		logLevel string
		jsonLogs bool
	)

	cmd := &cobra.Command{
		Use:   "frigate-confgen",
		Short: "Generate a Frigate config snippet from a camera list CSV",
		Long: `Reads camera credentials from a CSV file, checks which cameras are
reachable, and writes a Frigate-compatible configuration snippet with
online cameras first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				log := logging.New("info", jsonLogs)
				log.Error().Err(err).Msg("invalid configuration")
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.Input = input
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("timeout") {
				cfg.Probe.Timeout = config.Duration(timeout)
			}
			if flags.Changed("workers") {
				cfg.Probe.Workers = workers
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if flags.Changed("json-logs") {
				cfg.Log.JSON = jsonLogs
			}
			if err := cfg.Validate(); err != nil {
				log := logging.New(cfg.Log.Level, cfg.Log.JSON)
				log.Error().Err(err).Msg("invalid configuration")
				return err
			}

			logger := logging.New(cfg.Log.Level, cfg.Log.JSON)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var prober pipeline.Prober
			if cfg.Probe.Enabled {
				prober = probe.New(logger, probe.NewPingRunner(cfg.Probe.Timeout.Std()), cfg.Probe.Workers)
			} else {
				logger.Info().Msg("probing disabled, keeping camera list order")
				prober = probe.Static{Reachable: true}
			}

			summary, err := pipeline.New(logger, prober).Run(ctx, cfg)
			if err != nil {
				logger.Error().Err(err).Msg("run failed")
				return err
			}
			logSummary(logger, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default frigate-confgen.yaml in the working directory)")
	cmd.Flags().StringVar(&input, "input", "cameralist.csv", "camera list CSV to read")
	cmd.Flags().StringVar(&output, "output", "config.yaml", "config file to write")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "per-camera probe timeout")
	cmd.Flags().IntVar(&workers, "workers", 16, "concurrent reachability probes")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")
	cmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "emit JSON log lines instead of console output")

	return cmd
}

func logSummary(log zerolog.Logger, s camera.Summary) {
	log.Info().
		Int("cameras", s.Loaded).
		Int("online", s.Reachable).
		Int("offline", s.Unreachable).
		Int("dropped_rows", len(s.Dropped)).
		Int("main_streams", s.MainStreams).
		Int("sub_streams", s.SubStreams).
		Msg("run summary")

	for _, r := range s.Renames {
		log.Info().Str("from", r.From).Str("to", r.To).Msg("camera renamed for config compatibility")
	}
	if s.Unreachable > 0 {
		log.Info().Int("offline", s.Unreachable).Msg("offline cameras placed at the bottom of the config")
	}
}
