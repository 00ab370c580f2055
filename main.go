package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"obd-dashboard.klederson.com/internal/app"
	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/errors"
	"obd-dashboard.klederson.com/internal/logger"
	"obd-dashboard.klederson.com/internal/telemetry"
)

var flagReal bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "obd-dashboard",
		Short: "OBD Dashboard - Terminal vehicle telemetry with analog gauges",
		Long: `OBD Dashboard shows live engine telemetry as a set of analog gauges,
with trend lines, counters since the last trouble code clear and a
diagnostics page to read and clear trouble codes.

Without flags the dashboard runs on simulated data.
Use --real to read from an ELM327 WiFi adapter. If the adapter cannot be
reached the dashboard falls back to simulated data and says so on screen.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().BoolVar(&flagReal, "real", false, "Read from a real OBD-II adapter instead of simulated data")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return errors.Wrap(errors.ErrInitApp, err)
	}

	closer, err := logger.InitFile(settings.LogFile, logger.ParseLevel(settings.LogLevel))
	if err != nil {
		return errors.Wrap(errors.ErrInitApp, err)
	}
	defer closer.Close()

	source, openErr := telemetry.Open(cmd.Context(), flagReal, settings)
	defer func() {
		if err := source.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing telemetry source")
		}
	}()

	logger.Info().
		Str("mode", source.Mode().String()).
		Str("adapter", settings.Address()).
		Msg("dashboard starting")

	model := app.New(source, settings.RefreshInterval)
	if openErr != nil {
		logger.WarnWithCode(openErr).Msg("falling back to simulated data")
		model = model.WithNotice(telemetry.DowngradeNotice(openErr, settings), true)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// p.Send blocks until Run is reading, so the loop must be stopped
	// after Run returns and never before.
	model.StartRefresh(p)
	defer model.Stop()

	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("terminal program exited")
		return err
	}
	return nil
}
