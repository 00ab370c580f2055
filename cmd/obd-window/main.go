package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/errors"
	"obd-dashboard.klederson.com/internal/logger"
	"obd-dashboard.klederson.com/internal/telemetry"
	"obd-dashboard.klederson.com/internal/window"
)

var flagReal bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "obd-window",
		Short: "OBD Dashboard - Desktop window with analog gauges",
		Long: `OBD Window shows the same dashboard as the terminal version in a
1024x600 desktop window, sized for small in-car displays.

Without flags the dashboard runs on simulated data.
Use --real to read from an ELM327 WiFi adapter.`,
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

	ctrl := window.New(source, settings.RefreshInterval)
	if openErr != nil {
		logger.WarnWithCode(openErr).Msg("falling back to simulated data")
		ctrl.SetBanner(telemetry.DowngradeNotice(openErr, settings), true)
	}

	logger.Info().
		Str("mode", source.Mode().String()).
		Str("adapter", settings.Address()).
		Msg("window starting")

	ctrl.Start()
	defer ctrl.Stop()

	ebiten.SetWindowTitle(ctrl.Title())
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetTPS(config.TargetFPS)

	if err := ebiten.RunGame(NewGame(ctrl)); err != nil {
		logger.Error().Err(err).Msg("window exited")
		return err
	}
	return nil
}
