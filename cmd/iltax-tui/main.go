package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/config"
	"github.com/rgehrsitz/iltax/internal/tui"
)

func main() {
	var (
		dataDir string
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "iltax-tui <profile.yaml>",
		Short: "Interactive tax reform explorer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := config.LoadProfile(args[0])
			if err != nil {
				return err
			}

			// The alternate screen owns the terminal, so logs go to a file or nowhere
			log := logrus.New()
			log.SetOutput(io.Discard)
			if logFile != "" {
				f, err := tea.LogToFile(logFile, "iltax-tui")
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				log.SetOutput(f)
				log.SetLevel(logrus.DebugLevel)
			}

			var rates calculation.BundleSource = config.NewRateDataLoader()
			if dataDir != "" {
				rates = config.NewRateDataLoaderWithDir(dataDir)
			}
			engine := calculation.NewEngine(rates)
			engine.SetLogger(log.WithField("module", "calculation"))

			p := tea.NewProgram(tui.NewModel(engine, *profile), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			if m, ok := final.(tui.Model); ok && m.Err() != nil {
				return m.Err()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory with rates_<year>.yaml files that override the embedded data")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write debug logs to this file")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
