package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/config"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logLevels = map[string]logrus.Level{
	"trace": logrus.TraceLevel,
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
}

// app holds the state shared by every subcommand once the global flags are parsed
type app struct {
	dataDir  string
	logLevel string

	log   *logrus.Logger
	rates *config.RateDataLoader
}

func (a *app) setup(cmd *cobra.Command) error {
	level, ok := logLevels[strings.ToLower(a.logLevel)]
	if !ok {
		return fmt.Errorf("--log-level must be one of %s", strings.Join(levelNames(), ", "))
	}
	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	a.log.SetLevel(level)

	if a.dataDir != "" {
		a.rates = config.NewRateDataLoaderWithDir(a.dataDir)
	} else {
		a.rates = config.NewRateDataLoader()
	}
	return nil
}

func (a *app) engine() *calculation.Engine {
	engine := calculation.NewEngine(a.rates)
	engine.SetLogger(a.log.WithField("module", "calculation"))
	return engine
}

func levelNames() []string {
	names := lo.Keys(logLevels)
	slices.Sort(names)
	return names
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "iltax",
		Short: "Israeli personal tax burden calculator",
		Long: `Calculates the itemized Israeli tax burden of a taxpayer profile: income tax,
National Insurance, health tax, credit points, VAT and employer cost, and analyzes
where the money goes and what reforms would save.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Directory with rates_<year>.yaml files that override the embedded data")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		calculateCmd(a),
		validateCmd(a),
		citiesCmd(a),
		compareCmd(a),
		grossForNetCmd(a),
		templatesCmd(),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "iltax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
