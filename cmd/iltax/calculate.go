package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/rgehrsitz/iltax/internal/freedom"
	"github.com/rgehrsitz/iltax/internal/output"
	"github.com/rgehrsitz/iltax/internal/scenario"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func calculateCmd(a *app) *cobra.Command {
	var (
		pf         profileFlags
		format     string
		reformSpec string
		investable string
		save       bool
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the tax burden of a profile",
		Long: `Calculate the itemized tax burden and the full analysis report for a profile.

Examples:
  iltax calculate --income 200000
  iltax calculate --income 350000 --gender female --children 2,5 --city tel_aviv
  iltax calculate --profile testdata/employee.yaml --format json --scenario income_tax_cut_25
  iltax calculate --profile testdata/employee.yaml --format pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := pf.build(cmd)
			if err != nil {
				return err
			}
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown output format %q (valid: %s)", format,
					strings.Join(append(output.AvailableFormatterNames(), output.AvailableFormatAliases()...), ", "))
			}
			reform, err := scenario.NewRegistry().Resolve(reformSpec)
			if err != nil {
				return err
			}
			amount, err := parseAmount("investable", investable)
			if err != nil {
				return err
			}

			result, err := a.engine().Calculate(profile)
			if err != nil {
				return err
			}
			data, err := a.rates.Load(profile.TaxYear)
			if err != nil {
				return err
			}
			report, err := output.BuildReport(profile, result, data.CostAnalysis, freedom.DefaultPolicy(), reform, amount)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{"report": report.ID, "format": formatter.Name()}).Debug("report built")

			// Binary output always goes to a file
			if save || formatter.Name() == "pdf" {
				filename, err := output.WriteFormatted(formatter, report, output.FileExtension(formatter))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}
			rendered, err := formatter.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(rendered)
			return err
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, console-lite, json, yaml, csv, pdf)")
	cmd.Flags().StringVarP(&reformSpec, "scenario", "s", "libertarian", "Reform template or custom:income_tax=..,vat=..,ni=.. spec")
	cmd.Flags().StringVar(&investable, "investable", "0", "Annual amount invested, for the capital gains comparison")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to iltax_report_<timestamp>.<ext> instead of stdout")
	return cmd
}

func yearArg(a *app, args []string) ([]int, error) {
	if len(args) == 0 {
		years := a.rates.AvailableYears()
		if len(years) == 0 {
			return nil, fmt.Errorf("no rate data available: %w", domain.ErrNoRateData)
		}
		return years, nil
	}
	var year int
	if _, err := fmt.Sscanf(args[0], "%d", &year); err != nil || year <= 0 {
		return nil, fmt.Errorf("invalid year %q", args[0])
	}
	return []int{year}, nil
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [year]",
		Short: "Load and validate the rate data for a year (all years by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			years, err := yearArg(a, args)
			if err != nil {
				return err
			}
			for _, year := range years {
				data, err := a.rates.Load(year)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d: valid (%d brackets, %d budget categories, %d cities, %d cost entries)\n",
					year, len(data.IncomeTax.Brackets), len(data.Budget), len(data.Arnona), len(data.CostAnalysis))
			}
			return nil
		},
	}
}

func citiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cities [year]",
		Short: "List the cities with arnona data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := 2025
			if len(args) == 1 {
				years, err := yearArg(a, args)
				if err != nil {
					return err
				}
				year = years[0]
			}
			data, err := a.rates.Load(year)
			if err != nil {
				return err
			}
			t := table.New().
				Headers("ID", "CITY", "NAME", "RATE/M²", "ANNUAL", "MONTHLY").
				Rows(lo.Map(data.Arnona, func(c domain.ArnonaCity, _ int) []string {
					return []string{
						c.ID, c.NameEn, c.NameHe,
						output.FormatCurrency(c.RatePerSqm),
						output.FormatCurrency(c.AvgAnnualArnona),
						output.FormatCurrency(c.AvgMonthlyArnona),
					}
				})...)
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in reform templates and scenario factories",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), scenario.Help(scenario.NewRegistry()))
		},
	}
}
