package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/iltax/internal/breakeven"
	"github.com/rgehrsitz/iltax/internal/compare"
	"github.com/rgehrsitz/iltax/internal/scenario"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func compareCmd(a *app) *cobra.Command {
	var (
		pf     profileFlags
		base   string
		with   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank reform scenarios by how much they would save a profile",
		Long: `Compare a base reform scenario against alternatives for one profile.
Without --with every built-in template other than the base is ranked.

Examples:
  iltax compare --income 300000 --with income_tax_cut_10,vat_cut_half
  iltax compare --income 300000 --base income_tax_cut_10 --with "custom:income_tax=20,vat=50;flat:pct=10" --format csv
  iltax templates  # show all available templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := pf.build(cmd)
			if err != nil {
				return err
			}
			registry := scenario.NewRegistry()
			scenarios := scenario.ParseList(with)
			if len(scenarios) == 0 {
				scenarios = lo.FilterMap(registry.Templates(), func(t scenario.Template, _ int) (string, bool) {
					return t.Name, t.Name != base
				})
			}

			result, err := a.engine().Calculate(profile)
			if err != nil {
				return err
			}
			set, err := compare.NewCompareEngine(registry).Compare(result, compare.CompareOptions{
				BaseScenario: base,
				Scenarios:    scenarios,
				Label:        fmt.Sprintf("%s, %s, gross %s", profile.EmploymentType, profile.Gender, result.GrossIncome.StringFixed(0)),
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			var out string
			switch strings.ToLower(format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			case "table", "console", "":
				out = (&compare.TableFormatter{}).Format(set)
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&base, "base", "current", "Base scenario to compare against")
	cmd.Flags().StringVar(&with, "with", "", "Templates or specs to rank (comma-separated, ';' when specs have parameters)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	return cmd
}

func grossForNetCmd(a *app) *cobra.Command {
	var (
		pf     profileFlags
		amount string
		target string
		format string
	)
	cmd := &cobra.Command{
		Use:   "gross-for-net",
		Short: "Find the gross income that produces a target net income or employer cost",
		Long: `Search for the annual gross income at which the profile reaches the target.

Examples:
  iltax gross-for-net --net 160000
  iltax gross-for-net --net 250000 --employment self_employed
  iltax gross-for-net --net 300000 --target employer_cost --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := pf.build(cmd)
			if err != nil {
				return err
			}
			solveTarget, err := breakeven.ParseSolveTarget(target)
			if err != nil {
				return err
			}
			targetAmount, err := parseAmount("net", amount)
			if err != nil {
				return err
			}

			var res *breakeven.SolveResult
			if solveTarget == breakeven.TargetNetIncome {
				data, err := a.rates.Load(profile.TaxYear)
				if err != nil {
					return err
				}
				res, err = breakeven.SolveGrossForNet(cmd.Context(), profile, data, targetAmount)
				if err != nil {
					return err
				}
			} else {
				res, err = breakeven.NewDefaultSolver(a.engine()).Solve(cmd.Context(), breakeven.SolveRequest{
					Profile:      profile,
					Target:       solveTarget,
					TargetAmount: targetAmount,
				})
				if err != nil {
					return err
				}
			}

			switch strings.ToLower(format) {
			case "json":
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(res)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			case "table", "console", "":
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(res))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&amount, "net", "", "Target annual amount in shekels")
	cmd.Flags().StringVar(&target, "target", string(breakeven.TargetNetIncome), "What the amount targets (net_income, employer_cost)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	_ = cmd.MarkFlagRequired("net")
	return cmd
}
