package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "iltax", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"calculate", "validate", "cities", "compare", "gross-for-net", "templates", "serve", "version"} {
		assert.Contains(t, names, want)
	}

	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--data-dir")
	assert.Contains(t, out, "--log-level")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "iltax dev (commit none")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "templates")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debug, error, info, trace, warn")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "2025: valid (")
	assert.Contains(t, out, "10 cities")

	_, err = run(t, "validate", "1999")
	assert.ErrorIs(t, err, domain.ErrNoRateData)

	_, err = run(t, "validate", "next")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid year")
}

func TestValidateCommand_DataDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/rates_2025.yaml", []byte("year: 2025\n"), 0o644))

	_, err := run(t, "--data-dir", dir, "validate", "2025")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCitiesCommand(t *testing.T) {
	out, err := run(t, "cities")
	require.NoError(t, err)
	assert.Contains(t, out, "tel_aviv")
	assert.Contains(t, out, "Tel Aviv-Yafo")
	assert.Contains(t, out, "₪6,615.00")
}

func TestTemplatesCommand(t *testing.T) {
	out, err := run(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "libertarian")
	assert.Contains(t, out, "custom:income_tax=<pct>")
}

func TestCalculateCommand(t *testing.T) {
	out, err := run(t, "calculate", "--income", "200000", "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "TAX BURDEN SUMMARY 2025")
	assert.Contains(t, out, "Freedom score: 58 (C)")
}

func TestCalculateCommand_JSONFromProfile(t *testing.T) {
	out, err := run(t, "calculate", "--profile", "testdata/employee.yaml", "--format", "json", "--scenario", "income_tax_cut_10")
	require.NoError(t, err)

	var report struct {
		ID     string `json:"id"`
		Result struct {
			NetIncome string `json:"netIncome"`
		} `json:"result"`
		Reform struct {
			AnnualSavings string `json:"annualSavings"`
		} `json:"reform"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "159828.54", report.Result.NetIncome)
	assert.Equal(t, "2354", report.Reform.AnnualSavings)
}

func TestCalculateCommand_FlagOverridesProfile(t *testing.T) {
	out, err := run(t, "calculate", "--profile", "testdata/employee.yaml", "--income", "0", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"netIncome": "0"`)
}

func TestCalculateCommand_PDFWritesFile(t *testing.T) {
	chdirForTest(t, t.TempDir())

	out, err := run(t, "calculate", "--income", "200000", "--format", "pdf")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Report written to iltax_report_"), out)

	filename := strings.TrimSpace(strings.TrimPrefix(out, "Report written to "))
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestCalculateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"--income", "1000", "--format", "docx"}, "unknown output format"},
		{"negative income", []string{"--income", "-5"}, "cannot be negative"},
		{"bad income", []string{"--income", "lots"}, "is not a number"},
		{"bad gender", []string{"--income", "1000", "--gender", "x"}, "gender"},
		{"unknown scenario", []string{"--income", "1000", "--scenario", "utopia"}, "utopia"},
		{"missing profile file", []string{"--profile", "testdata/missing.yaml"}, "failed to read file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"calculate"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := run(t, "calculate", "--income", "1000", "--year", "1999")
	assert.ErrorIs(t, err, domain.ErrNoRateData)
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", "--income", "200000", "--format", "json")
	require.NoError(t, err)

	var set struct {
		BaseScenarioName   string `json:"baseScenarioName"`
		AlternativeResults []struct {
			ScenarioName string `json:"scenarioName"`
		} `json:"alternativeResults"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &set), out)
	assert.Equal(t, "current", set.BaseScenarioName)
	require.Len(t, set.AlternativeResults, 6)
	assert.Equal(t, "libertarian", set.AlternativeResults[0].ScenarioName)

	_, err = run(t, "compare", "--income", "200000", "--format", "xml")
	assert.Error(t, err)
}

func TestGrossForNetCommand(t *testing.T) {
	out, err := run(t, "gross-for-net", "--net", "159828.54", "--format", "json")
	require.NoError(t, err)

	var res struct {
		Success     bool   `json:"success"`
		GrossIncome string `json:"grossIncome"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.GrossIncome, "199") || strings.HasPrefix(res.GrossIncome, "200"), res.GrossIncome)

	out, err = run(t, "gross-for-net", "--net", "160000")
	require.NoError(t, err)
	assert.Contains(t, out, "REQUIRED GROSS INCOME")

	_, err = run(t, "gross-for-net")
	assert.Error(t, err, "--net is required")

	_, err = run(t, "gross-for-net", "--net", "1000", "--target", "bonus")
	assert.Error(t, err)

	_, err = run(t, "gross-for-net", "--net", "1000", "--year", "1999")
	assert.ErrorIs(t, err, domain.ErrNoRateData)
}

func TestGrossForNetCommand_EmployerCost(t *testing.T) {
	out, err := run(t, "gross-for-net", "--net", "224910.85", "--target", "employer_cost", "--format", "json")
	require.NoError(t, err)

	var res struct {
		Success     bool   `json:"success"`
		GrossIncome string `json:"grossIncome"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.GrossIncome, "199") || strings.HasPrefix(res.GrossIncome, "200"), res.GrossIncome)
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
