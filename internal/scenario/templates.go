package scenario

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/iltax/internal/freedom"
	"github.com/shopspring/decimal"
)

// Template is a named, fixed reform scenario
type Template struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Scenario    freedom.ReformScenario `json:"scenario"`
}

func newTemplate(name, description string, incomeTax, vat, ni int64) Template {
	return Template{
		Name:        name,
		Description: description,
		Scenario: freedom.ReformScenario{
			Name:                      name,
			IncomeTaxReductionPercent: decimal.NewFromInt(incomeTax),
			VATReductionPercent:       decimal.NewFromInt(vat),
			NIReductionPercent:        decimal.NewFromInt(ni),
		},
	}
}

func builtInTemplates() []Template {
	return []Template{
		newTemplate("current", "Current law, no reductions", 0, 0, 0),
		newTemplate("income_tax_cut_10", "Cut income tax by 10%", 10, 0, 0),
		newTemplate("income_tax_cut_25", "Cut income tax by 25%", 25, 0, 0),
		newTemplate("vat_cut_half", "Halve VAT", 0, 50, 0),
		newTemplate("ni_cut_20", "Cut National Insurance and health tax by 20%", 0, 0, 20),
		newTemplate("flat_cut_15", "Cut every tax by 15%", 15, 15, 15),
		newTemplate("libertarian", "Cut income tax by 50%, VAT by 50% and National Insurance by 30%", 50, 50, 30),
	}
}

// ParseList splits a comma-separated list of scenario names or specs.
// Commas inside a "factory:..." spec belong to that spec, so specs are separated by ';'
// whenever any of them has parameters.
func ParseList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	sep := ","
	if strings.Contains(list, ":") {
		sep = ";"
	}
	var names []string
	for _, part := range strings.Split(list, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// Help returns formatted help text for every template and factory
func Help(r *Registry) string {
	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, t := range r.Templates() {
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nParameterized:\n\n")
	sb.WriteString("  custom:income_tax=<pct>,vat=<pct>,ni=<pct>\n")
	sb.WriteString("  flat:pct=<pct>\n")

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  iltax compare --income 300000 --with income_tax_cut_10,vat_cut_half\n")
	sb.WriteString("  iltax compare --income 300000 --with \"custom:income_tax=20,vat=50;flat:pct=10\"\n")
	return sb.String()
}
