package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Tax brackets, credit points and insurance thresholds: published tables for the selected year",
	"Income is treated as a single annual amount with no mid-year changes",
	"Credit points: residency, gender and children only (no academic, immigrant or periphery points)",
	"VAT: 80% of net income is spent on VAT-able goods unless monthly spending is given",
	"Budget allocation applies the national budget shares to your payroll deductions",
	"Reform scenarios reduce each tax independently; health tax follows the NI reduction",
}
