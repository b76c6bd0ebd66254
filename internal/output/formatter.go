package output

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Formatter renders a Report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = []Formatter{
	ConsoleFormatter{},
	ConsoleLiteFormatter{},
	JSONFormatter{Pretty: true},
	YAMLFormatter{},
	CSVFormatter{},
	PDFFormatter{},
}

var formatAliases = map[string]string{
	"text":    "console",
	"verbose": "console",
	"summary": "console-lite",
	"lite":    "console-lite",
	"yml":     "yaml",
}

// GetFormatterByName returns the formatter for name or one of its aliases, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	f, ok := lo.Find(formatters, func(f Formatter) bool { return f.Name() == name })
	if !ok {
		return nil
	}
	return f
}

// AvailableFormatterNames lists the canonical formatter names
func AvailableFormatterNames() []string {
	return lo.Map(formatters, func(f Formatter, _ int) string { return f.Name() })
}

// AvailableFormatAliases lists the accepted alternative names, sorted
func AvailableFormatAliases() []string {
	aliases := lo.Keys(formatAliases)
	slices.Sort(aliases)
	return aliases
}

// FileExtension returns the file extension used when a formatter's output is saved
func FileExtension(f Formatter) string {
	switch f.Name() {
	case "console", "console-lite":
		return "txt"
	default:
		return f.Name()
	}
}
