// Package scenario resolves named and parameterized reform scenarios.
package scenario

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rgehrsitz/iltax/internal/freedom"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Factory builds a reform scenario from spec parameters
type Factory func(params map[string]string) (freedom.ReformScenario, error)

// Registry holds the parameterized factories and the built-in templates.
// Lookups are case-insensitive.
type Registry struct {
	factories map[string]Factory
	templates map[string]Template
}

// NewRegistry creates a registry with every built-in factory and template registered
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		templates: make(map[string]Template),
	}

	r.RegisterFactory("custom", createCustom)
	r.RegisterFactory("flat", createFlat)

	for _, t := range builtInTemplates() {
		r.RegisterTemplate(t)
	}
	return r
}

// RegisterFactory adds a parameterized factory
func (r *Registry) RegisterFactory(name string, factory Factory) {
	r.factories[strings.ToLower(name)] = factory
}

// RegisterTemplate adds a fixed scenario
func (r *Registry) RegisterTemplate(t Template) {
	r.templates[strings.ToLower(t.Name)] = t
}

// Template returns a registered template by name
func (r *Registry) Template(name string) (Template, bool) {
	t, ok := r.templates[strings.ToLower(name)]
	return t, ok
}

// Templates returns every template sorted by name
func (r *Registry) Templates() []Template {
	templates := lo.Values(r.templates)
	slices.SortFunc(templates, func(a, b Template) int { return strings.Compare(a.Name, b.Name) })
	return templates
}

// Factories returns the registered factory names, sorted
func (r *Registry) Factories() []string {
	names := lo.Keys(r.factories)
	slices.Sort(names)
	return names
}

// Resolve turns a template name or a "factory:key=value,..." spec into a validated scenario.
// Example: "custom:income_tax=20,vat=50,ni=10"
func (r *Registry) Resolve(spec string) (freedom.ReformScenario, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return freedom.ReformScenario{}, fmt.Errorf("empty scenario spec")
	}
	if !strings.Contains(spec, ":") {
		t, ok := r.Template(spec)
		if !ok {
			return freedom.ReformScenario{}, fmt.Errorf("unknown reform template: %s", spec)
		}
		return t.Scenario, nil
	}
	return r.ParseSpec(spec)
}

// ResolveAll resolves a list of specs, stopping at the first failure
func (r *Registry) ResolveAll(specs []string) ([]freedom.ReformScenario, error) {
	scenarios := make([]freedom.ReformScenario, 0, len(specs))
	for _, spec := range specs {
		s, err := r.Resolve(spec)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// ParseSpec parses a factory spec string.
// Format: "name:param1=value1,param2=value2"
func (r *Registry) ParseSpec(spec string) (freedom.ReformScenario, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return freedom.ReformScenario{}, fmt.Errorf("invalid scenario spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.ToLower(strings.TrimSpace(parts[0]))
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				return freedom.ReformScenario{}, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.ToLower(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
		}
	}

	factory, ok := r.factories[name]
	if !ok {
		return freedom.ReformScenario{}, fmt.Errorf("unknown scenario factory: %s", name)
	}

	s, err := factory(params)
	if err != nil {
		return freedom.ReformScenario{}, err
	}
	if s.Name == "" {
		s.Name = spec
	}
	if err := s.Validate(); err != nil {
		return freedom.ReformScenario{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return s, nil
}

var customKeys = []string{"income_tax", "vat", "ni"}

func createCustom(params map[string]string) (freedom.ReformScenario, error) {
	for key := range params {
		if !slices.Contains(customKeys, key) {
			return freedom.ReformScenario{}, fmt.Errorf("custom: unknown parameter %q (expected one of %s)", key, strings.Join(customKeys, ", "))
		}
	}
	if len(params) == 0 {
		return freedom.ReformScenario{}, fmt.Errorf("custom requires at least one of %s", strings.Join(customKeys, ", "))
	}

	var s freedom.ReformScenario
	var err error
	if s.IncomeTaxReductionPercent, err = percentParam(params, "income_tax"); err != nil {
		return s, err
	}
	if s.VATReductionPercent, err = percentParam(params, "vat"); err != nil {
		return s, err
	}
	if s.NIReductionPercent, err = percentParam(params, "ni"); err != nil {
		return s, err
	}
	return s, nil
}

func createFlat(params map[string]string) (freedom.ReformScenario, error) {
	if _, ok := params["pct"]; !ok {
		return freedom.ReformScenario{}, fmt.Errorf("flat requires 'pct' parameter")
	}
	pct, err := percentParam(params, "pct")
	if err != nil {
		return freedom.ReformScenario{}, err
	}
	return freedom.ReformScenario{
		IncomeTaxReductionPercent: pct,
		VATReductionPercent:       pct,
		NIReductionPercent:        pct,
	}, nil
}

// percentParam reads an optional percentage, defaulting to zero
func percentParam(params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.TrimSuffix(raw, "%"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
