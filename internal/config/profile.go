package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/iltax/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadProfile reads a taxpayer profile from a YAML file and validates it
func LoadProfile(filename string) (*domain.TaxpayerProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile domain.TaxpayerProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}
