package costs

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultModelKey is the table entry used when no model matches.
const DefaultModelKey = "default"

// ModelPricing holds USD rates per one million tokens for a single model.
type ModelPricing struct {
	// Input is the cost per 1M prompt tokens in USD
	Input float64 `yaml:"input"`

	// Output is the cost per 1M completion tokens in USD
	Output float64 `yaml:"output"`
}

// Table maps model names (or prefixes) to their pricing.
type Table map[string]ModelPricing

// DefaultTable returns the built-in pricing table.
// Rates are USD per 1M tokens.
func DefaultTable() Table {
	return Table{
		"gpt-4o":         {Input: 2.50, Output: 10.00},
		"gpt-4o-mini":    {Input: 0.15, Output: 0.60},
		"gpt-4.1":        {Input: 2.00, Output: 8.00},
		"gpt-4.1-mini":   {Input: 0.40, Output: 1.60},
		"gpt-4.1-nano":   {Input: 0.10, Output: 0.40},
		"o4-mini":        {Input: 1.10, Output: 4.40},
		DefaultModelKey: {Input: 0.50, Output: 1.50},
	}
}

// Lookup finds pricing for a model: exact match first, then the longest
// matching prefix, then the default entry. The second return reports whether
// any entry (including default) was found.
func (t Table) Lookup(model string) (ModelPricing, bool) {
	if pricing, ok := t[model]; ok {
		return pricing, true
	}

	// Longest configured prefix wins, so "gpt-4o-mini" beats "gpt-4o" for
	// "gpt-4o-mini-2024-07-18".
	var (
		best      ModelPricing
		bestLen   = -1
		anyPrefix bool
	)
	for pattern, pricing := range t {
		if pattern == DefaultModelKey {
			continue
		}
		if strings.HasPrefix(model, pattern) && len(pattern) > bestLen {
			best = pricing
			bestLen = len(pattern)
			anyPrefix = true
		}
	}
	if anyPrefix {
		return best, true
	}

	if pricing, ok := t[DefaultModelKey]; ok {
		return pricing, true
	}
	return ModelPricing{}, false
}

// Validate checks the table for negative rates.
func (t Table) Validate() error {
	for model, pricing := range t {
		if pricing.Input < 0 || pricing.Output < 0 {
			return fmt.Errorf("pricing for model %q has negative rates", model)
		}
	}
	return nil
}

// pricingFile is the YAML document shape of a pricing file.
type pricingFile struct {
	Models Table `yaml:"models"`
}

// LoadTable reads a pricing table from a YAML file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file: %w", err)
	}

	var file pricingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pricing file %q: %w", path, err)
	}

	if len(file.Models) == 0 {
		return nil, fmt.Errorf("pricing file %q contains no models", path)
	}
	if err := file.Models.Validate(); err != nil {
		return nil, fmt.Errorf("pricing file %q: %w", path, err)
	}

	return file.Models, nil
}
