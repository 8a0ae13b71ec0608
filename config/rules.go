package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// LoadCategorizationRules builds the categorization rule table.
// Without a rules file the built-in table is used with the configured threshold.
// A rules file overrides whatever keys it sets; omitted keys keep their defaults.
func LoadCategorizationRules(cfg AnalysisConfig) (valueobject.CategorizationRules, error) {
	rules := valueobject.DefaultCategorizationRules()
	rules.MajorExpenseThreshold = cfg.MajorExpenseThreshold

	if cfg.RulesFile == "" {
		return rules.Normalized(), nil
	}

	data, err := os.ReadFile(cfg.RulesFile)
	if err != nil {
		return valueobject.CategorizationRules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	return ParseCategorizationRules(data, rules)
}

// ParseCategorizationRules decodes a YAML rule table on top of base.
func ParseCategorizationRules(data []byte, base valueobject.CategorizationRules) (valueobject.CategorizationRules, error) {
	rules := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return valueobject.CategorizationRules{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return valueobject.CategorizationRules{}, fmt.Errorf("invalid rules file: %w", err)
	}

	return rules.Normalized(), nil
}
