// Package rules loads the re-filing rule set that drives classification.
// A rule pairs a named description with a target Dropbox folder; the set is
// read once per run and shared read-only across workers.
package rules

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Rule describes one re-filing category.
type Rule struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Path        string `toml:"path"`
}

// Set is the immutable collection of rules for a batch.
type Set struct {
	rules  []Rule
	byName map[string]Rule
}

type ruleFile struct {
	Rules []Rule `toml:"rule"`
}

// Load reads a TOML rule file with one [[rule]] table per category.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var parsed ruleFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	return New(parsed.Rules)
}

// New validates and indexes the supplied rules.
func New(list []Rule) (*Set, error) {
	if len(list) == 0 {
		return nil, errors.New("rules: at least one rule is required")
	}
	byName := make(map[string]Rule, len(list))
	cleaned := make([]Rule, 0, len(list))
	for i, rule := range list {
		rule.Name = strings.TrimSpace(rule.Name)
		rule.Description = strings.TrimSpace(rule.Description)
		rule.Path = strings.TrimSpace(rule.Path)
		if rule.Name == "" {
			return nil, fmt.Errorf("rules: rule %d has no name", i+1)
		}
		if rule.Description == "" {
			return nil, fmt.Errorf("rules: rule %q has no description", rule.Name)
		}
		if !strings.HasPrefix(rule.Path, "/") {
			return nil, fmt.Errorf("rules: rule %q path must be an absolute remote folder, got %q", rule.Name, rule.Path)
		}
		if _, exists := byName[rule.Name]; exists {
			return nil, fmt.Errorf("rules: duplicate rule name %q", rule.Name)
		}
		rule.Path = strings.TrimRight(rule.Path, "/")
		byName[rule.Name] = rule
		cleaned = append(cleaned, rule)
	}
	return &Set{rules: cleaned, byName: byName}, nil
}

// All returns the rules in file order.
func (s *Set) All() []Rule {
	cp := make([]Rule, len(s.rules))
	copy(cp, s.rules)
	return cp
}

// Lookup returns the rule with the given name.
func (s *Set) Lookup(name string) (Rule, bool) {
	rule, ok := s.byName[name]
	return rule, ok
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}
