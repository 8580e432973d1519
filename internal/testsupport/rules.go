package testsupport

import (
	"testing"

	"librarian/internal/rules"
)

// NewRules builds a rule set for tests, failing on invalid input.
func NewRules(t testing.TB, list ...rules.Rule) *rules.Set {
	t.Helper()

	if len(list) == 0 {
		list = []rules.Rule{
			{Name: "ai", Description: "Machine learning and AI research.", Path: "/Research/AI"},
			{Name: "pl", Description: "Programming language theory.", Path: "/Research/PL"},
		}
	}
	set, err := rules.New(list)
	if err != nil {
		t.Fatalf("rules.New: %v", err)
	}
	return set
}
