package classify

import (
	"context"

	"librarian/internal/rules"
)

// Fake is a canned Classifier for tests.
type Fake struct {
	// ResultFor maps paper text to the canned outcome. When nil or the
	// text is absent, Default is returned.
	ResultFor map[string]FakeOutcome
	Default   FakeOutcome
}

// FakeOutcome is one canned classification.
type FakeOutcome struct {
	Result     Result
	Categories []string
	Err        error
}

func (f *Fake) Classify(ctx context.Context, text string, set *rules.Set) (Result, []rules.Rule, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, nil, err
	}
	outcome := f.Default
	if canned, ok := f.ResultFor[text]; ok {
		outcome = canned
	}
	if outcome.Err != nil {
		return Result{}, nil, outcome.Err
	}
	matched := make([]rules.Rule, 0, len(outcome.Categories))
	for _, name := range outcome.Categories {
		if rule, ok := set.Lookup(name); ok {
			matched = append(matched, rule)
		}
	}
	return outcome.Result, matched, nil
}
