// Package rules is the deterministic recommendation engine. It maps a health
// issue to advice and a calorie total to a fitness/diet plan. It performs no
// I/O, reads no clock and assigns no identifiers; callers do that.
package rules

import (
	"slices"

	"github.com/dmitrijs2005/nutritrack/internal/models"
)

// Advice is a recommendation before it is bound to an issue.
type Advice struct {
	Text string
	Type models.AdviceType
}

// Signature selects the issues a rule applies to. Empty fields match any
// value. Name is compared exactly.
type Signature struct {
	Name     string
	Category models.Category
	Severity models.Severity
}

func (s Signature) matches(issue models.HealthIssue) bool {
	if s.Name != "" && s.Name != issue.Name {
		return false
	}
	if s.Category != "" && s.Category != issue.Category {
		return false
	}
	if s.Severity != "" && s.Severity != issue.Severity {
		return false
	}
	return true
}

// specificity counts the non-wildcard fields. Name outweighs the other two
// combined so a named rule always beats a category/severity rule.
func (s Signature) specificity() int {
	n := 0
	if s.Name != "" {
		n += 4
	}
	if s.Category != "" {
		n += 2
	}
	if s.Severity != "" {
		n++
	}
	return n
}

// Rule binds a signature to an ordered set of advice.
type Rule struct {
	When   Signature
	Advice []Advice
}

// Engine holds a rule table. The zero value has no rules and returns no
// advice.
type Engine struct {
	rules    []Rule
	fallback []Advice
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules appends rules to the table, after any already present.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) {
		e.rules = append(e.rules, rules...)
	}
}

// WithFallback sets advice returned when no rule matches.
func WithFallback(advice ...Advice) Option {
	return func(e *Engine) {
		e.fallback = slices.Clone(advice)
	}
}

// NewEngine returns an engine over DefaultRules plus opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{rules: DefaultRules()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEmptyEngine returns an engine with no default rules.
func NewEmptyEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RecommendationsForIssue returns the advice of the most specific matching
// rule, earliest in the table on ties. With no match it returns the fallback,
// which is empty unless configured. The result is never nil.
func (e *Engine) RecommendationsForIssue(issue models.HealthIssue) []Advice {
	best := -1
	for i, r := range e.rules {
		if !r.When.matches(issue) {
			continue
		}
		if best < 0 || r.When.specificity() > e.rules[best].When.specificity() {
			best = i
		}
	}
	if best < 0 {
		return append([]Advice{}, e.fallback...)
	}
	return append([]Advice{}, e.rules[best].Advice...)
}

// DefaultRules is the built-in table.
func DefaultRules() []Rule {
	return []Rule{
		{
			When: Signature{Name: "Back pain"},
			Advice: []Advice{
				{Text: "Practice daily stretching exercises focused on lower back", Type: models.AdviceExercise},
				{Text: "Take short walking breaks every hour during work", Type: models.AdviceLifestyle},
			},
		},
		{
			When: Signature{Name: "Stress"},
			Advice: []Advice{
				{Text: "Practice 10 minutes of mindfulness meditation daily", Type: models.AdviceLifestyle},
				{Text: "Include foods rich in omega-3 fatty acids and magnesium", Type: models.AdviceDiet},
			},
		},
	}
}
