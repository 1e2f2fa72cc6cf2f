package service

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RouterRule maps a keyword class to the terms that trip it. Matching is
// case-insensitive word-boundary matching: a listed term anywhere in the
// question trips the class, but only as a whole word, so "nowhere" does
// not trip "now". The heuristic deliberately favors recall, since a
// needless search is cheap and a missing one is not.
type RouterRule struct {
	Class    string   `json:"class"`
	Keywords []string `json:"keywords"`
}

const (
	RuleClassRecency    = "recency"
	RuleClassMarketData = "market_data"
)

// DefaultRouterRules returns the built-in rule table. The recency class
// carries the current and next calendar year so the table never goes stale.
func DefaultRouterRules() []RouterRule {
	year := time.Now().Year()
	return []RouterRule{
		{
			Class: RuleClassRecency,
			Keywords: []string{
				"current", "latest", "recent", "today", "now",
				"price", "news", "weather",
				strconv.Itoa(year), strconv.Itoa(year + 1),
			},
		},
		{
			Class: RuleClassMarketData,
			Keywords: []string{
				"market", "stock", "crypto", "exchange rate", "temperature",
			},
		},
	}
}

// LoadRouterRulesFromFile loads a rule table from a JSON file, falling
// back to the built-in table on read errors.
func LoadRouterRulesFromFile(path string) ([]RouterRule, error) {
	rules := DefaultRouterRules()
	b, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read router rules file: %w", err)
	}
	var loaded []RouterRule
	if err := json.Unmarshal(b, &loaded); err != nil {
		return rules, fmt.Errorf("unmarshal router rules: %w", err)
	}
	if len(loaded) == 0 {
		return rules, nil
	}
	return loaded, nil
}

// QueryRouter decides whether a question needs live external information
// before an answer is generated.
type QueryRouter struct {
	rules    []RouterRule
	patterns []*regexp.Regexp
}

// NewQueryRouter creates a router over the given rule table; an empty
// table means the built-in defaults.
func NewQueryRouter(rules []RouterRule) *QueryRouter {
	if len(rules) == 0 {
		rules = DefaultRouterRules()
	}
	r := &QueryRouter{rules: rules}
	for _, rule := range rules {
		r.patterns = append(r.patterns, compileRulePattern(rule))
	}
	return r
}

// compileRulePattern joins a rule's terms into one case-insensitive
// word-boundary alternation. Multi-word terms keep their spaces and
// still match as a bounded phrase.
func compileRulePattern(rule RouterRule) *regexp.Regexp {
	terms := make([]string, 0, len(rule.Keywords))
	for _, kw := range rule.Keywords {
		if kw == "" {
			continue
		}
		terms = append(terms, regexp.QuoteMeta(kw))
	}
	if len(terms) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(terms, "|") + `)\b`)
}

// NeedsRetrieval reports whether the question trips any rule class.
func (r *QueryRouter) NeedsRetrieval(text string) bool {
	for _, pattern := range r.patterns {
		if pattern != nil && pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// Route explains which class tripped, for logging. Empty means none.
func (r *QueryRouter) Route(text string) string {
	for i, pattern := range r.patterns {
		if pattern != nil && pattern.MatchString(text) {
			return r.rules[i].Class
		}
	}
	return ""
}
