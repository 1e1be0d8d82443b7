// Package doctor runs health checks on the randoid setup: the config file, the
// system random source and the uniformity of the configured generator.
package doctor

import (
	"context"
	"fmt"
)

// Status is the outcome of a single check item.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name, so JSON reports read "pass" rather
// than 0.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pass":
		*s = StatusPass
	case "warn":
		*s = StatusWarn
	case "fail":
		*s = StatusFail
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// Measure is a statistic and the bound it was tested against.
type Measure struct {
	Value float64 `json:"value"`
	Limit float64 `json:"limit"`
}

// Exceeded reports whether the value is over the limit.
func (m Measure) Exceeded() bool {
	return m.Value > m.Limit
}

// CheckItem is a single line within a check result.
type CheckItem struct {
	Label   string   `json:"label"`
	Status  Status   `json:"status"`
	Detail  string   `json:"detail,omitempty"`
	Measure *Measure `json:"measure,omitempty"`
	// Fixable marks a problem the check's Fix method can repair.
	Fixable bool `json:"fixable,omitempty"`
}

func (i CheckItem) problem() bool {
	return i.Status == StatusWarn || i.Status == StatusFail
}

// Result is the outcome of one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
	// Fixed is set when RunAll repaired the check's problems.
	Fixed bool `json:"fixed,omitempty"`
}

func (r Result) fixable() bool {
	for _, item := range r.Items {
		if item.Fixable && item.problem() {
			return true
		}
	}
	return false
}

// Check is a single health check.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Fixer is implemented by checks that can repair the problems they report as
// fixable.
type Fixer interface {
	Fix(ctx context.Context) error
}

// RunAll runs every check in order. With fix set, a check that reports
// fixable problems and implements Fixer is repaired and run again.
func RunAll(ctx context.Context, checks []Check, fix bool) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		result := check.Run(ctx)

		if fixer, ok := check.(Fixer); ok && fix && result.fixable() {
			if err := fixer.Fix(ctx); err != nil {
				result.Items = append(result.Items, CheckItem{
					Label:  "Fix",
					Status: StatusFail,
					Detail: fmt.Sprintf("fix failed: %v", err),
				})
			} else {
				result = check.Run(ctx)
				result.Fixed = true
			}
		}

		results = append(results, result)
	}
	return results
}

// Totals counts check items by outcome.
type Totals struct {
	Passed  int `json:"passed"`
	Warned  int `json:"warned"`
	Failed  int `json:"failed"`
	Fixable int `json:"fixable"`
	Fixed   int `json:"fixed"`
}

// Healthy reports whether no item failed.
func (t Totals) Healthy() bool {
	return t.Failed == 0
}

// Summarize totals the items of results. Fixed counts whole checks.
func Summarize(results []Result) Totals {
	var t Totals
	for _, r := range results {
		if r.Fixed {
			t.Fixed++
		}
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				t.Passed++
			case StatusWarn:
				t.Warned++
			case StatusFail:
				t.Failed++
			}
			if item.Fixable && item.problem() {
				t.Fixable++
			}
		}
	}
	return t
}
