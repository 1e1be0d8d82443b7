package doctor

import (
	"context"
	"fmt"
	"math"

	"github.com/hay-kot/randoid/pkg/randoid"
)

// DefaultUniformitySamples is the number of symbols drawn by the check.
const DefaultUniformitySamples = 1 << 16

// UniformityCheck draws symbols from a generator and runs a chi-square test
// against the uniform distribution over its alphabet.
type UniformityCheck struct {
	gen     *randoid.Generator
	samples int
}

// NewUniformityCheck creates a uniformity check for g.
func NewUniformityCheck(g *randoid.Generator, samples int) *UniformityCheck {
	if samples <= 0 {
		samples = DefaultUniformitySamples
	}
	return &UniformityCheck{gen: g, samples: samples}
}

func (c *UniformityCheck) Name() string {
	return "Uniformity"
}

func (c *UniformityCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	a := c.gen.Alphabet()
	if a.HasDuplicates() {
		result.Items = append(result.Items, CheckItem{
			Label:  "Alphabet",
			Status: StatusWarn,
			Detail: "repeated symbols make the output non-uniform",
		})
		return result
	}
	if a.Len() < 2 {
		result.Items = append(result.Items, CheckItem{
			Label:  "Alphabet",
			Status: StatusPass,
			Detail: "single symbol alphabet, nothing to test",
		})
		return result
	}

	buf := make([]rune, c.samples)
	if err := c.gen.Sized(c.samples).FillRunes(buf); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Sample",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	m := Measure{
		Value: ChiSquare(buf, a),
		Limit: chiSquareLimit(a.Len() - 1),
	}

	item := CheckItem{
		Label:   "Chi-square",
		Status:  StatusPass,
		Detail:  fmt.Sprintf("%.1f over %d symbols (limit %.1f)", m.Value, c.samples, m.Limit),
		Measure: &m,
	}
	if m.Exceeded() {
		item.Status = StatusFail
	}
	result.Items = append(result.Items, item)
	return result
}

// ChiSquare returns the chi-square statistic of the symbol counts in sample
// against a uniform distribution over a.
func ChiSquare(sample []rune, a *randoid.Alphabet) float64 {
	counts := make(map[rune]int, a.Len())
	for _, r := range sample {
		counts[r]++
	}

	expected := float64(len(sample)) / float64(a.Len())
	var stat float64
	for i := range a.Len() {
		d := float64(counts[a.Symbol(i)]) - expected
		stat += d * d / expected
	}
	return stat
}

// chiSquareLimit approximates the 99.9th percentile of the chi-square
// distribution with df degrees of freedom (Wilson-Hilferty).
func chiSquareLimit(df int) float64 {
	const z = 3.090232 // standard normal quantile at 0.999
	k := float64(df)
	t := 1 - 2/(9*k) + z*math.Sqrt(2/(9*k))
	return k * t * t * t
}
