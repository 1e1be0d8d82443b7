package randoid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// chiSquare returns the chi-square statistic of counts against a uniform
// expectation.
func chiSquare(counts []int, total int) float64 {
	expected := float64(total) / float64(len(counts))
	var sum float64
	for _, c := range counts {
		d := float64(c) - expected
		sum += d * d / expected
	}
	return sum
}

func TestGenerator_UniformPerPosition(t *testing.T) {
	const samples = 20000
	// Critical value for 63 degrees of freedom at p = 0.001.
	const critical = 103.44

	g := WithSource(NewPCG(2024, 10))
	first := make([]int, URL.Len())
	last := make([]int, URL.Len())

	for i := 0; i < samples; i++ {
		id := g.MustGenerate()
		first[strings.IndexByte(URL.String(), id[0])]++
		last[strings.IndexByte(URL.String(), id[len(id)-1])]++
	}

	assert.Less(t, chiSquare(first, samples), critical, "position 0")
	assert.Less(t, chiSquare(last, samples), critical, "position %d", DefaultSize-1)
}

func TestGenerator_UniformSmallAlphabet(t *testing.T) {
	const total = 100000
	// Critical value for 3 degrees of freedom at p = 0.001.
	const critical = 16.27

	id := NewGenerator(total, MustAlphabet("abcd"), NewPCG(99, 1)).MustGenerate()

	counts := make([]int, 4)
	for i, c := range "abcd" {
		counts[i] = strings.Count(id, string(c))
	}

	assert.Less(t, chiSquare(counts, total), critical)
}

func TestGenerator_UniformWideAlphabet(t *testing.T) {
	const total = 1 << 16
	// Critical value for 127 degrees of freedom at p = 0.001.
	const critical = 181.99

	a := MustAlphabet(wide128)
	id := NewGenerator(total, a, NewPCG(7, 7)).MustGenerate()

	index := make(map[rune]int, a.Len())
	for i := range a.Len() {
		index[a.Symbol(i)] = i
	}
	counts := make([]int, a.Len())
	for _, r := range id {
		counts[index[r]]++
	}

	assert.Less(t, chiSquare(counts, total), critical)
}
