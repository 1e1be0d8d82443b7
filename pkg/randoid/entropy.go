package randoid

import "math"

// EntropyBits returns the number of random bits in one identifier.
//
// Alphabets with duplicate symbols carry less entropy than reported.
func (g *Generator) EntropyBits() float64 {
	return float64(g.size * g.alphabet.Bits())
}

// CollisionCount returns how many identifiers with the given entropy can be
// generated before the probability of at least one collision reaches p, using
// the birthday bound n = sqrt(2 * 2^bits * ln(1/(1-p))).
//
// p must be in (0, 1); other values return 0. With zero bits every identifier
// is the same, so exactly one can be generated.
func CollisionCount(bits, p float64) float64 {
	if p <= 0 || p >= 1 || bits < 0 {
		return 0
	}
	if bits == 0 {
		return 1
	}
	return math.Sqrt(2 * math.Exp2(bits) * math.Log(1/(1-p)))
}
