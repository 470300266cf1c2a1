package mcts

import "gorgonia.org/vecf32"

// normalizePriors rescales priors in place so they sum to 1, tolerating an
// Evaluator whose Evaluation.Policy is only "approximately" normalized
// over the legal-move subset (game.Evaluator's documented contract) —
// using vecf32.Sum/Scale instead of a hand-rolled loop, since alphabeth's
// go.mod already requires this package (unused upstream) purely for this
// kind of flat float32-slice arithmetic.
func normalizePriors(priors []float32) {
	sum := vecf32.Sum(priors)
	if sum <= 0 {
		// No prior mass at all (e.g. every legal move missing from the
		// evaluator's policy map): fall back to uniform.
		uniform := 1 / float32(len(priors))
		for i := range priors {
			priors[i] = uniform
		}
		return
	}
	vecf32.Scale(priors, 1/sum)
}
