package mcts

import (
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// AddDirichletNoise mixes Dirichlet(alpha) noise into the root's children
// priors, the AlphaZero self-play exploration device: P'(s,a) = (1-weight)
// * P(s,a) + weight * noise(a). Grounded on
// Elvenson-alphabeth/mcts/tree.go's New, which draws a single
// distmv.NewDirichlet sample over the whole action space at tree
// construction time using the same x/exp/rand source; this version draws
// the sample sized to the root's actual (already-expanded) child count
// instead of the full action space, and is a separate opt-in call rather
// than baked into tree construction, since cfg.DirichletWeight defaults to
// 0 and most callers never need it.
//
// Must be called after the root has been expanded (it has at least one
// simulation's worth of children) and before further search iterations
// consume those priors, or the noise has no nodes to perturb.
func AddDirichletNoise[M comparable](t *Tree[M], cfg Config, src distrand.Source) {
	if cfg.DirichletWeight <= 0 {
		return
	}
	root := t.Root()
	if !root.Expanded() {
		return
	}

	n := int(root.ChildrenLength)
	alpha := make([]float64, n)
	for i := range alpha {
		alpha[i] = cfg.DirichletAlpha
	}
	noise := distmv.NewDirichlet(alpha, src).Rand(nil)

	w := float32(cfg.DirichletWeight)
	for i := int32(0); i < root.ChildrenLength; i++ {
		child := t.Get(root.ChildrenStart + NodeIndex(i))
		child.PolicyPrior = (1-w)*child.PolicyPrior + w*float32(noise[i])
	}
}
