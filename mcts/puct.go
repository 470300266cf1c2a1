package mcts

import "github.com/chewxy/math32"

// selectChild walks to the highest-PUCT child of node: U(child) = Q(child)
// + c_puct * P(child) * sqrt(Np)/(1+N(child)) — the same formula and the
// same chewxy/math32 float32 arithmetic as
// Elvenson-alphabeth/mcts/node.go's Select (its own
// `numerator := math32.Sqrt(float32(parentVisits))`), but with the
// virtual-loss adjustment folded into both Q and N the way
// Elvenson-alphabeth/mcts's search.go treats an in-flight node as if it
// had already lost those simulations: a node with pending virtual loss
// looks less attractive to sibling walks in the same batch, which is the
// point of virtual loss as a collision-avoidance device.
//
// Ties are broken by keeping the first (lowest-index) child encountered
// with the strictly-greatest score so far.
func selectChild[M comparable](t *Tree[M], idx NodeIndex, cPuct float32) NodeIndex {
	node := t.Get(idx)
	parentVisits := node.Visits + node.VirtualLoss

	best := NoIndex
	var bestScore float32
	first := true
	for i := int32(0); i < node.ChildrenLength; i++ {
		childIdx := node.ChildrenStart + NodeIndex(i)
		child := t.Get(childIdx)

		effVisits := child.Visits + child.VirtualLoss
		var q float32
		if effVisits > 0 {
			// Virtual loss is charged as a loss (-1) from the child's own
			// perspective.
			q = (child.TotalValue - float32(child.VirtualLoss)) / float32(effVisits)
		}
		u := cPuct * child.PolicyPrior * math32.Sqrt(float32(parentVisits)) / (1 + float32(effVisits))
		score := q + u

		if first || score > bestScore {
			bestScore = score
			best = childIdx
			first = false
		}
	}
	return best
}
