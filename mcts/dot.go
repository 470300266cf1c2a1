package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// ExportDOT renders a tree's current arena as a Graphviz DOT document,
// labeling each node with its visit count and Q value and each edge with
// the move it represents. This is a debugging aid, not something the
// search itself depends on — useful for inspecting a handful of
// simulations on a small reference game like reference/ttt without
// building a full UI, the same role alphabeth's go.mod pulls in
// gographviz for but never wires up; this module finally exercises it.
func ExportDOT[M comparable](t *Tree[M], moveLabel func(M) string) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("tree"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	var walk func(idx NodeIndex) error
	walk = func(idx NodeIndex) error {
		node := t.Get(idx)
		name := fmt.Sprintf("n%d", idx)
		label := fmt.Sprintf("\"N=%d Q=%.3f\"", node.Visits, node.Q())
		if err := g.AddNode("tree", name, map[string]string{"label": label}); err != nil {
			return err
		}
		for i := int32(0); i < node.ChildrenLength; i++ {
			childIdx := node.ChildrenStart + NodeIndex(i)
			child := t.Get(childIdx)
			if err := walk(childIdx); err != nil {
				return err
			}
			edgeLabel := fmt.Sprintf("\"%s\"", moveLabel(child.Move))
			childName := fmt.Sprintf("n%d", childIdx)
			if err := g.AddEdge(name, childName, true, map[string]string{"label": edgeLabel}); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(RootIndex); err != nil {
		return "", err
	}
	return g.String(), nil
}
