package model

import (
	"context"
	"fmt"

	"github.com/abhisek/tbscreen/internal/features"
)

// TreeNode is one node of a binary decision tree. A node with Left and
// Right both zero is a leaf and yields Class.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Class     int     `json:"class"`
}

// Leaf reports whether n terminates a path.
func (n TreeNode) Leaf() bool { return n.Left == 0 && n.Right == 0 }

// TreeModel is a decision tree rooted at Nodes[0]. Samples with
// v[Feature] <= Threshold descend left.
type TreeModel struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t *TreeModel) check() error {
	n := len(t.Nodes)
	for i, node := range t.Nodes {
		if node.Leaf() {
			continue
		}
		for _, child := range []int{node.Left, node.Right} {
			// Children must point forward so every walk terminates.
			if child <= i || child >= n {
				return fmt.Errorf("%w: node %d has child %d outside (%d, %d)",
					ErrIncompatible, i, child, i, n)
			}
		}
		if node.Feature < 0 || node.Feature >= features.Dimension {
			return fmt.Errorf("%w: node %d splits on feature %d", ErrIncompatible, i, node.Feature)
		}
	}
	return nil
}

func (t *TreeModel) classes() int {
	top := -1
	for _, node := range t.Nodes {
		if node.Leaf() && node.Class > top {
			top = node.Class
		}
	}
	return top + 1
}

// Walk returns the class of the leaf v falls into.
func (t *TreeModel) Walk(v features.Vector) Class {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Leaf() {
			return Class(node.Class)
		}
		if v[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

type treeClassifier struct {
	id   string
	tree *TreeModel
}

func (c *treeClassifier) Predict(ctx context.Context, v features.Vector) (Class, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := features.CheckDimension(v); err != nil {
		return 0, err
	}
	return c.tree.Walk(v), nil
}

func (c *treeClassifier) ID() string { return c.id }
