package container

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"
)

// TraceNode is one resolution in a recorded resolution graph.
type TraceNode struct {
	Key      Key
	Kind     Kind
	Depth    int
	Err      error
	Children []*TraceNode

	parent *TraceNode
}

func (n *TraceNode) label() string {
	s := fmt.Sprintf("%s %s", n.Kind, n.Key)
	if n.Err != nil {
		s += " !"
	}
	return s
}

// Trace is the resolution graph of one top-level Resolve call, recorded
// when the container was built WithTracing(true).
type Trace struct {
	Root *TraceNode
	Err  error
}

// Count returns how many times key was built or referenced.
func (t *Trace) Count(key Key) int {
	if t == nil {
		return 0
	}
	return t.Walk(func(n *TraceNode) bool { return n.Key == key })
}

// Walk visits every node depth-first and returns how many matched.
func (t *Trace) Walk(match func(n *TraceNode) bool) int {
	if t == nil || t.Root == nil {
		return 0
	}
	count := 0
	stack := []*TraceNode{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if match(n) {
			count++
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return count
}

// Render draws the graph as a text tree.
func (t *Trace) Render() string {
	if t == nil || t.Root == nil {
		return ""
	}
	root := tree.NewTree(tree.NodeString(t.Root.label()))
	addTraceChildren(root, t.Root)
	return fmt.Sprint(root)
}

func addTraceChildren(dst *tree.Tree, n *TraceNode) {
	for _, child := range n.Children {
		addTraceChildren(dst.AddChild(tree.NodeString(child.label())), child)
	}
}
