package core

// ParentMap is a non-owning index from each node to its parent.
// It is a snapshot: rebuild it after mutating the tree.
type ParentMap struct {
	root    Node
	parents map[Node]Node
}

// NewParentMap indexes every node reachable from root.
func NewParentMap(root Node) *ParentMap {
	pm := &ParentMap{root: root, parents: make(map[Node]Node)}
	var stack []Node
	Inspect(root, func(n Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return false
		}
		if len(stack) > 0 {
			pm.parents[n] = stack[len(stack)-1]
		}
		stack = append(stack, n)
		return true
	})
	return pm
}

// Root returns the node the index was built from.
func (pm *ParentMap) Root() Node {
	return pm.root
}

// Parent returns the parent of n, or nil for the root and unknown nodes.
func (pm *ParentMap) Parent(n Node) Node {
	return pm.parents[n]
}

// Ancestors returns the chain of parents of n, nearest first.
func (pm *ParentMap) Ancestors(n Node) []Node {
	var out []Node
	for p := pm.parents[n]; p != nil; p = pm.parents[p] {
		out = append(out, p)
	}
	return out
}

// Enclosing returns the nearest ancestor of n for which match returns true.
func (pm *ParentMap) Enclosing(n Node, match func(Node) bool) Node {
	for p := pm.parents[n]; p != nil; p = pm.parents[p] {
		if match(p) {
			return p
		}
	}
	return nil
}

// Len returns the number of indexed non-root nodes.
func (pm *ParentMap) Len() int {
	return len(pm.parents)
}
