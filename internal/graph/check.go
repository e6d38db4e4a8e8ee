package graph

import "fmt"

// ConsistencyCheckGraph verifies that every parent/child link in the graph
// is mutual. It runs after every structural mutation of the graph; a
// violation is a defect in the build or prune passes, not a user error, and
// the caller is expected to abort rather than render a misleading graph.
func ConsistencyCheckGraph(g CommitGraph) error {
	for nodeOID, node := range g {
		if !node.Parent.IsZero() {
			if node.Parent == nodeOID {
				return fmt.Errorf("commit %s is its own parent", nodeOID)
			}
			parent, ok := g[node.Parent]
			if !ok {
				return fmt.Errorf("parent %s of commit %s is not in the graph", node.Parent, nodeOID)
			}
			if _, ok := parent.Children[nodeOID]; !ok {
				return fmt.Errorf("commit %s is missing from the children of its parent %s", nodeOID, node.Parent)
			}
		}

		for childOID := range node.Children {
			if childOID == nodeOID {
				return fmt.Errorf("commit %s is its own child", nodeOID)
			}
			child, ok := g[childOID]
			if !ok {
				return fmt.Errorf("child %s of commit %s is not in the graph", childOID, nodeOID)
			}
			if child.Parent != nodeOID {
				return fmt.Errorf("child %s of commit %s points at parent %s", childOID, nodeOID, child.Parent)
			}
		}
	}
	return nil
}
