// Copyright 2024-2026, Flowsim Authors

// Package graph implements the dependency graph behind a trace feeder. It
// owns the live node records, links parents to children as the graph is
// discovered incrementally, and tracks which nodes still reference parents
// that have not been read yet (forward references).
package graph

import (
	"sort"

	"github.com/flowsim/trace-feeder/errors"
	"github.com/flowsim/trace-feeder/proto"
)

// Node is one workload node owned by a Graph: the decoded record plus the
// graph linkage built around it. The linkage is stored as id sets, not
// pointers - a removed parent leaves no dangling reference, its children
// simply keep an id that never resolves again.
type Node struct {
	rec proto.Record

	dataDeps map[int64]bool // parent ids not yet satisfied by completion
	children map[int64]bool // ids of nodes that depend on this node

	// Subset of dataDeps whose parent has not been read yet. A parent in
	// dataDeps but not here is linked, just not completed.
	unresolvedParents map[int64]bool
}

func newNode(rec proto.Record) *Node {
	n := &Node{
		rec:               rec,
		dataDeps:          make(map[int64]bool, len(rec.DataDeps)),
		children:          map[int64]bool{},
		unresolvedParents: map[int64]bool{},
	}
	for _, dep := range rec.DataDeps {
		n.dataDeps[dep] = true
	}
	return n
}

func (n *Node) Id() int64             { return n.rec.Id }
func (n *Node) Name() string          { return n.rec.Name }
func (n *Node) NodeType() int32       { return n.rec.NodeType }
func (n *Node) IsCPUOp() bool         { return n.rec.IsCPUOp }
func (n *Node) Runtime() int64        { return n.rec.Runtime }
func (n *Node) NumOps() int64         { return n.rec.NumOps }
func (n *Node) TensorSize() int64     { return n.rec.TensorSize }
func (n *Node) CommType() int64       { return n.rec.CommType }
func (n *Node) CommPriority() int32   { return n.rec.CommPriority }
func (n *Node) CommSize() int64       { return n.rec.CommSize }
func (n *Node) CommSrc() int32        { return n.rec.CommSrc }
func (n *Node) CommDst() int32        { return n.rec.CommDst }
func (n *Node) CommTag() int32        { return n.rec.CommTag }
func (n *Node) InvolvedDimSize() int32 { return int32(len(n.rec.InvolvedDim)) }

// InvolvedDim returns the i-th involved-dimension bit. Out-of-range indexes
// return false.
func (n *Node) InvolvedDim(i int) bool {
	if i < 0 || i >= len(n.rec.InvolvedDim) {
		return false
	}
	return n.rec.InvolvedDim[i]
}

// Record returns a copy of the raw record this node was built from.
func (n *Node) Record() proto.Record { return n.rec }

// DepFree returns whether the node has no unsatisfied dependencies left,
// i.e. whether it is issuable.
func (n *Node) DepFree() bool { return len(n.dataDeps) == 0 }

// DataDeps returns the ids of the parents this node is still waiting on,
// in ascending order.
func (n *Node) DataDeps() []int64 { return sortedIds(n.dataDeps) }

// Children returns the ids of the nodes that depend on this node, in
// ascending order.
func (n *Node) Children() []int64 { return sortedIds(n.children) }

// UnresolvedParents returns the ids of parents that have not been read yet,
// in ascending order.
func (n *Node) UnresolvedParents() []int64 { return sortedIds(n.unresolvedParents) }

func sortedIds(set map[int64]bool) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Graph owns the set of live nodes read from a trace but not yet completed.
// It is not safe for concurrent use; a feeder drives all mutation from the
// consumer's calls.
type Graph struct {
	nodes      map[int64]*Node // all live nodes, keyed by id
	unresolved map[int64]bool  // ids of nodes with at least one unread parent
}

func NewGraph() *Graph {
	return &Graph{
		nodes:      map[int64]*Node{},
		unresolved: map[int64]bool{},
	}
}

// AddNode takes ownership of a record. Parents already held by the graph get
// this node registered as a child immediately - the only retroactive
// mutation the graph performs. Parent ids not seen yet are kept as
// unresolved until a later ResolveDep finds them.
//
// Adding a record whose id is already held replaces the old node, matching
// arena semantics; trace ids are expected to be unique.
func (g *Graph) AddNode(rec proto.Record) *Node {
	node := newNode(rec)
	for dep := range node.dataDeps {
		if parent, ok := g.nodes[dep]; ok {
			parent.children[node.Id()] = true
		} else {
			node.unresolvedParents[dep] = true
		}
	}
	g.nodes[node.Id()] = node
	if len(node.unresolvedParents) > 0 {
		g.unresolved[node.Id()] = true
	} else {
		delete(g.unresolved, node.Id())
	}
	return node
}

// ResolveDep re-attempts to link every unresolved node's unread parents
// against the nodes now held. It must be called after every batch of AddNode
// calls: later records may satisfy earlier forward references. A node leaves
// the unresolved set once all of its parents have been seen.
//
// One call makes a single pass; the rescan cost is bounded by the unresolved
// set, which shrinks monotonically to empty on well-formed windows.
func (g *Graph) ResolveDep() {
	for _, id := range sortedIds(g.unresolved) {
		node := g.nodes[id]
		for dep := range node.unresolvedParents {
			parent, ok := g.nodes[dep]
			if !ok {
				continue
			}
			parent.children[id] = true
			delete(node.unresolvedParents, dep)
		}
		if len(node.unresolvedParents) == 0 {
			delete(g.unresolved, id)
		}
	}
}

// FreeChildren removes id from the dependency set of every child recorded on
// node id, and returns the ids of children that became dependency-free, in
// ascending order. It is the sole mechanism by which completion propagates
// readiness and must be called exactly once per completed node, before
// RemoveNode. Unknown ids are a no-op.
func (g *Graph) FreeChildren(id int64) []int64 {
	node, ok := g.nodes[id]
	if !ok {
		return nil
	}
	var freed []int64
	for _, childId := range node.Children() {
		child, ok := g.nodes[childId]
		if !ok {
			continue
		}
		delete(child.dataDeps, id)
		if child.DepFree() {
			freed = append(freed, childId)
		}
	}
	return freed
}

// RemoveNode deletes a node from the graph. Callers must have already
// propagated its completion to children via FreeChildren; removal itself
// does not touch any other node. Unknown ids are a no-op.
func (g *Graph) RemoveNode(id int64) {
	delete(g.nodes, id)
	delete(g.unresolved, id)
}

// Get returns the live node for id, or errors.NodeNotFound if the graph does
// not currently hold it.
func (g *Graph) Get(id int64) (*Node, error) {
	node, ok := g.nodes[id]
	if !ok {
		return nil, errors.NodeNotFound{NodeId: id}
	}
	return node, nil
}

// Has returns whether the graph currently holds a node for id.
func (g *Graph) Has(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all live nodes in ascending id order.
func (g *Graph) Nodes() []*Node {
	ids := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Len returns the number of live nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// UnresolvedLen returns the number of nodes still waiting on unread parents.
func (g *Graph) UnresolvedLen() int { return len(g.unresolved) }

// UnresolvedIds returns the ids of unresolved nodes in ascending order.
func (g *Graph) UnresolvedIds() []int64 { return sortedIds(g.unresolved) }
