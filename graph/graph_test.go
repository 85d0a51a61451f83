// Copyright 2024-2026, Flowsim Authors

package graph

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/flowsim/trace-feeder/errors"
	"github.com/flowsim/trace-feeder/proto"
)

func rec(id int64, deps ...int64) proto.Record {
	return proto.Record{
		Id:       id,
		Name:     "node",
		NodeType: proto.NODE_COMP,
		DataDeps: deps,
	}
}

func TestAddNodeLinksExistingParents(t *testing.T) {
	g := NewGraph()
	g.AddNode(rec(1))
	g.AddNode(rec(2, 1))

	parent, err := g.Get(1)
	if err != nil {
		t.Fatalf("err = %s, expected nil", err)
	}
	if diff := deep.Equal(parent.Children(), []int64{2}); diff != nil {
		t.Error(diff)
	}

	child, _ := g.Get(2)
	if len(child.UnresolvedParents()) != 0 {
		t.Errorf("unresolved parents = %v, expected none", child.UnresolvedParents())
	}
	if g.UnresolvedLen() != 0 {
		t.Errorf("unresolved nodes = %d, expected 0", g.UnresolvedLen())
	}
}

func TestAddNodeForwardReference(t *testing.T) {
	g := NewGraph()

	// Child read before its parent.
	g.AddNode(rec(2, 1))
	if g.UnresolvedLen() != 1 {
		t.Fatalf("unresolved nodes = %d, expected 1", g.UnresolvedLen())
	}
	child, _ := g.Get(2)
	if diff := deep.Equal(child.UnresolvedParents(), []int64{1}); diff != nil {
		t.Error(diff)
	}

	// Parent arrives; resolution links the edge and clears the set.
	g.AddNode(rec(1))
	g.ResolveDep()

	if g.UnresolvedLen() != 0 {
		t.Errorf("unresolved nodes = %d, expected 0", g.UnresolvedLen())
	}
	parent, _ := g.Get(1)
	if diff := deep.Equal(parent.Children(), []int64{2}); diff != nil {
		t.Error(diff)
	}
	if len(child.UnresolvedParents()) != 0 {
		t.Errorf("unresolved parents = %v, expected none", child.UnresolvedParents())
	}
	// Still a pending dependency - parent is linked, not completed.
	if diff := deep.Equal(child.DataDeps(), []int64{1}); diff != nil {
		t.Error(diff)
	}
}

// snapshot captures the observable graph state for equality checks.
type snapshot struct {
	DataDeps   map[int64][]int64
	Children   map[int64][]int64
	Unresolved []int64
}

func snap(g *Graph) snapshot {
	s := snapshot{
		DataDeps:   map[int64][]int64{},
		Children:   map[int64][]int64{},
		Unresolved: g.UnresolvedIds(),
	}
	for _, n := range g.Nodes() {
		s.DataDeps[n.Id()] = n.DataDeps()
		s.Children[n.Id()] = n.Children()
	}
	return s
}

func TestOutOfOrderLoadConverges(t *testing.T) {
	records := []proto.Record{rec(1), rec(2, 1), rec(3, 1, 2)}

	inOrder := NewGraph()
	for _, r := range records {
		inOrder.AddNode(r)
		inOrder.ResolveDep()
	}

	outOfOrder := NewGraph()
	for i := len(records) - 1; i >= 0; i-- {
		outOfOrder.AddNode(records[i])
		outOfOrder.ResolveDep()
	}

	if diff := deep.Equal(snap(outOfOrder), snap(inOrder)); diff != nil {
		t.Error(diff)
	}
	if outOfOrder.UnresolvedLen() != 0 {
		t.Errorf("unresolved nodes = %d, expected 0", outOfOrder.UnresolvedLen())
	}
}

func TestFreeChildrenPropagation(t *testing.T) {
	// A=1 with children B=2 (deps: A) and C=3 (deps: A, D=4).
	g := NewGraph()
	g.AddNode(rec(1))
	g.AddNode(rec(4))
	g.AddNode(rec(2, 1))
	g.AddNode(rec(3, 1, 4))

	freed := g.FreeChildren(1)
	if diff := deep.Equal(freed, []int64{2}); diff != nil {
		t.Error(diff)
	}

	c, _ := g.Get(3)
	if c.DepFree() {
		t.Error("node 3 is dep-free, expected it to still wait on node 4")
	}
	if diff := deep.Equal(c.DataDeps(), []int64{4}); diff != nil {
		t.Error(diff)
	}

	freed = g.FreeChildren(4)
	if diff := deep.Equal(freed, []int64{3}); diff != nil {
		t.Error(diff)
	}
}

func TestFreeChildrenUnknownId(t *testing.T) {
	g := NewGraph()
	if freed := g.FreeChildren(9); freed != nil {
		t.Errorf("freed = %v, expected nil", freed)
	}
}

func TestRemoveNode(t *testing.T) {
	g := NewGraph()
	g.AddNode(rec(1))
	g.AddNode(rec(2, 1))

	g.FreeChildren(1)
	g.RemoveNode(1)

	if g.Has(1) {
		t.Error("node 1 still in graph, expected it removed")
	}
	if g.Len() != 1 {
		t.Errorf("len = %d, expected 1", g.Len())
	}

	// The child kept its (now satisfied) view of the edge.
	child, err := g.Get(2)
	if err != nil {
		t.Fatalf("err = %s, expected nil", err)
	}
	if !child.DepFree() {
		t.Errorf("node 2 deps = %v, expected none", child.DataDeps())
	}
}

func TestGetNotLoaded(t *testing.T) {
	g := NewGraph()
	_, err := g.Get(7)
	if err == nil {
		t.Fatal("expected an error, but did not get one")
	}
	notFound, ok := err.(errors.NodeNotFound)
	if !ok {
		t.Fatalf("err type = %T, expected errors.NodeNotFound", err)
	}
	if notFound.NodeId != 7 {
		t.Errorf("err.NodeId = %d, expected 7", notFound.NodeId)
	}
}

func TestNodeAccessors(t *testing.T) {
	g := NewGraph()
	g.AddNode(proto.Record{
		Id:           9,
		Name:         "coll",
		NodeType:     proto.NODE_COMM_COLL,
		IsCPUOp:      false,
		Runtime:      120,
		NumOps:       64,
		TensorSize:   4096,
		CommType:     2,
		CommPriority: 1,
		CommSize:     8192,
		CommSrc:      0,
		CommDst:      3,
		CommTag:      77,
		InvolvedDim:  []bool{true, false, true},
	})

	n, err := g.Get(9)
	if err != nil {
		t.Fatalf("err = %s, expected nil", err)
	}
	if n.Name() != "coll" {
		t.Errorf("name = %s, expected coll", n.Name())
	}
	if n.NodeType() != proto.NODE_COMM_COLL {
		t.Errorf("node type = %d, expected %d", n.NodeType(), proto.NODE_COMM_COLL)
	}
	if n.Runtime() != 120 || n.NumOps() != 64 || n.TensorSize() != 4096 {
		t.Errorf("cost fields = %d/%d/%d, expected 120/64/4096", n.Runtime(), n.NumOps(), n.TensorSize())
	}
	if n.CommType() != 2 || n.CommPriority() != 1 || n.CommSize() != 8192 {
		t.Errorf("comm fields = %d/%d/%d, expected 2/1/8192", n.CommType(), n.CommPriority(), n.CommSize())
	}
	if n.CommSrc() != 0 || n.CommDst() != 3 || n.CommTag() != 77 {
		t.Errorf("comm endpoints = %d/%d/%d, expected 0/3/77", n.CommSrc(), n.CommDst(), n.CommTag())
	}
	if n.InvolvedDimSize() != 3 {
		t.Errorf("involved dim size = %d, expected 3", n.InvolvedDimSize())
	}
	if !n.InvolvedDim(0) || n.InvolvedDim(1) || !n.InvolvedDim(2) {
		t.Error("involved dim bits do not match the record")
	}
	if n.InvolvedDim(5) {
		t.Error("out-of-range involved dim = true, expected false")
	}
}
