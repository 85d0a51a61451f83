// Copyright 2024-2026, Flowsim Authors

// Package proto provides the workload record structures and constants shared
// by every trace-feeder package. A Record is one decoded workload node as it
// appears in a trace, before the dependency graph takes ownership of it.
package proto

const (
	NODE_INVALID int32 = iota

	NODE_COMP      // compute operation
	NODE_COMM_SEND // point-to-point send
	NODE_COMM_RECV // point-to-point receive
	NODE_COMM_COLL // collective communication
)

var NodeTypeName = map[int32]string{
	NODE_INVALID:   "INVALID",
	NODE_COMP:      "COMP",
	NODE_COMM_SEND: "COMM_SEND",
	NODE_COMM_RECV: "COMM_RECV",
	NODE_COMM_COLL: "COMM_COLL",
}

var NodeTypeValue = map[string]int32{
	"INVALID":   NODE_INVALID,
	"COMP":      NODE_COMP,
	"COMM_SEND": NODE_COMM_SEND,
	"COMM_RECV": NODE_COMM_RECV,
	"COMM_COLL": NODE_COMM_COLL,
}

// Record represents one workload node decoded from a trace. Records are
// identified by Id, which must be unique within a trace. DataDeps lists the
// ids of the nodes this node depends on, which may include ids of records
// that appear later in the trace (forward references).
//
// The comm_* fields only carry meaning for communication nodes; for compute
// nodes they are zero. InvolvedDim is an ordered bit sequence whose meaning
// belongs to the consumer, not to the feeder.
type Record struct {
	Id       int64  `json:"id"`
	Name     string `json:"name"`
	NodeType int32  `json:"node_type"`
	IsCPUOp  bool   `json:"is_cpu_op"`

	// Cost fields
	Runtime    int64 `json:"runtime"`
	NumOps     int64 `json:"num_ops"`
	TensorSize int64 `json:"tensor_size"`

	// Communication fields
	CommType     int64 `json:"comm_type"`
	CommPriority int32 `json:"comm_priority"`
	CommSize     int64 `json:"comm_size"`
	CommSrc      int32 `json:"comm_src"`
	CommDst      int32 `json:"comm_dst"`
	CommTag      int32 `json:"comm_tag"`

	InvolvedDim []bool  `json:"involved_dim"`
	DataDeps    []int64 `json:"data_deps"`
}

type Records []Record

func (r Records) Len() int           { return len(r) }
func (r Records) Less(i, j int) bool { return r[i].Id < r[j].Id }
func (r Records) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
