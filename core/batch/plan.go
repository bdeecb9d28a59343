// Package batch reconciles user-edited sheets against existing records
// and applies the resulting writes to a store.
//
// Building a sheet or a plan is pure. Only Apply performs I/O: it runs the
// plan's operations one at a time, in order, and stops at the first failure
// (the Sequential policy). Operations applied before the failure stay applied.
package batch

import (
	"github.com/trezcool/schoolrecords/core/school"
)

// OpKind tells whether an operation inserts a new record or replaces an existing one.
type OpKind string

const (
	Create OpKind = "create"
	Update OpKind = "update"
)

// Policy names how a plan is applied.
type Policy string

// Sequential applies operations in order and stops at the first failure, without rollback.
const Sequential Policy = "sequential"

// Op is one write. Exactly one of Attendance and Grade is set.
type Op struct {
	Kind       OpKind             `json:"kind"`
	Attendance *school.Attendance `json:"attendance,omitempty"`
	Grade      *school.Grade      `json:"grade,omitempty"`
}

// StudentID is the student the operation writes for.
func (op Op) StudentID() int {
	switch {
	case op.Attendance != nil:
		return op.Attendance.StudentID
	case op.Grade != nil:
		return op.Grade.StudentID
	}
	return 0
}

// Plan is an ordered list of writes.
type Plan struct {
	Policy Policy `json:"policy"`
	Ops    []Op   `json:"ops"`
}

func (p Plan) Len() int { return len(p.Ops) }

// Counts returns how many creates and updates p holds.
func (p Plan) Counts() (creates, updates int) {
	for _, op := range p.Ops {
		if op.Kind == Create {
			creates++
		} else {
			updates++
		}
	}
	return creates, updates
}
