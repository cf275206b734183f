package tree

import "reflect"

// CloneInputFunc produces a fresh copy of a node's input. Reconciliation
// calls it every time an existing node is reused across a render, so the
// node never aliases the input a parent handed to a now-discarded seed.
type CloneInputFunc func() any

// StepFunc is a node's render step. It is invoked at most once per render
// pass; a node that calls NodeControl.Rerender is invoked again in a later
// pass. It produces the Seeds for the node's next set of children.
type StepFunc func(ctl *NodeControl, input any) []Seed

// Seed is a deferred node-creation request, the only way a component
// produces a child. The lake consumes it at most once, either to sprout a
// brand-new node or, when reconciliation finds a matching existing child
// of the same key and type, to refresh that child's input in place.
type Seed struct {
	TypeID     reflect.Type
	Key        string
	Input      any
	CloneInput CloneInputFunc
	Step       StepFunc
}
