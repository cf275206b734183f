package tree

import "reflect"

// Cloneable is satisfied by a component's Input type so reconciliation can
// hand a reused node a fresh copy of its input on every render, the Go
// stand-in for the source implementation's explicit Input: Clone bound.
type Cloneable[T any] interface {
	Clone() T
}

// Component is the contract a node's implementation satisfies: given its
// current input, produce the seeds for its children.
type Component[I Cloneable[I]] interface {
	Step(ctl *NodeControl, input I) []Seed
}

// Construct builds a component's initial state from its first input.
type Construct[I Cloneable[I], C Component[I]] func(input I) C

// MakeSeed wraps construct and the constructed component's Step behind the
// type-erased Seed contract. construct runs immediately, not on first
// render: the component's state must exist before the seed it came from is
// ever reconciled, matching how the source's Component::seed builds its
// step closure around an already-constructed Self.
func MakeSeed[I Cloneable[I], C Component[I]](key string, input I, construct Construct[I, C]) Seed {
	comp := construct(input)
	typeID := reflect.TypeOf(comp)

	step := func(ctl *NodeControl, raw any) []Seed {
		in := raw.(I)
		return comp.Step(ctl, in)
	}

	return Seed{
		TypeID: typeID,
		Key:    key,
		Input:  input,
		CloneInput: func() any {
			return input.Clone()
		},
		Step: step,
	}
}
