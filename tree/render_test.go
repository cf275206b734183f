package tree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intInput struct{ V int }

func (i intInput) Clone() intInput { return i }

type labelInput struct{ Label string }

func (l labelInput) Clone() labelInput { return l }

type unitInput struct{}

func (unitInput) Clone() unitInput { return unitInput{} }

// countdownComponent produces one child per unit of its own count, each
// with count-1, re-requesting itself every render until its count runs out.
type countdownComponent struct{ count int }

func newCountdownComponent(input intInput) *countdownComponent {
	return &countdownComponent{count: input.V}
}

func (c *countdownComponent) Step(ctl *NodeControl, input intInput) []Seed {
	seeds := make([]Seed, 0, c.count)
	for i := 0; i < c.count; i++ {
		key := fmt.Sprintf("child-%d", i)
		seeds = append(seeds, MakeSeed[intInput, *countdownComponent](key, intInput{V: c.count - 1}, newCountdownComponent))
	}
	if c.count > 0 {
		ctl.Rerender()
	}
	c.count--
	return seeds
}

type leafComponent struct{}

func newLeafComponent(labelInput) *leafComponent { return &leafComponent{} }

func (*leafComponent) Step(*NodeControl, labelInput) []Seed { return nil }

func TestCountdownTreeRendersInOneDownwardPass(t *testing.T) {
	root := MakeSeed[intInput, *countdownComponent]("root", intInput{V: 3}, newCountdownComponent)
	host := MakeRoot(root)

	report := host.Render()

	// root + 3 children (count=2) + 6 grandchildren (count=1) + 6
	// great-grandchildren (count=0, no further children).
	assert.Len(t, report.RenderedKeys, 1+3+6+6)
	assert.Empty(t, report.UnrenderedKeys)
	assert.Empty(t, report.UnlinkedNodePairs)

	iterations := 0
	for host.Len() > 0 {
		next := host.Render()
		if len(next.RenderedKeys) == 0 {
			break
		}
		iterations++
		require.Less(t, iterations, 20, "countdown host should terminate well within 20 render() calls")
	}
}

func childSet(keys []NodeKey, exclude NodeKey) map[NodeKey]struct{} {
	out := make(map[NodeKey]struct{}, len(keys))
	for _, k := range keys {
		if k != exclude {
			out[k] = struct{}{}
		}
	}
	return out
}

type orderedParent struct {
	order [][]string
	calls int
}

func (p *orderedParent) Step(ctl *NodeControl, input unitInput) []Seed {
	seq := p.order[p.calls]
	seeds := make([]Seed, len(seq))
	for i, key := range seq {
		seeds[i] = MakeSeed[labelInput, *leafComponent](key, labelInput{Label: key}, newLeafComponent)
	}
	p.calls++
	if p.calls < len(p.order) {
		ctl.Rerender()
	}
	return seeds
}

func TestKeyStabilityReusesReorderedChildren(t *testing.T) {
	order := [][]string{{"a", "b", "c"}, {"a", "c", "b"}}
	construct := func(unitInput) *orderedParent {
		return &orderedParent{order: order}
	}
	host := MakeRoot(MakeSeed[unitInput, *orderedParent]("root", unitInput{}, construct))
	rootKey := host.Root()

	first := host.Render()
	firstChildren := childSet(first.RenderedKeys, rootKey)
	require.Len(t, firstChildren, 3)
	assert.Empty(t, first.UnlinkedNodePairs)

	second := host.Render()
	secondChildren := childSet(second.RenderedKeys, rootKey)
	require.Len(t, secondChildren, 3)

	assert.Empty(t, second.UnlinkedNodePairs, "reordering siblings must reuse, not sprout or unlink")
	assert.Equal(t, firstChildren, secondChildren, "the same three identities must survive the reorder")
}

// typeA and typeB both implement Component[labelInput] but are distinct
// concrete types, so MakeSeed gives them distinct TypeID values even when
// sprouted under the same key.
type typeA struct{}

func newTypeA(labelInput) *typeA { return &typeA{} }

func (*typeA) Step(*NodeControl, labelInput) []Seed { return nil }

type typeB struct{}

func newTypeB(labelInput) *typeB { return &typeB{} }

func (*typeB) Step(*NodeControl, labelInput) []Seed { return nil }

type swappingParent struct{ calls int }

func (p *swappingParent) Step(ctl *NodeControl, input unitInput) []Seed {
	defer func() {
		if p.calls == 0 {
			ctl.Rerender()
		}
		p.calls++
	}()
	if p.calls == 0 {
		return []Seed{MakeSeed[labelInput, *typeA]("x", labelInput{Label: "x"}, newTypeA)}
	}
	return []Seed{MakeSeed[labelInput, *typeB]("x", labelInput{Label: "x"}, newTypeB)}
}

func TestTypeIDSwapAtSameKeyUnlinksOldSproutsNew(t *testing.T) {
	construct := func(unitInput) *swappingParent { return &swappingParent{} }
	host := MakeRoot(MakeSeed[unitInput, *swappingParent]("root", unitInput{}, construct))
	rootKey := host.Root()

	first := host.Render()
	firstChildren := childSet(first.RenderedKeys, rootKey)
	require.Len(t, firstChildren, 1)
	assert.Empty(t, first.UnlinkedNodePairs)

	second := host.Render()
	secondChildren := childSet(second.RenderedKeys, rootKey)
	require.Len(t, secondChildren, 1)

	require.Len(t, second.UnlinkedNodePairs, 1)
	for old := range firstChildren {
		assert.Equal(t, old, second.UnlinkedNodePairs[0].Key)
	}
	for fresh := range secondChildren {
		_, stillThere := firstChildren[fresh]
		assert.False(t, stillThere, "the new child must be a fresh identity, not the unlinked one")
	}
}

type duplicateKeyParent struct{}

func (*duplicateKeyParent) Step(*NodeControl, unitInput) []Seed {
	return []Seed{
		MakeSeed[labelInput, *leafComponent]("dup", labelInput{Label: "dup-1"}, newLeafComponent),
		MakeSeed[labelInput, *leafComponent]("dup", labelInput{Label: "dup-2"}, newLeafComponent),
		MakeSeed[labelInput, *leafComponent]("solo", labelInput{Label: "solo"}, newLeafComponent),
	}
}

func TestDuplicateSiblingKeysProduceOneNodePerSeed(t *testing.T) {
	construct := func(unitInput) *duplicateKeyParent { return &duplicateKeyParent{} }
	host := MakeRoot(MakeSeed[unitInput, *duplicateKeyParent]("root", unitInput{}, construct))

	report := host.Render()
	rootKey := host.Root()
	children := childSet(report.RenderedKeys, rootKey)

	// Both "dup" seeds and the "solo" seed each get their own node (the
	// reconciler doesn't de-duplicate within one seed list): only the first
	// "dup" seed can reuse an existing node on later renders, the second is
	// always sprouted fresh. This is an edge case the component author is
	// responsible for avoiding, not one the engine silently repairs.
	assert.Len(t, children, 3)
}
