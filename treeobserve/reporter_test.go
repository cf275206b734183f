package treeobserve

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodelake/machinetree/tree"
)

type noopInput struct{}

func (noopInput) Clone() noopInput { return noopInput{} }

type noopComponent struct{}

func (*noopComponent) Step(*tree.NodeControl, noopInput) []tree.Seed { return nil }

func TestConsoleReporterWritesAbsentNodeAndLockFailure(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporterTo(&buf)

	seed := tree.MakeSeed[noopInput, *noopComponent]("root", noopInput{}, func(noopInput) *noopComponent {
		return &noopComponent{}
	})
	host := tree.MakeRoot(seed)
	report := host.Render()
	require.NotEmpty(t, report.RenderedKeys)
	key := report.RenderedKeys[0]

	r.ReportAbsentNode(key)
	r.ReportLockFailure(key, "reconcile")

	out := buf.String()
	assert.Contains(t, out, "absent node")
	assert.Contains(t, out, "lock failure")
	assert.Contains(t, out, "reconcile")
}
