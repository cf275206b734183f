// Package treeobserve provides pluggable implementations of
// tree.ErrorReporter. A Host carries no reporter by default — zero overhead
// until one is wired in with tree.WithErrorReporter.
package treeobserve

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/nodelake/machinetree/tree"
)

// ConsoleReporter writes the host's non-panic failure categories to an
// io.Writer, defaulting to stderr.
type ConsoleReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleReporter creates a reporter that writes to os.Stderr.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{w: os.Stderr}
}

// NewConsoleReporterTo creates a reporter that writes to w instead of stderr.
func NewConsoleReporterTo(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

func (c *ConsoleReporter) ReportAbsentNode(key tree.NodeKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "machinetree: render requested for absent node %s\n", key.Name())
}

func (c *ConsoleReporter) ReportLockFailure(key tree.NodeKey, context string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "machinetree: lock failure on %s during %s\n", key.Name(), context)
}

var _ tree.ErrorReporter = (*ConsoleReporter)(nil)
