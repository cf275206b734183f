package tree

import "sync"

// Lake is the host's node storage: a mapping from stable identity to node
// data. It never prunes on its own; removal is always driven by the render
// engine's reconciliation, never by the lake itself.
type Lake struct {
	mu    sync.Mutex
	nodes map[NodeKey]*NodeData
}

func newLake() *Lake {
	return &Lake{nodes: make(map[NodeKey]*NodeData)}
}

// sproutAndLink allocates fresh identity and data for seed and inserts it.
func (l *Lake) sproutAndLink(seed Seed) (NodeKey, *NodeData) {
	key := newNodeKey(seed.TypeID, seed.Key)
	data := &NodeData{typeID: seed.TypeID, input: seed.Input, step: seed.Step}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.nodes[key] = data
	return key, data
}

// Get returns a node's data, or false if it has been removed or never
// existed.
func (l *Lake) Get(key NodeKey) (*NodeData, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.nodes[key]
	return d, ok
}

// remove deletes key's entry and returns the data it held, so the caller
// can walk its children for recursive cleanup. A second call for the same
// key is a safe no-op.
func (l *Lake) remove(key NodeKey) (*NodeData, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.nodes[key]
	if ok {
		delete(l.nodes, key)
	}
	return d, ok
}

// Len reports how many nodes are currently live in the lake.
func (l *Lake) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.nodes)
}
