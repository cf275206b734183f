package tree

import "reflect"

// UnlinkedPair pairs a removed node's identity with the data it held at
// removal time.
type UnlinkedPair struct {
	Key  NodeKey
	Data *NodeData
}

// renderOutcome is the result of rendering a single node: the children it
// ended up with, whatever got unlinked as a result, and whether it asked
// for another render.
type renderOutcome struct {
	newNodes []NodeKey
	unlinked []UnlinkedPair
	rerender bool
	sprouted int
}

// renderOne runs one node's full render: step, reconcile, link, unlink.
func (h *Host) renderOne(key NodeKey, data *NodeData) renderOutcome {
	seeds, rerender := h.runStep(key, data)
	newNodes, unused, sprouted := h.reconcile(data, seeds)
	h.link(key, data, newNodes)
	unlinked := h.unlinkAll(unused)
	return renderOutcome{newNodes: newNodes, unlinked: unlinked, rerender: rerender, sprouted: sprouted}
}

// runStep is phase A: it takes the step function out of the node, invokes
// it with a fresh NodeControl, and puts it back.
func (h *Host) runStep(key NodeKey, data *NodeData) ([]Seed, bool) {
	step, input := data.takeStep()
	if step == nil {
		return nil, false
	}
	ctl := &NodeControl{lake: h.lake, self: key}
	seeds := step(ctl, input)
	data.restoreStep(step)
	return seeds, ctl.rerender
}

// reconcile is phase B: it merges seeds into the node's existing children
// where key and type match, sprouts the rest fresh, and reports whichever
// existing children didn't survive.
func (h *Host) reconcile(data *NodeData, seeds []Seed) (newNodes []NodeKey, unused []NodeKey, sprouted int) {
	children := data.Children()

	type childInfo struct {
		key    NodeKey
		typeID reflect.Type
		keyStr string
		ok     bool
	}

	infos := make([]childInfo, 0, len(children))
	for _, w := range children {
		ck, upgraded := w.Upgrade()
		if !upgraded {
			continue
		}
		typeID, keyStr, ok := ck.identitySnapshot()
		infos = append(infos, childInfo{key: ck, typeID: typeID, keyStr: keyStr, ok: ok})
	}

	seedByKey := make(map[string]*Seed, len(seeds))
	for i := range seeds {
		seedByKey[seeds[i].Key] = &seeds[i]
	}

	unusedSet := make(map[NodeKey]struct{}, len(infos))
	oldByKey := make(map[string]NodeKey, len(infos))
	for _, info := range infos {
		if !info.ok {
			// Lock acquisition failed: per spec's failure-handling rules,
			// this is treated as a mismatch, never as a panic or a block.
			unusedSet[info.key] = struct{}{}
			if h.reporter != nil {
				h.reporter.ReportLockFailure(info.key, "reconcile")
			}
			continue
		}
		if s, hasSeed := seedByKey[info.keyStr]; !hasSeed || s.TypeID != info.typeID {
			unusedSet[info.key] = struct{}{}
		}
		if _, dup := oldByKey[info.keyStr]; dup {
			// An earlier sibling already holds this key and is the only one
			// that can be reused; this one is unlinked.
			unusedSet[info.key] = struct{}{}
			continue
		}
		oldByKey[info.keyStr] = info.key
	}

	newNodes = make([]NodeKey, 0, len(seeds))
	for i := range seeds {
		seed := seeds[i]
		if oldKey, found := oldByKey[seed.Key]; found {
			delete(oldByKey, seed.Key)
			if h.merge(oldKey, seed) {
				newNodes = append(newNodes, oldKey)
				continue
			}
			unusedSet[oldKey] = struct{}{}
		}
		newNodes = append(newNodes, h.sprout(seed))
		sprouted++
	}

	unused = make([]NodeKey, 0, len(unusedSet))
	for k := range unusedSet {
		unused = append(unused, k)
	}
	return newNodes, unused, sprouted
}

// merge refreshes an existing node's input in place when its type still
// matches the seed that claimed its key. It never mutates the node on
// failure; the caller falls back to a fresh sprout.
func (h *Host) merge(oldKey NodeKey, seed Seed) bool {
	typeID, _, ok := oldKey.identitySnapshot()
	if !ok || typeID != seed.TypeID {
		return false
	}
	data, ok := h.lake.Get(oldKey)
	if !ok {
		return false
	}
	data.replaceInput(seed.CloneInput())
	return true
}

// sprout allocates a brand-new node for seed and installs its self-render
// signal, which happens exactly once, only for freshly sprouted nodes.
func (h *Host) sprout(seed Seed) NodeKey {
	key, _ := h.lake.sproutAndLink(seed)
	h.installSignal(key)
	return key
}

func (h *Host) installSignal(key NodeKey) {
	if key.id == nil {
		return
	}
	if !key.id.mu.TryLock() {
		if h.reporter != nil {
			h.reporter.ReportLockFailure(key, "install-signal")
		}
		return
	}
	defer key.id.mu.Unlock()
	if key.id.hasSignal {
		return
	}
	key.id.selfSignal = SelfRenderSignal{key: key, q: h.signals}
	key.id.hasSignal = true
}

// link is phase C's first step: it replaces the node's children with weak
// refs to newNodes in seed-production order, and points each child's parent
// weak ref back at the node.
func (h *Host) link(key NodeKey, data *NodeData, newNodes []NodeKey) {
	weakChildren := make([]NodeKeyWeak, len(newNodes))
	for i, n := range newNodes {
		weakChildren[i] = n.Weak()
	}
	data.setChildren(weakChildren)
	for _, child := range newNodes {
		if cd, ok := h.lake.Get(child); ok {
			cd.setParent(key.Weak())
		}
	}
}

// unlinkAll is phase C's second step: it recursively removes every key in
// unused from the lake, parent-first, and reports every pair removed.
func (h *Host) unlinkAll(keys []NodeKey) []UnlinkedPair {
	var out []UnlinkedPair
	for _, k := range keys {
		out = append(out, h.unlinkRecursively(k)...)
	}
	return out
}

func (h *Host) unlinkRecursively(key NodeKey) []UnlinkedPair {
	data, ok := h.lake.remove(key)
	if !ok {
		return nil
	}
	pairs := []UnlinkedPair{{Key: key, Data: data}}
	for _, w := range data.Children() {
		if childKey, ok := w.Upgrade(); ok {
			pairs = append(pairs, h.unlinkRecursively(childKey)...)
		}
	}
	return pairs
}
