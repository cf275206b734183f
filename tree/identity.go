package tree

import (
	"fmt"
	"reflect"
	"sync"
	"weak"
)

// rawKey is a node's mutable identity record: its immutable type and key
// plus the self-render signal installed for it at sprout time. It is never
// exposed directly; NodeKey and NodeKeyWeak are the only handles to it.
type rawKey struct {
	mu         sync.Mutex
	typeID     reflect.Type
	key        string
	selfSignal SelfRenderSignal
	hasSignal  bool
}

// NodeKey is a stable, shared-ownership handle to a node's identity. Two
// NodeKey values are equal exactly when they refer to the same identity
// record, which makes NodeKey usable as a map key with pointer-identity
// semantics for free.
type NodeKey struct {
	id *rawKey
}

func newNodeKey(typeID reflect.Type, key string) NodeKey {
	return NodeKey{id: &rawKey{typeID: typeID, key: key}}
}

// IsZero reports whether k is the zero NodeKey. The lake never produces one.
func (k NodeKey) IsZero() bool { return k.id == nil }

// Weak returns a weak reference to k's identity, suitable for the parent and
// child links stored in Relations: holding one never keeps the node alive.
func (k NodeKey) Weak() NodeKeyWeak {
	if k.id == nil {
		return NodeKeyWeak{}
	}
	return NodeKeyWeak{ptr: weak.Make(k.id)}
}

// identitySnapshot reads the node's type and key in one locked step. A
// failed TryLock is reported as ok=false, never as a panic or a block — the
// caller treats it the same as "no matching identity found".
func (k NodeKey) identitySnapshot() (typeID reflect.Type, key string, ok bool) {
	if k.id == nil || !k.id.mu.TryLock() {
		return nil, "", false
	}
	defer k.id.mu.Unlock()
	return k.id.typeID, k.id.key, true
}

// Name renders a best-effort "<type>:<key>" name for diagnostics and
// RenderReport. It falls back to "unidentifiable" on lock failure and never
// fails outright.
func (k NodeKey) Name() string {
	if k.id == nil {
		return "unidentifiable"
	}
	typeID, key, ok := k.identitySnapshot()
	if !ok {
		return "unidentifiable"
	}
	typeName := "<nil>"
	if typeID != nil {
		typeName = typeID.String()
	}
	return fmt.Sprintf("%q:%q", typeName, key)
}

// NodeKeyWeak is a weak reference to a node's identity. It must be upgraded
// to a NodeKey before the node can be looked up in a Lake.
type NodeKeyWeak struct {
	ptr weak.Pointer[rawKey]
}

// Upgrade attempts to recover a strong NodeKey. It fails once nothing else
// holds the identity alive and the garbage collector has reclaimed it; a
// lake entry being removed is always reflected by Lake.Get regardless of
// whether Upgrade still happens to succeed, so callers should treat a
// successful Upgrade as "was alive recently", not "is still in the lake".
func (w NodeKeyWeak) Upgrade() (NodeKey, bool) {
	if p := w.ptr.Value(); p != nil {
		return NodeKey{id: p}, true
	}
	return NodeKey{}, false
}
