package tree

// ContextAccess offers ancestor-walking context reads and same-node context
// writes, scoped to the node it was obtained from via
// NodeControl.UseContext. Go disallows generic methods, so GetContext and
// SetContext are free functions taking a ContextAccess value, the same
// shape the source's own (abandoned, commented-out) generic ContextAccess
// methods were reaching for.
type ContextAccess struct {
	lake *Lake
	at   NodeKey
}

// GetContext walks from the current node up through parent links and
// returns the value registered for key on the nearest node (including the
// current node itself) that has one set.
func GetContext[T any](ca ContextAccess, key *ContextKey[T]) (T, bool) {
	var zero T
	cur := ca.at
	for {
		data, ok := ca.lake.Get(cur)
		if !ok {
			return zero, false
		}
		if raw, found := data.Context().get(key); found {
			return raw.(T), true
		}
		parent, hasParent := data.Parent()
		if !hasParent {
			return zero, false
		}
		next, ok := parent.Upgrade()
		if !ok {
			return zero, false
		}
		cur = next
	}
}

// SetContext sets a context value on the current node only; it is visible
// to this node and to any descendant that doesn't shadow it with its own
// value for the same key.
func SetContext[T any](ca ContextAccess, key *ContextKey[T], value T) {
	data, ok := ca.lake.Get(ca.at)
	if !ok {
		return
	}
	data.Context().set(key, value)
}
