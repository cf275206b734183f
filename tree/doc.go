// Package tree implements machinetree: a reactive component-tree runtime.
//
// A Host owns a Lake of nodes. Each node pairs a stable NodeKey (identity)
// with NodeData (its input, its step function, and its parent/child
// relations). Rendering a node invokes its step function, reconciles the
// Seeds it returns against the node's existing children by key and type,
// links the survivors and newly sprouted nodes back into the lake, and
// recursively unlinks whatever didn't survive. Host.Render processes one
// unit of queued work per call; Host.PollWork drains self-render requests
// raised from outside the render loop and turns them into queued work.
package tree
