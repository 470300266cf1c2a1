package mcts

// NodeIndex addresses a Node inside a Tree's arena. Node indices are stable
// for the lifetime of the tree that produced them — the arena is
// append-only (Elvenson-alphabeth/mcts/tree.go's naughty plays the same
// role, here renamed and kept as a plain int32 since a single tree never
// outlives the goroutine that grows it).
type NodeIndex int32

// NoIndex is the sentinel for "no such node" (alphabeth's nilNode).
const NoIndex NodeIndex = -1

// RootIndex is always the first node allocated in a fresh tree.
const RootIndex NodeIndex = 0

func (i NodeIndex) valid() bool { return i >= 0 }
