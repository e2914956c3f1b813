// Package huffman builds byte level Huffman trees and prefix codes, and
// moves trees in and out of a bit stream.
package huffman

import "container/heap"

// NoNode marks a missing child or the root of an empty tree.
const NoNode = -1

// MaxLeaves is the size of the byte alphabet.
const MaxLeaves = 256

// Node is a tree vertex. A leaf has Left == Right == NoNode and carries a
// Symbol; an internal node has both children and no symbol.
type Node struct {
	Symbol byte
	Weight uint64
	Left   int
	Right  int

	// smallest symbol below this node, used to break weight ties
	key byte
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool { return n.Left == NoNode && n.Right == NoNode }

// Tree is an immutable Huffman tree stored as an arena of nodes addressed by
// index. Dropping the Tree releases every node at once.
type Tree struct {
	nodes []Node
	root  int
}

func newTree(capacity int) *Tree {
	return &Tree{nodes: make([]Node, 0, capacity), root: NoNode}
}

func (t *Tree) addLeaf(symbol byte, weight uint64) int {
	t.nodes = append(t.nodes, Node{Symbol: symbol, Weight: weight, Left: NoNode, Right: NoNode, key: symbol})
	return len(t.nodes) - 1
}

func (t *Tree) addInternal(left, right int) int {
	l, r := t.nodes[left], t.nodes[right]
	key := l.key
	if r.key < key {
		key = r.key
	}
	t.nodes = append(t.nodes, Node{Weight: l.Weight + r.Weight, Left: left, Right: right, key: key})
	return len(t.nodes) - 1
}

// Root returns the index of the root node, or NoNode for an empty tree.
func (t *Tree) Root() int { return t.root }

// Node returns the node stored at index i.
func (t *Tree) Node(i int) Node { return t.nodes[i] }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Empty reports whether the tree has no nodes.
func (t *Tree) Empty() bool { return t.root == NoNode }

// Leaves returns the number of leaf nodes.
func (t *Tree) Leaves() int {
	var n int
	for _, node := range t.nodes {
		if node.IsLeaf() {
			n++
		}
	}
	return n
}

// Depth returns the length of the longest root to leaf path. A single leaf
// tree has depth 0, an empty tree -1.
func (t *Tree) Depth() int {
	if t.Empty() {
		return -1
	}
	type frame struct{ node, depth int }
	var deepest int
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[f.node]
		if n.IsLeaf() {
			if f.depth > deepest {
				deepest = f.depth
			}
			continue
		}
		stack = append(stack, frame{n.Left, f.depth + 1}, frame{n.Right, f.depth + 1})
	}
	return deepest
}

// Build constructs a Huffman tree from freq by repeatedly merging the two
// lightest nodes. Equal weights are ordered by the smallest symbol each node
// covers, so the same table always yields the same tree. The first node
// taken becomes the left child.
func Build(freq FrequencyTable) *Tree {
	if len(freq) == 0 {
		return newTree(0)
	}
	t := newTree(2*len(freq) - 1)

	q := &nodeQueue{tree: t}
	for _, s := range freq.Symbols() {
		q.items = append(q.items, t.addLeaf(s, freq[s]))
	}
	heap.Init(q)

	for q.Len() > 1 {
		left := heap.Pop(q).(int)
		right := heap.Pop(q).(int)
		heap.Push(q, t.addInternal(left, right))
	}
	t.root = heap.Pop(q).(int)
	return t
}

// nodeQueue is a min-heap of node indices.
type nodeQueue struct {
	tree  *Tree
	items []int
}

func (q *nodeQueue) Len() int { return len(q.items) }

func (q *nodeQueue) Less(i, j int) bool {
	a, b := q.tree.nodes[q.items[i]], q.tree.nodes[q.items[j]]
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	return a.key < b.key
}

func (q *nodeQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *nodeQueue) Push(x interface{}) { q.items = append(q.items, x.(int)) }

func (q *nodeQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}
