package huffman

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is returned when a serialized tree cannot be rebuilt.
var ErrMalformedTree = errors.New("huffman: malformed tree")

const (
	internalMarker byte = 0
	leafMarker     byte = 1
)

type BitWriter interface {
	WriteBit(bit byte) error
	WriteByte(b byte) error
}

type BitReader interface {
	ReadBit() (byte, error)
	ReadByte() (byte, error)
}

// WriteTree serializes t in pre-order: a leaf is a 1 bit followed by its
// symbol, an internal node is a 0 bit followed by its left and right
// subtrees. An empty tree writes nothing.
func WriteTree(w BitWriter, t *Tree) error {
	if t.Empty() {
		return nil
	}

	stack := []int{t.root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[i]
		if n.IsLeaf() {
			if err := w.WriteBit(leafMarker); err != nil {
				return err
			}
			if err := w.WriteByte(n.Symbol); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteBit(internalMarker); err != nil {
			return err
		}
		stack = append(stack, n.Right, n.Left)
	}
	return nil
}

// ReadTree rebuilds a tree written by WriteTree. It always reads at least
// one node. Weights are not part of the format and read back as zero.
func ReadTree(r BitReader) (*Tree, error) {
	t := newTree(2*MaxLeaves - 1)
	seen := make(map[byte]bool, MaxLeaves)

	// internal nodes still waiting for a child
	var open []int
	var internals int
	for {
		marker, err := r.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %w", ErrMalformedTree, t.Len(), err)
		}

		var i int
		if marker == leafMarker {
			symbol, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("%w: leaf %d: %w", ErrMalformedTree, t.Len(), err)
			}
			if seen[symbol] {
				return nil, fmt.Errorf("%w: symbol %#02x appears twice", ErrMalformedTree, symbol)
			}
			seen[symbol] = true
			i = t.addLeaf(symbol, 0)
		} else {
			if internals == MaxLeaves-1 {
				return nil, fmt.Errorf("%w: more than %d leaves", ErrMalformedTree, MaxLeaves)
			}
			internals++
			t.nodes = append(t.nodes, Node{Left: NoNode, Right: NoNode})
			i = len(t.nodes) - 1
		}

		if len(open) == 0 {
			t.root = i
		} else {
			parent := &t.nodes[open[len(open)-1]]
			if parent.Left == NoNode {
				parent.Left = i
			} else {
				parent.Right = i
				open = open[:len(open)-1]
			}
		}
		if marker == internalMarker {
			open = append(open, i)
		}
		if len(open) == 0 {
			break
		}
	}
	return t, nil
}
