package huffman

import "strings"

// Code is a Huffman codeword, one element per bit, each 0 or 1.
type Code []byte

func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, bit := range c {
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}

// CodeTable maps each symbol of a tree to its codeword.
type CodeTable map[byte]Code

// Codes walks t depth first and records the root to leaf path of every leaf,
// 0 for a left branch and 1 for a right one. The only leaf of a single leaf
// tree gets an empty code.
func Codes(t *Tree) CodeTable {
	codes := make(CodeTable)
	if t.Empty() {
		return codes
	}

	type frame struct {
		node int
		path Code
	}
	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[f.node]
		if n.IsLeaf() {
			codes[n.Symbol] = f.path
			continue
		}
		stack = append(stack,
			frame{node: n.Right, path: extend(f.path, 1)},
			frame{node: n.Left, path: extend(f.path, 0)},
		)
	}
	return codes
}

func extend(path Code, bit byte) Code {
	next := make(Code, len(path)+1)
	copy(next, path)
	next[len(path)] = bit
	return next
}

// Cost returns the number of payload bits needed to encode the data freq
// was counted from.
func (ct CodeTable) Cost(freq FrequencyTable) uint64 {
	var bits uint64
	for s, n := range freq {
		bits += n * uint64(len(ct[s]))
	}
	return bits
}
