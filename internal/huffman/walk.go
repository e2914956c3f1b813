package huffman

import "fmt"

// WriteSymbol writes the codeword of s. A zero length code writes nothing.
func (ct CodeTable) WriteSymbol(w BitWriter, s byte) error {
	code, ok := ct[s]
	if !ok {
		return fmt.Errorf("huffman: symbol %#02x has no code", s)
	}
	for _, bit := range code {
		if err := w.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}

// ReadSymbol follows bits from r starting at the root until it reaches a
// leaf. When the root is itself a leaf no bits are read.
func (t *Tree) ReadSymbol(r BitReader) (byte, error) {
	if t.Empty() {
		return 0, fmt.Errorf("%w: empty tree", ErrMalformedTree)
	}
	n := t.nodes[t.root]
	for !n.IsLeaf() {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			n = t.nodes[n.Left]
		} else {
			n = t.nodes[n.Right]
		}
	}
	return n.Symbol, nil
}
