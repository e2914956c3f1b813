package huffman

import (
	"bufio"
	"io"
	"sort"
)

// FrequencyTable maps a byte to the number of times it occurs. Only bytes
// that occur at least once have an entry.
type FrequencyTable map[byte]uint64

// Total returns the number of bytes counted.
func (ft FrequencyTable) Total() uint64 {
	var total uint64
	for _, n := range ft {
		total += n
	}
	return total
}

// Symbols returns the counted bytes in ascending order.
func (ft FrequencyTable) Symbols() []byte {
	symbols := make([]byte, 0, len(ft))
	for s := range ft {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// Count builds a FrequencyTable over p.
func Count(p []byte) FrequencyTable {
	var counts [256]uint64
	for _, b := range p {
		counts[b]++
	}
	return fromCounts(&counts)
}

// Analyze reads r to the end, counting every byte, and seeks back to the
// start so the caller can read the same data again. bufSize sizes the read
// buffer and should match whatever buffer the second pass uses.
func Analyze(r io.ReadSeeker, bufSize int) (FrequencyTable, error) {
	var counts [256]uint64

	br := bufio.NewReaderSize(r, bufSize)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		counts[b]++
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return fromCounts(&counts), nil
}

func fromCounts(counts *[256]uint64) FrequencyTable {
	ft := make(FrequencyTable)
	for i, n := range counts {
		if n != 0 {
			ft[byte(i)] = n
		}
	}
	return ft
}
