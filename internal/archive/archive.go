// Package archive compresses and decompresses single files with a static
// byte level Huffman code.
//
// A compressed file is a 4 byte little endian count of original bytes,
// followed by the pre-order serialized tree and the coded payload, bit
// packed back to back and zero padded to a whole byte.
package archive

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Firsttown/BitArchive-dev/internal/bitstream"
	"github.com/Firsttown/BitArchive-dev/internal/huffman"
)

const BUFFER_SIZE = 0x20000

const headerSize = 4

var (
	ErrOpenInput       = errors.New("archive: cannot open input")
	ErrOpenOutput      = errors.New("archive: cannot open output")
	ErrSamePath        = errors.New("archive: input and output are the same file")
	ErrTooLarge        = errors.New("archive: input larger than 4 GiB")
	ErrMalformedHeader = errors.New("archive: malformed header")
	ErrSourceChanged   = errors.New("archive: input changed while compressing")
)

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// Archiver logs progress only; failures are returned to the caller.
type Archiver struct {
	logger Logger
}

func NewArchiver(logger Logger) *Archiver {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Archiver{
		logger: logger,
	}
}

// Stats describes one finished compress or decompress call.
type Stats struct {
	Original    uint64
	Compressed  uint64
	Symbols     int
	TreeBits    uint64
	PayloadBits uint64
}

// Ratio returns compressed size over original size, or 0 for an empty
// original.
func (s Stats) Ratio() float64 {
	if s.Original == 0 {
		return 0
	}
	return float64(s.Compressed) / float64(s.Original)
}

// Encode compresses everything in r into w. r is read twice: once to count
// bytes and once to code them.
func (arch *Archiver) Encode(r io.ReadSeeker, w io.Writer) (Stats, error) {
	var stats Stats

	freq, err := huffman.Analyze(r, BUFFER_SIZE)
	if err != nil {
		return stats, fmt.Errorf("archive: analyze input: %w", err)
	}
	total := freq.Total()
	if total > math.MaxUint32 {
		return stats, ErrTooLarge
	}

	tree := huffman.Build(freq)
	codes := huffman.Codes(tree)
	arch.logger.Debugf("encode: %d bytes, %d distinct symbols, tree depth %d", total, len(freq), tree.Depth())

	if err := binary.Write(w, binary.LittleEndian, uint32(total)); err != nil {
		return stats, fmt.Errorf("archive: write header: %w", err)
	}

	bw := bitstream.NewWriter(w)
	if err := huffman.WriteTree(bw, tree); err != nil {
		return stats, fmt.Errorf("archive: write tree: %w", err)
	}
	treeBits := bw.Bits()

	var read uint64
	in := bufio.NewReaderSize(r, BUFFER_SIZE)
	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("archive: read input: %w", err)
		}
		read++
		if read > total {
			return stats, ErrSourceChanged
		}
		if err := codes.WriteSymbol(bw, b); err != nil {
			if _, ok := freq[b]; !ok {
				return stats, fmt.Errorf("%w: %v", ErrSourceChanged, err)
			}
			return stats, fmt.Errorf("archive: write payload: %w", err)
		}
	}
	if read != total {
		return stats, ErrSourceChanged
	}

	if err := bw.Close(); err != nil {
		return stats, fmt.Errorf("archive: flush payload: %w", err)
	}

	stats = Stats{
		Original:    total,
		Compressed:  headerSize + (bw.Bits()+7)/8,
		Symbols:     len(freq),
		TreeBits:    treeBits,
		PayloadBits: bw.Bits() - treeBits,
	}
	return stats, nil
}

// Decode reverses Encode. It writes exactly as many bytes as the header
// declares and fails instead of reading past the end of r.
func (arch *Archiver) Decode(r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats

	in := bufio.NewReaderSize(r, BUFFER_SIZE)
	var total uint32
	if err := binary.Read(in, binary.LittleEndian, &total); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}
	arch.logger.Debugf("decode: header declares %d bytes", total)

	stats.Original = uint64(total)
	stats.Compressed = headerSize
	if total == 0 {
		return stats, nil
	}

	br := bitstream.NewReader(in)
	tree, err := huffman.ReadTree(br)
	if err != nil {
		return stats, fmt.Errorf("archive: read tree: %w", err)
	}
	treeBits := br.Bits()

	out := bufio.NewWriterSize(w, BUFFER_SIZE)
	for i := uint32(0); i < total; i++ {
		s, err := tree.ReadSymbol(br)
		if err != nil {
			return stats, fmt.Errorf("archive: read symbol %d of %d: %w", i+1, total, err)
		}
		if err := out.WriteByte(s); err != nil {
			return stats, fmt.Errorf("archive: write output: %w", err)
		}
	}
	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("archive: write output: %w", err)
	}

	stats.Compressed = headerSize + (br.Bits()+7)/8
	stats.Symbols = tree.Leaves()
	stats.TreeBits = treeBits
	stats.PayloadBits = br.Bits() - treeBits
	return stats, nil
}

// Compress writes the compressed form of the file at inputPath to
// outputPath. The output file is created or truncated only after the input
// has been opened; on a later failure it is left partially written.
func (arch *Archiver) Compress(inputPath, outputPath string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrOpenInput, inputPath, err)
	}
	if info.Size() > math.MaxUint32 {
		return fmt.Errorf("%w: %q is %d bytes", ErrTooLarge, inputPath, info.Size())
	}

	out, err := openOutput(outputPath, info)
	if err != nil {
		return err
	}

	stats, err := arch.Encode(in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w %q: %w", ErrOpenOutput, outputPath, cerr)
	}
	if err != nil {
		return err
	}

	arch.logger.Infof("compressed %s -> %s: %d -> %d bytes (%.1f%%)",
		inputPath, outputPath, stats.Original, stats.Compressed, 100*stats.Ratio())
	return nil
}

// Decompress restores the file compressed at inputPath into outputPath.
func (arch *Archiver) Decompress(inputPath, outputPath string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrOpenInput, inputPath, err)
	}

	out, err := openOutput(outputPath, info)
	if err != nil {
		return err
	}

	stats, err := arch.Decode(in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w %q: %w", ErrOpenOutput, outputPath, cerr)
	}
	if err != nil {
		return err
	}

	arch.logger.Infof("decompressed %s -> %s: %d -> %d bytes",
		inputPath, outputPath, stats.Compressed, stats.Original)
	return nil
}

func openInput(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpenInput, path, err)
	}
	info, err := file.Stat()
	if err == nil && info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%w %q: is a directory", ErrOpenInput, path)
	}
	return file, nil
}

func openOutput(path string, input os.FileInfo) (*os.File, error) {
	if existing, err := os.Stat(path); err == nil && os.SameFile(existing, input) {
		return nil, fmt.Errorf("%w: %q", ErrSamePath, path)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpenOutput, path, err)
	}
	return file, nil
}
