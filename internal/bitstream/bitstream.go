// Package bitstream moves single bits over byte oriented storage.
//
// Bits are packed most significant first. The package never looks at what
// the bits mean.
package bitstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// ErrUnexpectedEOF is returned when a read needs more bits than the source holds.
var ErrUnexpectedEOF = fmt.Errorf("bitstream: read past end of stream: %w", io.ErrUnexpectedEOF)

type Writer struct {
	buf  *bufio.Writer
	bw   *bitio.Writer
	bits uint64
}

// NewWriter returns a Writer that emits whole bytes to w. Partial bytes stay
// buffered until Flush or Close.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	return &Writer{
		buf: buf,
		bw:  bitio.NewWriter(buf),
	}
}

// WriteBit writes one bit. Any nonzero value is written as 1.
func (w *Writer) WriteBit(bit byte) error {
	if err := w.bw.WriteBool(bit != 0); err != nil {
		return err
	}
	w.bits++
	return nil
}

// WriteByte writes the 8 bits of b, most significant first.
func (w *Writer) WriteByte(b byte) error {
	if err := w.bw.WriteByte(b); err != nil {
		return err
	}
	w.bits += 8
	return nil
}

// Flush pads a partial trailing byte with zero bits and pushes everything
// buffered to the underlying writer.
func (w *Writer) Flush() error {
	if _, err := w.bw.Align(); err != nil {
		return err
	}
	return w.buf.Flush()
}

// Close flushes the writer. The underlying writer is left open.
func (w *Writer) Close() error {
	return w.Flush()
}

// Bits reports how many bits were written, padding excluded.
func (w *Writer) Bits() uint64 { return w.bits }

type Reader struct {
	br   *bitio.Reader
	bits uint64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bitio.NewReader(r)}
}

// ReadBit returns the next bit as 0 or 1.
func (r *Reader) ReadBit() (byte, error) {
	b, err := r.br.ReadBool()
	if err != nil {
		return 0, wrapEOF(err)
	}
	r.bits++
	if b {
		return 1, nil
	}
	return 0, nil
}

// ReadByte assembles the next 8 bits, most significant first.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, wrapEOF(err)
	}
	r.bits += 8
	return b, nil
}

// Bits reports how many bits were consumed.
func (r *Reader) Bits() uint64 { return r.bits }

func wrapEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}
	return err
}
