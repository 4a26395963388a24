package ecb

import (
	"errors"
	"io"

	"github.com/sahib/desfile/des"
	"github.com/sahib/desfile/util"
	log "github.com/sirupsen/logrus"
)

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("write on closed ecb writer")

// Writer encrypts everything written to it and passes the encrypted blocks on
// to the underlying writer. Plaintext is collected until a whole chunk of
// blocks is available; Close() encrypts the rest (zero padded) and must be
// called to get complete output.
type Writer struct {
	// Underlying writer
	io.Writer

	proc *Processor

	// Plaintext that was not encrypted yet.
	// Its capacity is always a multiple of the block size.
	buf []byte

	// Number of plaintext bytes that were flushed so far.
	flushed int64

	closed bool
}

// NewWriter returns a new Writer that encrypts with `key`.
func NewWriter(w io.Writer, key des.Key, opts Options) *Writer {
	return newWriterWithProcessor(w, NewProcessor(key, opts))
}

func newWriterWithProcessor(w io.Writer, proc *Processor) *Writer {
	chunkSize := proc.opts.chunkBlocks() * des.BlockSize
	return &Writer{
		Writer: w,
		proc:   proc,
		buf:    make([]byte, 0, chunkSize),
	}
}

// Write buffers `p` and encrypts every chunk that got full.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}

	written := 0
	for len(p) > 0 {
		take := util.Min(cap(w.buf)-len(w.buf), len(p))
		w.buf = append(w.buf, p[:take]...)
		p = p[take:]
		written += take

		if len(w.buf) == cap(w.buf) {
			if err := w.flush(); err != nil {
				return written, err
			}
		}
	}

	return written, nil
}

func (w *Writer) flush() error {
	if len(w.buf) == 0 {
		return nil
	}

	encrypted := w.proc.Encrypt(w.buf)

	log.WithFields(log.Fields{
		"offset": w.flushed,
		"size":   len(w.buf),
		"format": w.proc.opts.Format,
	}).Debug("encrypted chunk")

	n, err := w.Writer.Write(encrypted)
	if err != nil {
		return err
	}

	if n != len(encrypted) {
		return io.ErrShortWrite
	}

	w.flushed += int64(len(w.buf))
	w.buf = w.buf[:0]
	return nil
}

// Close encrypts the remaining plaintext. It does not close the underlying
// writer. Calling Close twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true
	return w.flush()
}
