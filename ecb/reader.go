package ecb

import (
	"bytes"
	"io"

	"github.com/sahib/desfile/des"
	log "github.com/sirupsen/logrus"
)

// Reader decrypts an encrypted stream from the underlying reader.
type Reader struct {
	// Underlying reader
	io.Reader

	proc *Processor

	// Buffer for encrypted data (one chunk of groups)
	encBuf []byte

	// Caches leftovers from decrypted chunks that were not read yet.
	backlog *bytes.Reader

	// Offset of the next unread byte in the underlying stream.
	encOffset int64

	// Sticky error; io.EOF once the underlying stream is exhausted.
	err error
}

// NewReader returns a Reader that decrypts with `key`.
func NewReader(r io.Reader, key des.Key, opts Options) *Reader {
	return newReaderWithProcessor(r, NewProcessor(key, opts))
}

func newReaderWithProcessor(r io.Reader, proc *Processor) *Reader {
	chunkSize := proc.opts.chunkBlocks() * proc.opts.Format.GroupSize()
	return &Reader{
		Reader:  r,
		proc:    proc,
		encBuf:  make([]byte, chunkSize),
		backlog: bytes.NewReader(nil),
	}
}

// Read decrypts from the source into `dest`.
//
// A whole chunk is decrypted at once; what does not fit into `dest` is kept
// for the next call. A *des.FormatError is returned after all plaintext
// before the malformed group was read. Its offset is relative to the start of
// the encrypted stream.
func (r *Reader) Read(dest []byte) (int, error) {
	readBytes := 0

	for readBytes < len(dest) {
		if r.backlog.Len() == 0 {
			if r.err != nil {
				break
			}

			r.readChunk()
			continue
		}

		n, _ := r.backlog.Read(dest[readBytes:])
		readBytes += n
	}

	if readBytes == 0 && len(dest) > 0 {
		return 0, r.err
	}

	return readBytes, nil
}

// readChunk fills the backlog with the next decrypted chunk
// and sets r.err once nothing more can be read.
func (r *Reader) readChunk() {
	n, err := io.ReadFull(r.Reader, r.encBuf)
	if n > 0 {
		decrypted, decErr := r.proc.Decrypt(r.encBuf[:n])
		r.backlog = bytes.NewReader(decrypted)

		log.WithFields(log.Fields{
			"offset":    r.encOffset,
			"size":      n,
			"decrypted": len(decrypted),
		}).Debug("decrypted chunk")

		if decErr != nil {
			if fe, ok := decErr.(*des.FormatError); ok {
				fe.Offset += r.encOffset
			}

			r.err = decErr
			return
		}

		r.encOffset += int64(n)
	}

	switch err {
	case nil:
		return
	case io.EOF, io.ErrUnexpectedEOF:
		r.err = io.EOF
	default:
		r.err = err
	}
}
