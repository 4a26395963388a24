package ecb

import (
	"context"
	"io"

	"github.com/sahib/desfile/des"
)

// ctxReader stops reading once its context was cancelled.
// Cancellation is therefore noticed between two chunks.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr ctxReader) Read(buf []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(buf)
}

// EncryptStream is a utility function which encrypts the data from `source`
// with `key` and writes the encrypted data to `dest`. It returns the number
// of plaintext bytes that were read.
func EncryptStream(ctx context.Context, key des.Key, source io.Reader, dest io.Writer, opts Options) (int64, error) {
	layer := NewWriter(dest, key, opts)
	buf := make([]byte, opts.chunkBlocks()*des.BlockSize)

	n, err := io.CopyBuffer(layer, ctxReader{ctx: ctx, r: source}, buf)
	if err != nil {
		return n, err
	}

	return n, layer.Close()
}

// DecryptStream is a utility function which decrypts the data from `source`
// with `key` and writes the plaintext to `dest`. It returns the number of
// plaintext bytes that were written. On malformed input, the plaintext before
// the bad group is still written to `dest`.
func DecryptStream(ctx context.Context, key des.Key, source io.Reader, dest io.Writer, opts Options) (int64, error) {
	layer := NewReader(ctxReader{ctx: ctx, r: source}, key, opts)
	buf := make([]byte, opts.chunkBlocks()*des.BlockSize)
	return io.CopyBuffer(dest, layer, buf)
}
