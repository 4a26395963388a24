package ecb

import (
	"encoding/binary"
	"sync"

	"github.com/sahib/desfile/des"
	"github.com/sahib/desfile/util"
)

// Processor encrypts and decrypts whole buffers with one key.
// It holds no state besides the cipher, so it is safe for concurrent use.
type Processor struct {
	cipher *des.Cipher
	opts   Options
}

// NewProcessor derives the key schedule for `key` once.
func NewProcessor(key des.Key, opts Options) *Processor {
	return &Processor{
		cipher: des.NewCipher(key),
		opts:   opts,
	}
}

// Options returns the options the processor was created with.
func (p *Processor) Options() Options {
	return p.opts
}

// EncryptedSize returns the size of the encrypted form of `plainSize` bytes.
func (p *Processor) EncryptedSize(plainSize int) int {
	blocks := (plainSize + des.BlockSize - 1) / des.BlockSize
	return blocks * p.opts.Format.GroupSize()
}

// Encrypt splits `plaintext` into 8 byte blocks (zero padding the last one),
// encrypts each block and returns the serialized blocks in input order.
func (p *Processor) Encrypt(plaintext []byte) []byte {
	groupSize := p.opts.Format.GroupSize()
	numBlocks := (len(plaintext) + des.BlockSize - 1) / des.BlockSize
	out := make([]byte, numBlocks*groupSize)

	p.forEachBlock(numBlocks, func(idx int) error {
		var buf [des.BlockSize]byte
		lo := idx * des.BlockSize
		copy(buf[:], plaintext[lo:util.Min(lo+des.BlockSize, len(plaintext))])

		block := p.cipher.EncryptBlock(binary.BigEndian.Uint64(buf[:]))
		p.opts.Format.encodeGroup(out[idx*groupSize:(idx+1)*groupSize], block)
		return nil
	})

	return out
}

// Decrypt parses `data` group by group, decrypts every block and returns the
// plaintext with all zero bytes removed.
//
// If a group is malformed (bad characters or a truncated last group) a
// *des.FormatError is returned together with the plaintext of all groups
// before the bad one.
func (p *Processor) Decrypt(data []byte) ([]byte, error) {
	groupSize := p.opts.Format.GroupSize()
	numBlocks := (len(data) + groupSize - 1) / groupSize
	plain := make([]byte, numBlocks*des.BlockSize)

	done, err := p.forEachBlock(numBlocks, func(idx int) error {
		lo := idx * groupSize
		hi := util.Min(lo+groupSize, len(data))

		block, err := p.opts.Format.decodeGroup(data[lo:hi], int64(lo))
		if err != nil {
			return err
		}

		binary.BigEndian.PutUint64(
			plain[idx*des.BlockSize:(idx+1)*des.BlockSize],
			p.cipher.DecryptBlock(block),
		)
		return nil
	})

	return dropZeroBytes(plain[:done*des.BlockSize]), err
}

// dropZeroBytes removes all zero bytes in place.
func dropZeroBytes(data []byte) []byte {
	out := data[:0]
	for _, b := range data {
		if b != 0 {
			out = append(out, b)
		}
	}

	return out
}

// forEachBlock calls `fn` for every block index in [0, n). It returns the
// number of leading blocks that were processed without error and the error
// of the first failing block, if any.
//
// With more than one worker the indices are split into contiguous spans, one
// per go routine. Every result is written to its own slot by `fn`, so the
// output order does not depend on scheduling.
func (p *Processor) forEachBlock(n int, fn func(idx int) error) (int, error) {
	workers := util.Min(p.opts.Workers, n)
	if workers <= 1 {
		for idx := 0; idx < n; idx++ {
			if err := fn(idx); err != nil {
				return idx, err
			}
		}

		return n, nil
	}

	errs := make([]error, n)
	span := (n + workers - 1) / workers

	wg := &sync.WaitGroup{}
	for lo := 0; lo < n; lo += span {
		wg.Add(1)

		go func(lo, hi int) {
			defer wg.Done()

			for idx := lo; idx < hi; idx++ {
				if err := fn(idx); err != nil {
					errs[idx] = err
					return
				}
			}
		}(lo, util.Min(lo+span, n))
	}

	wg.Wait()

	// Every span stopped at its own first error,
	// so the first error overall is the lowest recorded one.
	for idx, err := range errs {
		if err != nil {
			return idx, err
		}
	}

	return n, nil
}

// Encrypt is a utility function that encrypts `plaintext` with `key`
// in the default text format, block after block.
func Encrypt(plaintext []byte, key des.Key) []byte {
	return NewProcessor(key, Options{}).Encrypt(plaintext)
}

// Decrypt is a utility function that decrypts text formatted `ciphertext`
// with `key`, block after block. See Processor.Decrypt for error handling.
func Decrypt(ciphertext []byte, key des.Key) ([]byte, error) {
	return NewProcessor(key, Options{}).Decrypt(ciphertext)
}
