// Package ecb runs the des package in Electronic Codebook mode over byte
// streams of any length. The output looks like this:
//
// [BLOCK][BLOCK]...
//
// Every BLOCK is one encrypted 8 byte group of the input. The last group is
// padded with zero bytes if the input length is not a multiple of 8. There is
// no header and no delimiter; how a BLOCK is written depends on the Format:
//
//    - FormatText:   64 ASCII characters of '0' and '1', most significant bit first.
//    - FormatBinary: 8 raw bytes in big endian order.
//
// FormatText is the default since it is what existing artifacts use.
//
// On decryption every decrypted byte that is zero is dropped. This strips the
// padding again, but also means that NUL bytes in the plaintext do not
// survive a round trip.
//
// Processor does the work on in-memory buffers, optionally spread over several
// go routines. Writer and Reader wrap it for io.Writer/io.Reader streams.
package ecb

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/sahib/desfile/des"
)

// Format defines how a single encrypted block is serialized.
type Format int

const (
	// FormatText writes each block as 64 '0'/'1' characters.
	FormatText = Format(iota)

	// FormatBinary writes each block as 8 raw bytes.
	FormatBinary
)

const (
	textGroupSize   = des.BlockBits
	binaryGroupSize = des.BlockSize

	// DefaultChunkBlocks is the number of blocks Writer and Reader
	// process at once if nothing else was configured.
	DefaultChunkBlocks = 4096
)

var formatNames = map[Format]string{
	FormatText:   "text",
	FormatBinary: "binary",
}

// ParseFormat converts a format name ("text" or "binary") to a Format.
func ParseFormat(name string) (Format, error) {
	for format, formatName := range formatNames {
		if formatName == strings.ToLower(name) {
			return format, nil
		}
	}

	return 0, fmt.Errorf("no such format: %s", name)
}

// FormatNames returns the names accepted by ParseFormat.
func FormatNames() []string {
	return []string{formatNames[FormatText], formatNames[FormatBinary]}
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}

	return fmt.Sprintf("format(%d)", int(f))
}

// GroupSize returns the number of bytes one block occupies in the encrypted
// stream.
func (f Format) GroupSize() int {
	if f == FormatBinary {
		return binaryGroupSize
	}

	return textGroupSize
}

// Options control how a Processor, Writer or Reader works.
type Options struct {
	// Format of the encrypted data.
	Format Format

	// Workers is the number of go routines that process blocks in parallel.
	// Values <= 1 process all blocks in order on the calling go routine.
	Workers int

	// ChunkBlocks is the number of blocks Writer and Reader buffer before
	// handing them to the Processor. Zero means DefaultChunkBlocks.
	ChunkBlocks int
}

func (o Options) chunkBlocks() int {
	if o.ChunkBlocks <= 0 {
		return DefaultChunkBlocks
	}

	return o.ChunkBlocks
}

// encodeGroup writes the encrypted `block` to `dst`,
// which must be exactly GroupSize() bytes long.
func (f Format) encodeGroup(dst []byte, block uint64) {
	if f == FormatBinary {
		binary.BigEndian.PutUint64(dst, block)
		return
	}

	// dst has room for all 64 characters, so this fills it in place:
	des.NewBitVector(des.BlockBits, block).AppendString(dst[:0])
}

// decodeGroup parses one full group. `offset` is only used for error reports.
func (f Format) decodeGroup(src []byte, offset int64) (uint64, error) {
	if len(src) != f.GroupSize() {
		return 0, &des.FormatError{
			What:   "ciphertext",
			Offset: offset,
			Reason: fmt.Sprintf(
				"truncated block: have %d of %d bytes",
				len(src), f.GroupSize(),
			),
		}
	}

	if f == FormatBinary {
		return binary.BigEndian.Uint64(src), nil
	}

	v, err := des.ParseBitVector(string(src), des.BlockBits)
	if err != nil {
		if fe, ok := err.(*des.FormatError); ok {
			fe.What = "ciphertext"
			fe.Offset += offset
		}

		return 0, err
	}

	return v.Uint64(), nil
}
