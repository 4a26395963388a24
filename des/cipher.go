package des

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"
)

const (
	// BlockSize is the DES block size in bytes.
	BlockSize = 8

	// BlockBits is the DES block size in bits.
	BlockBits = 64
)

// Direction tells the cipher in which order to walk the key schedule.
type Direction int

const (
	// Encrypt uses subkeys 0..15.
	Encrypt = Direction(iota)

	// Decrypt uses subkeys 15..0.
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Cipher is a DES instance bound to one key. The key schedule is derived once
// in NewCipher and only read afterwards, so a Cipher may be shared by many
// go routines.
type Cipher struct {
	schedule *KeySchedule
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher derives the key schedule for `key`.
func NewCipher(key Key) *Cipher {
	return &Cipher{schedule: DeriveKeySchedule(key)}
}

// Schedule returns a copy of the round subkeys.
func (c *Cipher) Schedule() KeySchedule {
	return *c.schedule
}

// ProcessBlock runs one 64 bit block through the cipher:
//
// 1. Initial permutation, split into left and right half.
// 2. 16 rounds of: left, right = right, left ^ F(right, subkey).
// 3. Swap the halves (right || left).
// 4. Final permutation.
//
// Both directions share these steps; only the subkey order differs.
func (c *Cipher) ProcessBlock(block BitVector, dir Direction) BitVector {
	if block.width != BlockBits {
		panic(fmt.Sprintf("des: block needs %d bits, got %d", BlockBits, block.width))
	}

	left, right := Permute(block, initialPermutation[:]).Split()

	for round := 0; round < Rounds; round++ {
		subkey := c.schedule.Subkey(round, dir)
		left, right = right, left.Xor(RoundFunction(right, subkey))
	}

	return Permute(right.Concat(left), finalPermutation[:])
}

// EncryptBlock encrypts a single block given as big endian integer.
func (c *Cipher) EncryptBlock(block uint64) uint64 {
	return c.ProcessBlock(BitVector{bits: block, width: BlockBits}, Encrypt).bits
}

// DecryptBlock decrypts a single block given as big endian integer.
func (c *Cipher) DecryptBlock(block uint64) uint64 {
	return c.ProcessBlock(BitVector{bits: block, width: BlockBits}, Decrypt).bits
}

// BlockSize is part of cipher.Block.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first block of src into dst.
// dst and src may overlap entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	checkBlockBuffers(dst, src)
	binary.BigEndian.PutUint64(dst, c.EncryptBlock(binary.BigEndian.Uint64(src)))
}

// Decrypt decrypts the first block of src into dst.
// dst and src may overlap entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	checkBlockBuffers(dst, src)
	binary.BigEndian.PutUint64(dst, c.DecryptBlock(binary.BigEndian.Uint64(src)))
}

func checkBlockBuffers(dst, src []byte) {
	if len(src) < BlockSize {
		panic("des: input not full block")
	}

	if len(dst) < BlockSize {
		panic("des: output not full block")
	}
}
