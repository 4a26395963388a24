package des

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

const (
	// KeySize is the size of a key in bytes (including parity bits).
	KeySize = 8

	// KeyBits is the width of the textual key representation.
	KeyBits = 64

	// Rounds is the number of Feistel rounds and round subkeys.
	Rounds = 16

	// SubkeyBits is the width of a single round subkey.
	SubkeyBits = 48
)

// Key is a 64-bit DES key. Every eighth bit is a parity bit that the key
// schedule ignores.
type Key struct {
	v BitVector
}

// ParseKey parses the textual '0'/'1' representation of a key. The rules of
// ParseBitVector apply: short strings are zero-extended on the left and long
// strings lose their leftmost characters.
func ParseKey(s string) (Key, error) {
	v, err := ParseBitVector(s, KeyBits)
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.What = "key"
		}

		return Key{}, err
	}

	return Key{v: v}, nil
}

// KeyFromUint64 interprets `k` as a big endian key.
func KeyFromUint64(k uint64) Key {
	return Key{v: NewBitVector(KeyBits, k)}
}

// KeyFromBytes reads a key from exactly KeySize bytes.
func KeyFromBytes(b []byte) (Key, error) {
	if len(b) != KeySize {
		return Key{}, fmt.Errorf("des: key needs %d bytes, got %d", KeySize, len(b))
	}

	return KeyFromUint64(binary.BigEndian.Uint64(b)), nil
}

// Bits returns the key as bit vector.
func (k Key) Bits() BitVector {
	return k.v
}

// Uint64 returns the key as integer.
func (k Key) Uint64() uint64 {
	return k.v.bits
}

// Bytes returns the key in big endian byte order.
func (k Key) Bytes() []byte {
	buf := make([]byte, KeySize)
	binary.BigEndian.PutUint64(buf, k.v.bits)
	return buf
}

func (k Key) String() string {
	if k.v.width == 0 {
		return NewBitVector(KeyBits, 0).String()
	}

	return k.v.String()
}

// HasOddParity tells if every byte of the key has an odd number of set bits.
// The cipher works with any key; this is purely informational.
func (k Key) HasOddParity() bool {
	for _, b := range k.Bytes() {
		if bits.OnesCount8(b)%2 == 0 {
			return false
		}
	}

	return true
}

// WithOddParity returns a copy of the key where the lowest bit of every byte
// is adjusted so that the byte has odd parity. The 56 effective key bits stay
// untouched, so the key schedule of both keys is the same.
func (k Key) WithOddParity() Key {
	buf := k.Bytes()
	for idx, b := range buf {
		if bits.OnesCount8(b&0xFE)%2 == 0 {
			buf[idx] = b | 1
		} else {
			buf[idx] = b &^ 1
		}
	}

	return KeyFromUint64(binary.BigEndian.Uint64(buf))
}

// KeySchedule holds the 16 round subkeys of one key, in encryption order.
// It is computed once per key and only read afterwards.
type KeySchedule [Rounds]BitVector

// DeriveKeySchedule runs PC1 over the key, then rotates both 28-bit halves
// per round and compresses them with PC2 into 48-bit subkeys.
func DeriveKeySchedule(key Key) *KeySchedule {
	kv := key.v
	if kv.width == 0 {
		kv = NewBitVector(KeyBits, 0)
	}

	c, d := Permute(kv, permutedChoice1[:]).Split()

	schedule := &KeySchedule{}
	for round := 0; round < Rounds; round++ {
		shift := uint(shiftSchedule[round])
		c = c.RotateLeft(shift)
		d = d.RotateLeft(shift)
		schedule[round] = Permute(c.Concat(d), permutedChoice2[:])
	}

	return schedule
}

// Subkey returns the subkey used in `round` (0-based) when going into
// direction `dir`. Decryption walks the schedule backwards.
func (ks *KeySchedule) Subkey(round int, dir Direction) BitVector {
	if dir == Decrypt {
		return ks[Rounds-1-round]
	}

	return ks[round]
}
