package des

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxWidth is the largest width a BitVector can have.
const MaxWidth = 64

// BitVector is a fixed-width sequence of up to 64 bits. The bits are kept
// right-aligned in an uint64; bits above the width are always zero, so two
// vectors can be compared with ==.
//
// Index 0 refers to the most significant (leftmost) bit.
type BitVector struct {
	bits  uint64
	width uint
}

func widthMask(width uint) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}

	return (uint64(1) << width) - 1
}

func checkWidth(width uint) {
	if width == 0 || width > MaxWidth {
		panic(fmt.Sprintf("des: invalid bit vector width %d", width))
	}
}

// NewBitVector returns a vector of `width` bits holding the lowest `width`
// bits of `value`.
func NewBitVector(width uint, value uint64) BitVector {
	checkWidth(width)
	return BitVector{bits: value & widthMask(width), width: width}
}

// ParseBitVector parses a string of '0' and '1' characters into a vector of
// `width` bits. Shorter strings are zero-extended on the left, longer strings
// lose their leftmost (most significant) characters. Any other character
// yields a *FormatError.
func ParseBitVector(s string, width uint) (BitVector, error) {
	checkWidth(width)

	for idx := 0; idx < len(s); idx++ {
		if c := s[idx]; c != '0' && c != '1' {
			return BitVector{}, &FormatError{
				What:   "bit string",
				Offset: int64(idx),
				Reason: fmt.Sprintf("unexpected character %q", c),
			}
		}
	}

	if uint(len(s)) > width {
		s = s[uint(len(s))-width:]
	}

	var bits uint64
	for idx := 0; idx < len(s); idx++ {
		bits = (bits << 1) | uint64(s[idx]-'0')
	}

	return BitVector{bits: bits, width: width}, nil
}

// Width returns the number of bits in the vector.
func (v BitVector) Width() uint {
	return v.width
}

// Uint64 returns the bits right-aligned in an integer.
func (v BitVector) Uint64() uint64 {
	return v.bits
}

func (v BitVector) checkIndex(idx uint) {
	if idx >= v.width {
		panic(fmt.Sprintf("des: bit index %d out of range for width %d", idx, v.width))
	}
}

// Bit returns the bit at `idx`, where 0 is the most significant bit.
func (v BitVector) Bit(idx uint) bool {
	v.checkIndex(idx)
	return (v.bits>>(v.width-1-idx))&1 == 1
}

// SetBit returns a copy of `v` with the bit at `idx` set to `on`.
func (v BitVector) SetBit(idx uint, on bool) BitVector {
	v.checkIndex(idx)

	mask := uint64(1) << (v.width - 1 - idx)
	if on {
		v.bits |= mask
	} else {
		v.bits &^= mask
	}

	return v
}

// Xor combines two vectors of equal width.
func (v BitVector) Xor(o BitVector) BitVector {
	if v.width != o.width {
		panic(fmt.Sprintf("des: xor of width %d and %d", v.width, o.width))
	}

	return BitVector{bits: v.bits ^ o.bits, width: v.width}
}

// ShiftLeft moves all bits `n` places to the left, dropping what falls off.
func (v BitVector) ShiftLeft(n uint) BitVector {
	if n >= v.width {
		return BitVector{width: v.width}
	}

	return BitVector{bits: (v.bits << n) & widthMask(v.width), width: v.width}
}

// ShiftRight moves all bits `n` places to the right, dropping what falls off.
func (v BitVector) ShiftRight(n uint) BitVector {
	if n >= v.width {
		return BitVector{width: v.width}
	}

	return BitVector{bits: v.bits >> n, width: v.width}
}

// RotateLeft rotates circularly by `n` modulo the width.
func (v BitVector) RotateLeft(n uint) BitVector {
	n %= v.width
	if n == 0 {
		return v
	}

	bits := (v.bits << n) | (v.bits >> (v.width - n))
	return BitVector{bits: bits & widthMask(v.width), width: v.width}
}

// RotateRight rotates circularly by `n` modulo the width.
func (v BitVector) RotateRight(n uint) BitVector {
	n %= v.width
	if n == 0 {
		return v
	}

	return v.RotateLeft(v.width - n)
}

// Split cuts a vector of even width into its left and right half.
func (v BitVector) Split() (BitVector, BitVector) {
	if v.width%2 != 0 {
		panic(fmt.Sprintf("des: cannot split odd width %d", v.width))
	}

	half := v.width / 2
	left := BitVector{bits: v.bits >> half, width: half}
	right := BitVector{bits: v.bits & widthMask(half), width: half}
	return left, right
}

// Concat returns `v` followed by `o`; `o` ends up in the low bits.
func (v BitVector) Concat(o BitVector) BitVector {
	width := v.width + o.width
	checkWidth(width)

	return BitVector{bits: (v.bits << o.width) | o.bits, width: width}
}

// Equal is the same as ==, but reads better in some places.
func (v BitVector) Equal(o BitVector) bool {
	return v == o
}

// AppendString appends the '0'/'1' form of `v` to `dst`.
func (v BitVector) AppendString(dst []byte) []byte {
	for idx := uint(0); idx < v.width; idx++ {
		dst = append(dst, '0'+byte((v.bits>>(v.width-1-idx))&1))
	}

	return dst
}

// String returns exactly Width() characters of '0' and '1'.
func (v BitVector) String() string {
	if v.width == 0 {
		return ""
	}

	s := strconv.FormatUint(v.bits, 2)
	if pad := int(v.width) - len(s); pad > 0 {
		return strings.Repeat("0", pad) + s
	}

	return s
}
