package des

import "fmt"

const (
	// HalfBits is the width of one Feistel half block.
	HalfBits = 32

	sBoxCount = 8
	groupBits = 6
)

// RoundFunction is the Feistel F step. It expands the 32 bit `half` to 48
// bits, mixes in the 48 bit `subkey`, feeds each 6 bit group through its
// S-box and permutes the 32 bit result with P.
//
// Within a group, the two outer bits select the S-box row and the four inner
// bits select the column.
func RoundFunction(half, subkey BitVector) BitVector {
	if half.width != HalfBits || subkey.width != SubkeyBits {
		panic(fmt.Sprintf(
			"des: round function needs %d/%d bits, got %d/%d",
			HalfBits, SubkeyBits, half.width, subkey.width,
		))
	}

	mixed := Permute(half, expansionTable[:]).Xor(subkey)

	var substituted uint64
	for box := uint(0); box < sBoxCount; box++ {
		shift := SubkeyBits - groupBits*(box+1)
		group := (mixed.bits >> shift) & 0x3F

		row := ((group >> 4) & 0x2) | (group & 0x1)
		col := (group >> 1) & 0xF
		substituted = (substituted << 4) | uint64(sBoxes[box][row][col])
	}

	return Permute(BitVector{bits: substituted, width: HalfBits}, roundPermutation[:])
}
