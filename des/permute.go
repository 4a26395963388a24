package des

import "fmt"

// Permute builds a new vector of len(table) bits. Output bit i is taken from
// input position table[i], counted 1-based from the most significant bit.
// Entries may repeat (as in the expansion table) or leave input bits out (as
// in PC1 and PC2).
//
// A table entry outside of the input width is a programming error and panics.
func Permute(in BitVector, table []uint8) BitVector {
	if len(table) == 0 || len(table) > MaxWidth {
		panic(fmt.Sprintf("des: invalid permutation table length %d", len(table)))
	}

	var out uint64
	for _, pos := range table {
		if pos == 0 || uint(pos) > in.width {
			panic(fmt.Sprintf("des: table entry %d out of range for width %d", pos, in.width))
		}

		out = (out << 1) | ((in.bits >> (in.width - uint(pos))) & 1)
	}

	return BitVector{bits: out, width: uint(len(table))}
}
