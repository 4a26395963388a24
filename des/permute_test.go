package des

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requirePermutationOf(t *testing.T, table []uint8, n int) {
	require.Len(t, table, n)

	seen := make(map[uint8]bool)
	for _, pos := range table {
		require.True(t, pos >= 1 && int(pos) <= n, "entry %d out of 1..%d", pos, n)
		require.False(t, seen[pos], "entry %d occurs twice", pos)
		seen[pos] = true
	}
}

func requireEntriesIn(t *testing.T, table []uint8, length, max int) {
	require.Len(t, table, length)
	for _, pos := range table {
		require.True(t, pos >= 1 && int(pos) <= max, "entry %d out of 1..%d", pos, max)
	}
}

func TestTableShapes(t *testing.T) {
	requirePermutationOf(t, initialPermutation[:], 64)
	requirePermutationOf(t, finalPermutation[:], 64)
	requirePermutationOf(t, roundPermutation[:], 32)
	requireEntriesIn(t, expansionTable[:], 48, 32)
	requireEntriesIn(t, permutedChoice1[:], 56, 64)
	requireEntriesIn(t, permutedChoice2[:], 48, 56)
	require.Len(t, shiftSchedule, 16)

	// The two key halves need to end up where they started after 16 rounds.
	total := 0
	for _, shift := range shiftSchedule {
		total += int(shift)
	}
	require.Equal(t, 28, total)

	for _, box := range sBoxes {
		for _, row := range box {
			for _, val := range row {
				require.True(t, val <= 15)
			}
		}
	}
}

func TestFinalIsInverseOfInitial(t *testing.T) {
	for pos := uint(0); pos < 64; pos++ {
		in := NewBitVector(64, 0).SetBit(pos, true)
		out := Permute(Permute(in, initialPermutation[:]), finalPermutation[:])
		require.Equal(t, in, out)
	}
}

func TestPermuteKnownValue(t *testing.T) {
	// IP of the classic plaintext 0123456789ABCDEF.
	in := NewBitVector(64, 0x0123456789ABCDEF)
	out := Permute(in, initialPermutation[:])
	require.Equal(t, NewBitVector(64, 0xCC00CCFFF0AAF0AA), out)
}

func TestPermuteChangesWidth(t *testing.T) {
	in := NewBitVector(4, 0x9) // 1001
	out := Permute(in, []uint8{1, 1, 4, 2, 3, 4})
	require.Equal(t, "111001", out.String())
	require.Equal(t, uint(6), out.Width())
}

func TestPermuteBadTable(t *testing.T) {
	in := NewBitVector(4, 0x9)
	require.Panics(t, func() { Permute(in, []uint8{5}) })
	require.Panics(t, func() { Permute(in, []uint8{0}) })
	require.Panics(t, func() { Permute(in, nil) })
}
