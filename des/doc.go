// Package des implements the 64-bit Feistel block cipher known as DES from
// scratch. It is layered like this:
//
// - BitVector   - fixed-width bit container (1..64 bits) with value semantics.
// - Permute     - reorders bits after a static, 1-based index table.
// - KeySchedule - the 16 round subkeys derived from a 64-bit key.
// - RoundFunction - the Feistel F step (expansion, S-boxes, permutation).
// - Cipher      - one 64-bit block through IP, 16 rounds, swap and FP.
//
// Bit index 0 of a BitVector is its most significant bit. This is the same
// order as the '0'/'1' string form and as the tables, where position 1 is the
// leftmost bit.
//
// Cipher satisfies crypto/cipher.Block, so it can be used with any block mode
// of the standard library. Mode handling of this project lives in the ecb
// package.
package des
