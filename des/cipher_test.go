package des

import (
	stddes "crypto/des"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var knownVectors = []struct {
	key, plain, cipher uint64
}{
	{0x133457799BBCDFF1, 0x0123456789ABCDEF, 0x85E813540F0AB405},
	{0x0E329232EA6D0D73, 0x8787878787878787, 0x0000000000000000},
	{0x0000000000000000, 0x0000000000000000, 0x8CA64DE9C1B123A7},
	{0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0x7359B2163E4EDC58},
}

func TestStandardVector(t *testing.T) {
	key, err := ParseKey(testKeyBits)
	require.Nil(t, err)

	c := NewCipher(key)
	block := NewBitVector(BlockBits, 0x0123456789ABCDEF)
	out := c.ProcessBlock(block, Encrypt)
	require.Equal(t, uint64(0x85E813540F0AB405), out.Uint64())
	require.Equal(t, block, c.ProcessBlock(out, Decrypt))
}

func TestKnownVectors(t *testing.T) {
	for _, vec := range knownVectors {
		c := NewCipher(KeyFromUint64(vec.key))
		require.Equal(t, vec.cipher, c.EncryptBlock(vec.plain), "key %016X", vec.key)
		require.Equal(t, vec.plain, c.DecryptBlock(vec.cipher), "key %016X", vec.key)
	}
}

func TestRoundFunctionFirstRound(t *testing.T) {
	ks := DeriveKeySchedule(KeyFromUint64(0x133457799BBCDFF1))
	right := NewBitVector(HalfBits, 0xF0AAF0AA)

	out := RoundFunction(right, ks[0])
	require.Equal(t, NewBitVector(HalfBits, 0x234AA9BB), out)

	require.Panics(t, func() { RoundFunction(NewBitVector(31, 0), ks[0]) })
	require.Panics(t, func() { RoundFunction(right, NewBitVector(47, 0)) })
}

func TestDirectionalSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for idx := 0; idx < 200; idx++ {
		c := NewCipher(KeyFromUint64(rng.Uint64()))
		block := NewBitVector(BlockBits, rng.Uint64())
		encrypted := c.ProcessBlock(block, Encrypt)
		require.Equal(t, block, c.ProcessBlock(encrypted, Decrypt))
	}
}

func TestAgreesWithStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	src := make([]byte, BlockSize)
	ours := make([]byte, BlockSize)
	theirs := make([]byte, BlockSize)

	for idx := 0; idx < 200; idx++ {
		key := KeyFromUint64(rng.Uint64())
		binary.BigEndian.PutUint64(src, rng.Uint64())

		ref, err := stddes.NewCipher(key.Bytes())
		require.Nil(t, err)

		c := NewCipher(key)
		c.Encrypt(ours, src)
		ref.Encrypt(theirs, src)
		require.Equal(t, theirs, ours)

		c.Decrypt(ours, theirs)
		require.Equal(t, src, ours)
	}
}

func TestBlockInterface(t *testing.T) {
	c := NewCipher(KeyFromUint64(0x133457799BBCDFF1))
	require.Equal(t, 8, c.BlockSize())

	// In-place operation must work:
	buf := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	c.Encrypt(buf, buf)
	require.Equal(t, []byte{0x85, 0xE8, 0x13, 0x54, 0x0F, 0x0A, 0xB4, 0x05}, buf)
	c.Decrypt(buf, buf)
	require.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}, buf)

	require.Panics(t, func() { c.Encrypt(buf, buf[:7]) })
	require.Panics(t, func() { c.Decrypt(buf[:3], buf) })
}

func TestScheduleIsCopied(t *testing.T) {
	c := NewCipher(KeyFromUint64(0x133457799BBCDFF1))
	ks := c.Schedule()
	ks[0] = NewBitVector(SubkeyBits, 0)

	require.Equal(t, uint64(0x85E813540F0AB405), c.EncryptBlock(0x0123456789ABCDEF))
}

func TestDirectionString(t *testing.T) {
	require.Equal(t, "encrypt", Encrypt.String())
	require.Equal(t, "decrypt", Decrypt.String())
	require.Equal(t, "direction(7)", Direction(7).String())
}

func BenchmarkEncryptBlock(b *testing.B) {
	c := NewCipher(KeyFromUint64(0x133457799BBCDFF1))
	block := uint64(0x0123456789ABCDEF)
	for n := 0; n < b.N; n++ {
		block = c.EncryptBlock(block)
	}
}
