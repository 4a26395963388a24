package ecb

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sahib/desfile/des"
	"github.com/sahib/desfile/util"
	"github.com/sahib/desfile/util/testutil"
	"github.com/stretchr/testify/require"
)

var TestKey = des.KeyFromUint64(0x133457799BBCDFF1)

var SizeTests = []int64{
	0,
	1,
	7,
	8,
	9,
	15,
	16,
	17,
	8*DefaultChunkBlocks - 1,
	8 * DefaultChunkBlocks,
	8*DefaultChunkBlocks + 1,
	3*8*DefaultChunkBlocks + 5,
}

func allOptions() []Options {
	opts := []Options{}
	for _, format := range []Format{FormatText, FormatBinary} {
		for _, workers := range []int{0, 1, 3, 8} {
			opts = append(opts, Options{Format: format, Workers: workers})
		}
	}

	return opts
}

func TestKnownBlockText(t *testing.T) {
	plain := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	encrypted := Encrypt(plain, TestKey)
	require.Equal(t, des.NewBitVector(64, 0x85E813540F0AB405).String(), string(encrypted))

	decrypted, err := Decrypt(encrypted, TestKey)
	require.Nil(t, err)
	require.Equal(t, plain, decrypted)
}

func TestKnownBlockBinary(t *testing.T) {
	proc := NewProcessor(TestKey, Options{Format: FormatBinary})
	plain := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	encrypted := proc.Encrypt(plain)
	require.Equal(t, []byte{0x85, 0xE8, 0x13, 0x54, 0x0F, 0x0A, 0xB4, 0x05}, encrypted)
}

func TestRoundTrip(t *testing.T) {
	for _, opts := range allOptions() {
		proc := NewProcessor(TestKey, opts)

		for _, size := range SizeTests {
			plain := testutil.CreateNonZeroBuf(size)
			encrypted := proc.Encrypt(plain)
			require.Equal(t, proc.EncryptedSize(int(size)), len(encrypted))

			decrypted, err := proc.Decrypt(encrypted)
			require.Nil(t, err)

			if !bytes.Equal(plain, decrypted) {
				t.Fatalf(
					"round trip failed (size=%d, opts=%+v):\n\tEXPECTED: %v\n\tGOT:      %v",
					size, opts,
					util.OmitBytes(plain, 10),
					util.OmitBytes(decrypted, 10),
				)
			}
		}
	}
}

func TestTextOutputIsBinaryDigits(t *testing.T) {
	encrypted := Encrypt([]byte("hello world"), TestKey)
	require.Len(t, encrypted, 2*64)
	require.Equal(t, "", strings.Trim(string(encrypted), "01"))
}

func TestParallelEqualsSequential(t *testing.T) {
	plain := testutil.CreateRandomDummyBuf(64*1024+3, 23)

	for _, format := range []Format{FormatText, FormatBinary} {
		seq := NewProcessor(TestKey, Options{Format: format})
		par := NewProcessor(TestKey, Options{Format: format, Workers: 7})

		seqEnc := seq.Encrypt(plain)
		require.Equal(t, seqEnc, par.Encrypt(plain))

		seqDec, err := seq.Decrypt(seqEnc)
		require.Nil(t, err)

		parDec, err := par.Decrypt(seqEnc)
		require.Nil(t, err)
		require.Equal(t, seqDec, parDec)
	}
}

func TestEncryptIsDeterministic(t *testing.T) {
	plain := testutil.CreateDummyBuf(1000)
	require.Equal(t, Encrypt(plain, TestKey), Encrypt(plain, TestKey))
	require.NotEqual(t, Encrypt(plain, TestKey), Encrypt(plain, des.KeyFromUint64(0x0E329232EA6D0D73)))
}

func TestShortInputScenario(t *testing.T) {
	encrypted := Encrypt([]byte("HI"), TestKey)
	require.Len(t, encrypted, 64)

	decrypted, err := Decrypt(encrypted, TestKey)
	require.Nil(t, err)
	require.Equal(t, []byte("HI"), decrypted)

	// Two blocks are needed as soon as one byte spills over:
	encrypted = Encrypt([]byte("HELLO WORLD"), TestKey)
	require.Len(t, encrypted, 128)

	decrypted, err = Decrypt(encrypted, TestKey)
	require.Nil(t, err)
	require.Equal(t, []byte("HELLO WORLD"), decrypted)
}

func TestZeroBytesAreDropped(t *testing.T) {
	plain := []byte{'a', 0, 'b', 0, 0, 'c', 'd', 'e', 0, 'f'}
	for _, opts := range allOptions() {
		proc := NewProcessor(TestKey, opts)
		decrypted, err := proc.Decrypt(proc.Encrypt(plain))
		require.Nil(t, err)
		require.Equal(t, []byte("abcdef"), decrypted)
	}
}

func TestEmptyInput(t *testing.T) {
	require.Len(t, Encrypt(nil, TestKey), 0)

	decrypted, err := Decrypt(nil, TestKey)
	require.Nil(t, err)
	require.Len(t, decrypted, 0)
}

func TestDecryptBadCharacter(t *testing.T) {
	for _, workers := range []int{0, 4} {
		proc := NewProcessor(TestKey, Options{Workers: workers})
		encrypted := proc.Encrypt([]byte("0123456789abcdefFEDCBA9876543210"))
		require.Len(t, encrypted, 4*64)

		// Break the third block:
		encrypted[2*64+5] = 'x'

		decrypted, err := proc.Decrypt(encrypted)
		require.True(t, des.IsFormatError(err))
		require.Equal(t, int64(2*64+5), err.(*des.FormatError).Offset)
		require.Equal(t, []byte("0123456789abcdef"), decrypted)
	}
}

func TestDecryptTruncatedGroup(t *testing.T) {
	for _, opts := range allOptions() {
		proc := NewProcessor(TestKey, opts)
		encrypted := proc.Encrypt([]byte("0123456789abcdef"))
		groupSize := opts.Format.GroupSize()

		decrypted, err := proc.Decrypt(encrypted[:len(encrypted)-1])
		require.True(t, des.IsFormatError(err))
		require.Equal(t, int64(groupSize), err.(*des.FormatError).Offset)
		require.Equal(t, []byte("01234567"), decrypted)
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("text")
	require.Nil(t, err)
	require.Equal(t, FormatText, format)

	format, err = ParseFormat("BINARY")
	require.Nil(t, err)
	require.Equal(t, FormatBinary, format)

	_, err = ParseFormat("hex")
	require.NotNil(t, err)

	require.Equal(t, []string{"text", "binary"}, FormatNames())
	require.Equal(t, "format(9)", Format(9).String())
}

func BenchmarkEncryptText(b *testing.B) {
	plain := testutil.CreateDummyBuf(1024 * 1024)
	proc := NewProcessor(TestKey, Options{})

	for n := 0; n < b.N; n++ {
		proc.Encrypt(plain)
	}
}

func BenchmarkEncryptTextParallel(b *testing.B) {
	plain := testutil.CreateDummyBuf(1024 * 1024)
	proc := NewProcessor(TestKey, Options{Workers: 8})

	for n := 0; n < b.N; n++ {
		proc.Encrypt(plain)
	}
}
