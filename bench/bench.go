package bench

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"time"

	"github.com/sahib/desfile/des"
	"github.com/sahib/desfile/ecb"
	"github.com/sahib/desfile/util"
	"github.com/sahib/desfile/util/testutil"
)

// benchKey is the key used for all benchmarks.
// The key does not influence the speed of DES.
var benchKey = des.KeyFromUint64(0x133457799BBCDFF1)

// Bench is a single benchmark that processes data read from an input.
type Bench interface {
	// SupportsOptions tells if the benchmark looks at the ecb.Options at all.
	SupportsOptions() bool

	// Bench processes all of `r` and returns the time it took.
	Bench(opts ecb.Options, r io.Reader) (time.Duration, error)

	Close() error
}

func measure(fn func() error) (time.Duration, error) {
	start := time.Now()
	if err := fn(); err != nil {
		return 0, err
	}

	return time.Since(start), nil
}

//////////

type nullBench struct{}

func (n nullBench) SupportsOptions() bool { return false }

func (n nullBench) Bench(opts ecb.Options, r io.Reader) (time.Duration, error) {
	// NOTE: Use DumbCopy, since io.Copy would use the
	// ReadFrom of ioutil.Discard. This is lightning fast.
	// We want to measure actual time to copy in memory.
	return measure(func() error {
		_, err := testutil.DumbCopy(ioutil.Discard, r)
		return err
	})
}

func (n nullBench) Close() error { return nil }

//////////

// memoryBench encrypts the whole input in one go with a Processor.
// Reading the input is not part of the measurement.
type memoryBench struct{}

func (m memoryBench) SupportsOptions() bool { return true }

func (m memoryBench) Bench(opts ecb.Options, r io.Reader) (time.Duration, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return 0, err
	}

	proc := ecb.NewProcessor(benchKey, opts)
	return measure(func() error {
		proc.Encrypt(data)
		return nil
	})
}

func (m memoryBench) Close() error { return nil }

//////////

// streamBench encrypts through ecb.EncryptStream, like the encrypt command.
type streamBench struct{}

func (s streamBench) SupportsOptions() bool { return true }

func (s streamBench) Bench(opts ecb.Options, r io.Reader) (time.Duration, error) {
	return measure(func() error {
		_, err := ecb.EncryptStream(context.Background(), benchKey, r, ioutil.Discard, opts)
		return err
	})
}

func (s streamBench) Close() error { return nil }

//////////

// roundtripBench encrypts the input and decrypts it again,
// checking that the plaintext size survived.
type roundtripBench struct{}

func (rt roundtripBench) SupportsOptions() bool { return true }

func (rt roundtripBench) Bench(opts ecb.Options, r io.Reader) (time.Duration, error) {
	return measure(func() error {
		encrypted := &bytes.Buffer{}
		inSize, err := ecb.EncryptStream(context.Background(), benchKey, r, encrypted, opts)
		if err != nil {
			return err
		}

		acc := &util.SizeAccumulator{}
		if _, err := ecb.DecryptStream(context.Background(), benchKey, encrypted, acc, opts); err != nil {
			return err
		}

		// Zero bytes are dropped on decryption, so the size can only shrink.
		if acc.Size() > uint64(inSize) {
			return fmt.Errorf("roundtrip grew data: %d -> %d", inSize, acc.Size())
		}

		return nil
	})
}

func (rt roundtripBench) Close() error { return nil }

//////////

var benchMap = map[string]func() (Bench, error){
	"null":      func() (Bench, error) { return nullBench{}, nil },
	"memory":    func() (Bench, error) { return memoryBench{}, nil },
	"stream":    func() (Bench, error) { return streamBench{}, nil },
	"roundtrip": func() (Bench, error) { return roundtripBench{}, nil },
}

// BenchByName returns the benchmark called `name`.
func BenchByName(name string) (Bench, error) {
	newBench, ok := benchMap[name]
	if !ok {
		return nil, fmt.Errorf("no such bench: %s", name)
	}

	return newBench()
}

// BenchmarkNames returns the sorted names of all benchmarks.
func BenchmarkNames() []string {
	names := []string{}
	for name := range benchMap {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
