package bench

import (
	"time"

	"github.com/sahib/desfile/ecb"
	log "github.com/sirupsen/logrus"
)

// Config selects one benchmark run.
type Config struct {
	InputName string `json:"input_name"`
	BenchName string `json:"bench_name"`
	Size      uint64 `json:"size"`

	// Format is "text", "binary" or "*" for both.
	Format string `json:"format"`

	// Workers is passed on to ecb.Options.
	Workers int `json:"workers"`

	// ChunkBlocks is passed on to ecb.Options. Zero means the default.
	ChunkBlocks int `json:"chunk_blocks"`
}

// Result is the outcome of a single benchmark run.
type Result struct {
	Config Config        `json:"config"`
	Format string        `json:"format"`
	Took   time.Duration `json:"took"`

	// Throughput in bytes of input per second.
	Throughput float64 `json:"throughput"`
}

func throughput(size uint64, took time.Duration) float64 {
	if took <= 0 {
		return 0
	}

	return float64(size) / took.Seconds()
}

// buildOptions handles the format wildcard.
// If no wildcard is given, we just take what is set in `cfg`.
func buildOptions(cfg Config) ([]ecb.Options, error) {
	names := []string{cfg.Format}
	if cfg.Format == "*" {
		names = ecb.FormatNames()
	}

	opts := []ecb.Options{}
	for _, name := range names {
		format, err := ecb.ParseFormat(name)
		if err != nil {
			return nil, err
		}

		opts = append(opts, ecb.Options{
			Format:      format,
			Workers:     cfg.Workers,
			ChunkBlocks: cfg.ChunkBlocks,
		})
	}

	return opts, nil
}

func benchmarkSingle(cfg Config, fn func(result Result)) error {
	in, err := InputByName(cfg.InputName, cfg.Size)
	if err != nil {
		return err
	}

	defer in.Close()

	bench, err := BenchByName(cfg.BenchName)
	if err != nil {
		return err
	}

	defer bench.Close()

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	for _, opt := range opts {
		r, err := in.Reader()
		if err != nil {
			return err
		}

		took, err := bench.Bench(opt, r)
		if err != nil {
			return err
		}

		format := opt.Format.String()
		if !bench.SupportsOptions() {
			// Indicate in output that no cipher was involved.
			format = "none"
		}

		log.WithFields(log.Fields{
			"bench":  cfg.BenchName,
			"input":  cfg.InputName,
			"format": format,
			"took":   took,
		}).Debug("benchmark done")

		fn(Result{
			Config:     cfg,
			Format:     format,
			Took:       took,
			Throughput: throughput(cfg.Size, took),
		})

		if !bench.SupportsOptions() {
			// There is no point in repeating the benchmark
			// with other options if they are not used.
			break
		}
	}

	return nil
}

// Benchmark runs all benchmarks in `cfgs` in order
// and calls `fn` for every result.
func Benchmark(cfgs []Config, fn func(result Result)) error {
	for _, cfg := range cfgs {
		if err := benchmarkSingle(cfg, fn); err != nil {
			return err
		}
	}

	return nil
}
