package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/sahib/config"
	"github.com/sahib/desfile/bench"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func allBenchmarks() []string {
	names := []string{}

	for _, benchName := range bench.BenchmarkNames() {
		for _, inputName := range bench.InputNames() {
			names = append(names, fmt.Sprintf("%s:%s", benchName, inputName))
		}
	}

	return names
}

func printStats(s bench.Stats) {
	fmt.Println()
	fmt.Println("Time:          ", s.Time.Format(time.RFC3339))
	fmt.Println("CPU Name:      ", s.CPUBrandName)
	fmt.Println("Logical Cores: ", s.LogicalCores)
	fmt.Println("Physical Cores:", s.PhysicalCores)
	fmt.Println("Go Version:    ", s.GoVersion)
	fmt.Println()
}

type benchmarkRun struct {
	Stats   bench.Stats    `json:"stats"`
	Results []bench.Result `json:"results"`
}

func handleIOBench(ctx *cli.Context, cfg *config.Config) error {
	if ctx.Bool("list") {
		for _, name := range allBenchmarks() {
			fmt.Println(name)
		}

		return nil
	}

	run := benchmarkRun{
		Stats: bench.FetchStats(),
	}

	benchmarks := ctx.StringSlice("bench")
	if len(benchmarks) == 0 {
		log.Infof("running all benchmarks...")
		benchmarks = allBenchmarks()
	}

	isJSON := ctx.Bool("json")
	if !isJSON {
		printStats(run.Stats)
	}

	size, err := humanize.ParseBytes(ctx.String("size"))
	if err != nil {
		return ExitCode{BadArgs, fmt.Sprintf("bad size: %v", err)}
	}

	workers, err := resolveWorkers(ctx, cfg)
	if err != nil {
		return err
	}

	cfgs := []bench.Config{}
	for _, benchmark := range benchmarks {
		benchSplit := strings.SplitN(benchmark, ":", 2)

		benchInput := "ten"
		benchName := benchSplit[0]
		if len(benchSplit) >= 2 {
			benchInput = benchSplit[1]
		}

		cfgs = append(cfgs, bench.Config{
			BenchName:   benchName,
			InputName:   benchInput,
			Size:        size,
			Format:      ctx.String("format"),
			Workers:     workers,
			ChunkBlocks: int(cfg.Int("cipher.chunk_blocks")),
		})
	}

	var baselineTiming time.Duration
	var lastSection string

	err = bench.Benchmark(cfgs, func(result bench.Result) {
		section := fmt.Sprintf(
			"%s => %s",
			result.Config.InputName,
			result.Config.BenchName,
		)

		if section != lastSection {
			if !isJSON {
				drawHeading(section)
			}

			// The first result of a section is the reference.
			baselineTiming = result.Took
			lastSection = section
		}

		if !isJSON {
			drawBar(
				fmt.Sprintf("format-%s:workers-%d", result.Format, result.Config.Workers),
				result.Took,
				baselineTiming,
				result.Throughput,
			)
		}

		run.Results = append(run.Results, result)
	})

	if err != nil {
		return ExitCode{BadArgs, err.Error()}
	}

	if isJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "    ")
		return enc.Encode(run)
	}

	return nil
}

func drawHeading(heading string) {
	fmt.Println()
	fmt.Println(heading)
	fmt.Println(strings.Repeat("=", len(heading)))
	fmt.Println()
}

func drawBar(name string, took, ref time.Duration, throughput float64) {
	perc := 1.0
	if took > 0 {
		perc = float64(ref) / float64(took)
	}

	const cells = 40

	fmt.Printf("%-32s [", name)
	for idx := 0; idx < cells; idx++ {
		if idx <= int(perc*cells) {
			fmt.Printf("=")
		} else {
			fmt.Printf(" ")
		}
	}

	fmt.Printf(
		"] %s/s (%.2f%%) %v\n",
		humanize.Bytes(uint64(throughput)),
		perc*100,
		took,
	)
}
