package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/trevorblacklock/Stella/board"
	"github.com/trevorblacklock/Stella/engine"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	threads := flag.Int("threads", 1, "Worker count for the parallel driver")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	chess960 := flag.Bool("chess960", false, "Parse the FEN with Shredder castling")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.NewPosition(*fen, *chess960)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing fen: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		counts, total := engine.Divide(pos, *depth)
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, counts[k])
		}
		fmt.Printf("Total: %d\n", total)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		if *threads > 1 {
			n, err := engine.PerftParallel(context.Background(), pos, *depth, *threads)
			if err != nil {
				fmt.Fprintf(os.Stderr, "perft: %v\n", err)
				os.Exit(1)
			}
			totalNodes += n
		} else {
			totalNodes += engine.Perft(pos, *depth)
		}
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("%d \t\t%d \t\t%s \t%.0f\n", *depth, totalNodes, elapsed, nps)
}
