package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/trevorblacklock/Stella/board"
	"github.com/trevorblacklock/Stella/engine"
)

// A small mix of openings, middlegames and endgames for repeatable
// search timings.
var benchFens = []string{
	board.StartFEN,
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
}

func main() {
	depthFlag := flag.Int("depth", 10, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of passes over the positions")
	fenFlag := flag.String("fen", "", "single FEN to search (empty = built-in suite)")
	threadsFlag := flag.Int("threads", 1, "search threads")
	hashFlag := flag.Int("hash", engine.DefaultHashMB, "hash size in MB")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	fens := benchFens
	if *fenFlag != "" {
		fens = []string{*fenFlag}
	}

	search := engine.NewSearch()
	search.ShowInfo = false
	search.SetThreads(*threadsFlag)
	search.SetHashSize(*hashFlag)

	fmt.Printf("searchbench: positions=%d depth=%d repeat=%d threads=%d\n",
		len(fens), *depthFlag, *repeatFlag, *threadsFlag)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		for _, fen := range fens {
			pos, err := board.NewPosition(fen, false)
			if err != nil {
				log.Fatalf("parsing fen %q: %v", fen, err)
			}
			search.Clear()

			tm := engine.NewTimeManager()
			tm.SetDepthLimit(*depthFlag)

			iterStart := time.Now()
			best := search.Run(pos, tm)
			iterElapsed := time.Since(iterStart)
			totalNodes += search.Nodes()

			fmt.Printf("%-72s bestmove %-6s nodes %-10d time %v\n",
				fen, best.Format(false), search.Nodes(), iterElapsed)
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total: nodes %d time %v nps %.0f\n",
		totalNodes, totalElapsed, float64(totalNodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
