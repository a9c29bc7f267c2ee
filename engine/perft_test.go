package engine_test

import (
	"context"
	"testing"

	"github.com/trevorblacklock/Stella/board"
	"github.com/trevorblacklock/Stella/engine"
)

func position(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.NewPosition(fen, false)
	if err != nil {
		t.Fatalf("parsing %q: %v", fen, err)
	}
	return pos
}

func checkPerft(t *testing.T, fen string, want ...uint64) {
	t.Helper()
	pos := position(t, fen)
	for depth, n := range want {
		if got := engine.Perft(pos, depth+1); got != n {
			t.Fatalf("%s depth %d: got %d want %d", fen, depth+1, got, n)
		}
	}
}

func TestPerftInitialPosition(t *testing.T) {
	checkPerft(t, board.StartFEN, 20, 400, 8902, 197281)
}

func TestPerftInitialDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping depth 5 perft in short mode")
	}
	pos := position(t, board.StartFEN)
	if got := engine.Perft(pos, 5); got != 4865609 {
		t.Fatalf("initial depth 5: got %d want %d", got, 4865609)
	}
}

func TestPerftKiwipete(t *testing.T) {
	checkPerft(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		48, 2039, 97862)
}

func TestPerftPosition3(t *testing.T) {
	checkPerft(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 14, 191, 2812, 43238)
}

func TestPerftPosition4(t *testing.T) {
	checkPerft(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		6, 264, 9467)
}

func TestPerftPosition5(t *testing.T) {
	checkPerft(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		44, 1486, 62379)
}

func TestPerftPosition6(t *testing.T) {
	checkPerft(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		46, 2079, 89890)
}

func TestPerftEnPassant(t *testing.T) {
	checkPerft(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", 5, 19)
}

func TestPerftPromotion(t *testing.T) {
	checkPerft(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1", 11)
}

func TestDivideSumsToPerft(t *testing.T) {
	pos := position(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	counts, total := engine.Divide(pos, 3)

	var sum uint64
	for _, n := range counts {
		sum += n
	}
	if sum != total {
		t.Fatalf("divide sum %d disagrees with total %d", sum, total)
	}
	if total != 97862 {
		t.Fatalf("divide total: got %d want %d", total, 97862)
	}
	if len(counts) != 48 {
		t.Fatalf("divide roots: got %d want %d", len(counts), 48)
	}
}

func TestPerftParallelMatchesSerial(t *testing.T) {
	pos := position(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	serial := engine.Perft(pos, 3)
	parallel, err := engine.PerftParallel(context.Background(), pos, 3, 4)
	if err != nil {
		t.Fatalf("parallel perft: %v", err)
	}
	if parallel != serial {
		t.Fatalf("parallel perft: got %d want %d", parallel, serial)
	}
}

func TestPerftParallelCancellation(t *testing.T) {
	pos := position(t, board.StartFEN)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.PerftParallel(ctx, pos, 5, 2); err == nil {
		t.Fatalf("cancelled context should surface an error")
	}
}
