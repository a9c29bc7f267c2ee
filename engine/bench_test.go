package engine_test

import (
	"testing"

	"github.com/trevorblacklock/Stella/board"
	"github.com/trevorblacklock/Stella/engine"
)

func benchPerft(b *testing.B, fen string, depth int) {
	pos, err := board.NewPosition(fen, false)
	if err != nil {
		b.Fatalf("parsing fen: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Perft(pos, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, board.StartFEN, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3)
}

func BenchmarkPerft_Endgame_D5(b *testing.B) {
	benchPerft(b, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5)
}

func BenchmarkSearch_Initial_D8(b *testing.B) {
	s := engine.NewSearch()
	s.ShowInfo = false

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos, _ := board.NewPosition(board.StartFEN, false)
		s.Clear()
		tm := engine.NewTimeManager()
		tm.SetDepthLimit(8)
		_ = s.Run(pos, tm)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	pos, _ := board.NewPosition("r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", false)
	ev := engine.NewEval()
	ev.Reset(pos)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ev.Evaluate(pos)
	}
}
