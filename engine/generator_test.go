package engine

import (
	"testing"

	"github.com/trevorblacklock/Stella/board"
)

func collect(g *Generator) []board.Move {
	var out []board.Move
	for m := g.Next(); m != board.MoveNone; m = g.Next() {
		out = append(out, m)
	}
	return out
}

func legalCount(pos *board.Position) int {
	return len(collect(NewPerftGenerator(pos)))
}

// The staged generator must yield every legal move exactly once, whatever
// order the stages pick.
func TestGeneratorYieldsEachLegalMoveOnce(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", // in check
	}

	for _, fen := range fens {
		pos := position(t, fen)
		h := NewHistory()

		seen := make(map[board.Move]bool)
		legal := 0
		gen := NewGenerator(pos, h, ModeSearch, board.MoveNone, 0)
		for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
			if seen[m] {
				t.Fatalf("%s: %s yielded twice", fen, m.Format(false))
			}
			seen[m] = true
			if pos.IsLegal(m) {
				legal++
			}
		}

		if want := legalCount(pos); legal != want {
			t.Fatalf("%s: generator covered %d legal moves, want %d", fen, legal, want)
		}
	}
}

func TestGeneratorYieldsTTMoveFirst(t *testing.T) {
	pos := position(t, board.StartFEN)
	h := NewHistory()
	ttMove := board.NewMove(board.D2, board.D4)

	gen := NewGenerator(pos, h, ModeSearch, ttMove, 0)
	if first := gen.Next(); first != ttMove {
		t.Fatalf("hash move should come first, got %s", first.Format(false))
	}

	// And it must not appear again later.
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		if m == ttMove {
			t.Fatalf("hash move yielded twice")
		}
	}
}

func TestGeneratorRejectsBogusTTMove(t *testing.T) {
	pos := position(t, board.StartFEN)
	h := NewHistory()

	// A capture that does not exist in this position.
	bogus := board.NewMove(board.A1, board.H8)
	gen := NewGenerator(pos, h, ModeSearch, bogus, 0)
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		if m == bogus {
			t.Fatalf("stale hash move slipped through pseudo-legality")
		}
	}
}

func TestGeneratorKillersBeforeQuiets(t *testing.T) {
	pos := position(t, board.StartFEN)
	h := NewHistory()

	killer := board.NewMove(board.B1, board.C3)
	h.SetKiller(board.White, killer, 0)

	gen := NewGenerator(pos, h, ModeSearch, board.MoveNone, 0)
	var quietsSeen int
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		if m == killer {
			if quietsSeen > 0 {
				t.Fatalf("killer arrived after %d ordinary quiets", quietsSeen)
			}
			return
		}
		if !pos.IsCapture(m) {
			quietsSeen++
		}
	}
	t.Fatalf("killer was never yielded")
}

func TestQSearchModeYieldsWinningCapturesOnly(t *testing.T) {
	pos := position(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	h := NewHistory()

	gen := NewGenerator(pos, h, ModeQSearch, board.MoveNone, 0)
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		if !pos.IsCapture(m) && m.Kind() != board.Promotion {
			t.Fatalf("quiescence yielded quiet move %s", m.Format(false))
		}
		if pos.IsCapture(m) && gen.SeeScore() < 0 {
			t.Fatalf("quiescence yielded losing capture %s", m.Format(false))
		}
	}
}

func TestQSearchCheckModeYieldsEvasions(t *testing.T) {
	pos := position(t, "rnbqkbnr/ppp1pppp/8/1B1p4/4P3/8/PPPP1PPP/RNBQK1NR b KQkq - 1 2")
	if pos.Checks() == 0 {
		t.Fatalf("expected white to stand in check")
	}
	h := NewHistory()

	legal := 0
	gen := NewGenerator(pos, h, ModeQSearchCheck, board.MoveNone, 0)
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		if pos.IsLegal(m) {
			legal++
		}
	}
	if want := legalCount(pos); legal != want {
		t.Fatalf("in-check quiescence covered %d evasions, want %d", legal, want)
	}
}

func TestSkipQuiets(t *testing.T) {
	pos := position(t, board.StartFEN)
	h := NewHistory()

	gen := NewGenerator(pos, h, ModeSearch, board.MoveNone, 0)
	gen.SkipQuiets()
	if m := gen.Next(); m != board.MoveNone {
		t.Fatalf("start position has no captures, got %s", m.Format(false))
	}
}

func TestSearchedListRecordsMoves(t *testing.T) {
	pos := position(t, board.StartFEN)
	h := NewHistory()

	gen := NewGenerator(pos, h, ModeSearch, board.MoveNone, 0)
	var n int
	for m := gen.Next(); m != board.MoveNone && n < 5; m = gen.Next() {
		gen.AddSearched(m)
		n++
	}
	if gen.Searched().Size != 5 {
		t.Fatalf("searched list holds %d moves, want 5", gen.Searched().Size)
	}
}
