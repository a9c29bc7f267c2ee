package board_test

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/trevorblacklock/Stella/board"
)

// moveStrings renders the legal moves in coordinate notation, sorted.
func moveStrings(p *board.Position) []string {
	var out []string
	for _, m := range legalMoves(p) {
		out = append(out, m.Format(false))
	}
	sort.Strings(out)
	return out
}

func referenceMoveStrings(b *dragontoothmg.Board) []string {
	var out []string
	for _, m := range b.GenerateLegalMoves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func compareMoves(t *testing.T, fen string) {
	t.Helper()
	pos := mustPosition(t, fen)
	ref := dragontoothmg.ParseFen(fen)

	got := moveStrings(pos)
	want := referenceMoveStrings(&ref)

	if len(got) != len(want) {
		t.Logf("got:  %v", got)
		t.Logf("want: %v", want)
		t.Fatalf("%s: %d legal moves, reference says %d", fen, len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s: move list diverges at %q vs %q", fen, got[i], want[i])
		}
	}
}

func TestLegalMovesMatchReference(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
		"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
		"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
	}
	for _, fen := range fens {
		compareMoves(t, fen)
	}
}

// Walk a pseudo-random game driven by the reference generator, comparing
// the full legal move set at every ply.
func TestLegalMovesMatchReferenceDuringGame(t *testing.T) {
	fen := board.StartFEN
	pos := mustPosition(t, fen)
	ref := dragontoothmg.ParseFen(fen)

	seed := uint64(0x9E3779B97F4A7C15)
	for ply := 0; ply < 120; ply++ {
		got := moveStrings(pos)
		want := referenceMoveStrings(&ref)
		if len(got) != len(want) {
			t.Logf("got:  %v", got)
			t.Logf("want: %v", want)
			t.Fatalf("ply %d (%s): %d legal moves, reference says %d",
				ply, pos.FEN(), len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("ply %d (%s): move list diverges at %q vs %q",
					ply, pos.FEN(), got[i], want[i])
			}
		}
		if len(got) == 0 {
			break
		}

		seed = seed*6364136223846793005 + 1442695040888963407
		pick := got[int(seed>>33)%len(got)]

		found := false
		for _, m := range legalMoves(pos) {
			if m.Format(false) == pick {
				pos.DoMove(m)
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("ply %d: lost track of move %s", ply, pick)
		}
		for _, m := range ref.GenerateLegalMoves() {
			if m.String() == pick {
				ref.Apply(m)
				break
			}
		}
	}
}

func TestQSearchMaskGeneratesOnlyCaptures(t *testing.T) {
	pos := mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	var ml board.MoveList
	pos.GenerateCaptures(&ml, board.AllSquares)
	for i := 0; i < ml.Size; i++ {
		m := ml.Moves[i]
		if !pos.IsCapture(m) && m.Kind() != board.Promotion {
			t.Fatalf("capture list yielded quiet move %s", m.Format(false))
		}
	}

	ml.Clear()
	pos.GenerateQuiets(&ml, board.AllSquares)
	for i := 0; i < ml.Size; i++ {
		m := ml.Moves[i]
		if pos.IsCapture(m) || m.Kind() == board.Promotion {
			t.Fatalf("quiet list yielded %s", m.Format(false))
		}
	}
}
