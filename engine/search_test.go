package engine

import (
	"testing"

	"github.com/trevorblacklock/Stella/board"
)

func searchToDepth(t *testing.T, fen string, depth int) (board.Move, Value) {
	t.Helper()
	pos := position(t, fen)

	s := NewSearch()
	s.ShowInfo = false

	tm := NewTimeManager()
	tm.SetDepthLimit(depth)

	best := s.Run(pos, tm)
	return best, s.Score()
}

func TestSearchFindsBackRankMate(t *testing.T) {
	best, score := searchToDepth(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 5)

	if got := best.Format(false); got != "a1a8" {
		t.Fatalf("best move: got %s want a1a8", got)
	}
	if score != mateIn(1) {
		t.Fatalf("score: got %d want %d", score, mateIn(1))
	}
}

func TestSearchPrefersMateOverStalemate(t *testing.T) {
	// The queen mates next to the king; quieter tries stalemate instead.
	best, score := searchToDepth(t, "7k/8/6QK/8/8/8/8/8 w - - 0 1", 5)

	if got := best.Format(false); got != "g6g7" && got != "g6h7" {
		t.Fatalf("best move: got %s want g6g7 or g6h7", got)
	}
	if score != mateIn(1) {
		t.Fatalf("score: got %d want %d", score, mateIn(1))
	}
}

func TestSearchSeesMateAgainst(t *testing.T) {
	// Black can only shuffle the a-pawn, then the queen mates on g7.
	_, score := searchToDepth(t, "6k1/p6p/5Q1K/8/8/8/8/8 b - - 0 1", 6)

	if !isLoss(score) {
		t.Fatalf("side to move is lost, score %d", score)
	}
}

func TestSearchReturnsNoMoveWhenMated(t *testing.T) {
	pos := position(t, "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")

	s := NewSearch()
	s.ShowInfo = false
	tm := NewTimeManager()
	tm.SetDepthLimit(3)

	if best := s.Run(pos, tm); best != board.MoveNone {
		t.Fatalf("mated position returned %s", best.Format(false))
	}
}

func TestSearchReturnsNoMoveWhenStalemated(t *testing.T) {
	pos := position(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if pos.Checks() != 0 {
		t.Fatalf("expected a stalemate, not a check")
	}

	s := NewSearch()
	s.ShowInfo = false
	tm := NewTimeManager()
	tm.SetDepthLimit(3)

	if best := s.Run(pos, tm); best != board.MoveNone {
		t.Fatalf("stalemated position returned %s", best.Format(false))
	}
}

func TestSearchReturnsLegalMove(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/1B1p4/4P3/8/PPPP1PPP/RNBQK1NR b KQkq - 1 2",
	}

	for _, fen := range fens {
		pos := position(t, fen)

		s := NewSearch()
		s.ShowInfo = false
		tm := NewTimeManager()
		tm.SetDepthLimit(6)

		best := s.Run(pos, tm)
		if best == board.MoveNone || !pos.IsLegal(best) {
			t.Fatalf("%s: search returned illegal move %v", fen, best)
		}
	}
}

func TestSearchRespectsNodeLimit(t *testing.T) {
	pos := position(t, board.StartFEN)

	s := NewSearch()
	s.ShowInfo = false
	tm := NewTimeManager()
	tm.SetNodeLimit(20000)

	best := s.Run(pos, tm)
	if best == board.MoveNone {
		t.Fatalf("node-limited search returned no move")
	}
	// The limit is polled between nodes, so allow generous slack.
	if s.Nodes() > 200000 {
		t.Fatalf("node limit overshot badly: %d nodes", s.Nodes())
	}
}

func TestStoppedQSearchStoresNoBound(t *testing.T) {
	pos := position(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")

	s := NewSearch()
	s.ShowInfo = false
	s.tm = NewTimeManager()
	s.tm.SetNodeLimit(1)

	sd := &s.threadData[0]
	sd.hist = NewHistory()
	sd.eval = NewEval()
	sd.eval.Reset(pos)
	pos.SetEvaluator(sd.eval)

	// The node poll fires every 1024 nodes; preload the counter so the
	// stop lands inside the recapture, not at the root entry. The root
	// then unwinds with provisional child scores and must not publish
	// them to the table.
	sd.nodes.Store(1022)

	_ = s.qsearch(pos, sd, -ValueMate, ValueMate)

	if !s.tm.Stopped() {
		t.Fatalf("node limit never tripped the stop")
	}
	if _, hit := s.tt.Probe(pos.Key()); hit {
		t.Fatalf("stopped quiescence stored a provisional bound")
	}
}

func TestSearchMultiThreadedAgrees(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping threaded search in short mode")
	}
	pos := position(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	s := NewSearch()
	s.ShowInfo = false
	s.SetThreads(2)
	tm := NewTimeManager()
	tm.SetDepthLimit(5)

	if got := s.Run(pos, tm).Format(false); got != "a1a8" {
		t.Fatalf("threaded search: got %s want a1a8", got)
	}
}

func TestTimeManagerLimits(t *testing.T) {
	tm := NewTimeManager()
	tm.SetDepthLimit(12)
	if tm.MaxDepth() != 12 {
		t.Fatalf("depth limit not applied")
	}

	tm.SetNodeLimit(100)
	if tm.CanContinue(99) != true || tm.CanContinue(100) != false {
		t.Fatalf("node limit boundary is off")
	}

	tm.Stop()
	if tm.CanContinue(0) {
		t.Fatalf("forced stop must halt the search")
	}

	tm.Reset()
	if !tm.CanContinue(1 << 30) {
		t.Fatalf("reset should clear every limit")
	}
}

func TestTimeManagerBudgets(t *testing.T) {
	tm := NewTimeManager()
	tm.SetTimeLimit(60000, 1000, 0, 20)

	if tm.timeLimit.optimal == 0 || tm.timeLimit.max == 0 {
		t.Fatalf("budgets must be positive")
	}
	if tm.timeLimit.optimal > tm.timeLimit.max {
		t.Fatalf("optimal budget %d exceeds max %d",
			tm.timeLimit.optimal, tm.timeLimit.max)
	}
	// The hard cap never spends more than most of the clock.
	if tm.timeLimit.max > 42000 {
		t.Fatalf("max budget %d exceeds 70%% of remaining time", tm.timeLimit.max)
	}
}

func TestEvalSymmetry(t *testing.T) {
	white := position(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	black := position(t, "4k3/4p3/8/8/8/8/8/4K3 b - - 0 1")

	ew, eb := NewEval(), NewEval()
	ew.Reset(white)
	eb.Reset(black)

	if ew.Evaluate(white) != eb.Evaluate(black) {
		t.Fatalf("mirrored positions must evaluate equally: %d vs %d",
			ew.Evaluate(white), eb.Evaluate(black))
	}
}

func TestEvalIncrementalMatchesReset(t *testing.T) {
	pos := position(t, board.StartFEN)
	ev := NewEval()
	ev.Reset(pos)
	pos.SetEvaluator(ev)

	// Play a short line with a capture, a castle and a promotion-free
	// middlegame shuffle; the accumulators must track a fresh recompute.
	moves := []string{"e2e4", "d7d5", "e4d5", "g8f6", "g1f3", "f6d5", "f1c4", "e7e6", "e1g1"}
	for _, str := range moves {
		var ml board.MoveList
		pos.GenerateCaptures(&ml, board.AllSquares)
		pos.GenerateQuiets(&ml, board.AllSquares)

		var mv board.Move
		for i := 0; i < ml.Size; i++ {
			if ml.Moves[i].Format(false) == str && pos.IsLegal(ml.Moves[i]) {
				mv = ml.Moves[i]
				break
			}
		}
		if mv == board.MoveNone {
			t.Fatalf("move %s not found", str)
		}
		pos.DoMove(mv)

		fresh := NewEval()
		fresh.Reset(pos)
		if got, want := ev.Evaluate(pos), fresh.Evaluate(pos); got != want {
			t.Fatalf("after %s: incremental %d, recomputed %d", str, got, want)
		}
	}
}
