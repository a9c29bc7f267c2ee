package engine

import (
	"testing"

	"github.com/trevorblacklock/Stella/board"
)

func TestTTResizePowerOfTwo(t *testing.T) {
	tt := NewTT(1)
	if n := len(tt.entries); n&(n-1) != 0 || n == 0 {
		t.Fatalf("entry count %d is not a power of two", n)
	}

	tt.Resize(7)
	if n := len(tt.entries); n&(n-1) != 0 {
		t.Fatalf("entry count %d is not a power of two after resize", n)
	}
}

func TestTTSaveProbe(t *testing.T) {
	tt := NewTT(1)
	key := uint64(0xDEADBEEFCAFEBABE)
	m := board.NewMove(board.E2, board.E4)

	tt.Save(key, 12, 150, 90, m, BoundExact, true)

	e, ok := tt.Probe(key)
	if !ok {
		t.Fatalf("probe missed a stored key")
	}
	if e.Move != m || e.Score != 150 || e.Eval != 90 || e.Depth != 12 ||
		e.Bound != BoundExact || !e.PV {
		t.Fatalf("probe returned %+v", e)
	}

	if _, ok := tt.Probe(key ^ 0xFFFF0000FFFF0000); ok {
		t.Fatalf("probe hit a key that was never stored")
	}
}

func TestTTReplacementPrefersDepth(t *testing.T) {
	tt := NewTT(1)
	key := uint64(0x123456789ABCDEF0)

	tt.Save(key, 10, 50, 40, board.NewMove(board.A2, board.A4), BoundLower, false)
	tt.Save(key, 2, -30, -20, board.NewMove(board.B2, board.B4), BoundUpper, false)

	e, ok := tt.Probe(key)
	if !ok {
		t.Fatalf("entry vanished")
	}
	if e.Depth != 10 {
		t.Fatalf("shallow bound replaced a deep entry, depth now %d", e.Depth)
	}

	// Exact bounds always replace.
	tt.Save(key, 2, 70, 60, board.NewMove(board.C2, board.C4), BoundExact, false)
	if e, _ := tt.Probe(key); e.Depth != 2 || e.Bound != BoundExact {
		t.Fatalf("exact bound failed to replace, got %+v", e)
	}

	// A new search generation always wins the slot.
	tt.NewSearch()
	tt.Save(key, 1, 10, 5, board.NewMove(board.D2, board.D4), BoundUpper, false)
	if e, _ := tt.Probe(key); e.Depth != 1 {
		t.Fatalf("stale entry survived a new generation, got %+v", e)
	}
}

func TestTTKeepsMoveOnEmptySave(t *testing.T) {
	tt := NewTT(1)
	key := uint64(0x5555AAAA5555AAAA)
	m := board.NewMove(board.G1, board.F3)

	tt.Save(key, 5, 20, 10, m, BoundLower, false)
	tt.Save(key, 6, -20, 10, board.MoveNone, BoundUpper, false)

	e, ok := tt.Probe(key)
	if !ok {
		t.Fatalf("entry vanished")
	}
	if e.Move != m {
		t.Fatalf("stored move was dropped, got %v", e.Move)
	}
}

func TestTTClear(t *testing.T) {
	tt := NewTT(1)
	key := uint64(0x42)
	tt.Save(key, 3, 1, 1, board.NewMove(board.E2, board.E4), BoundExact, false)
	tt.Clear()
	if _, ok := tt.Probe(key); ok {
		t.Fatalf("entry survived a clear")
	}
	if tt.Hashfull() != 0 {
		t.Fatalf("hashfull should be zero after clear")
	}
}

func TestValueToFromTT(t *testing.T) {
	// Mate scores travel ply-adjusted so they stay distance-exact.
	v := mateIn(7)
	stored := valueToTT(v, 3)
	if got := valueFromTT(stored, 3, 0); got != v {
		t.Fatalf("mate round trip: got %d want %d", got, v)
	}

	v = matedIn(9)
	stored = valueToTT(v, 5)
	if got := valueFromTT(stored, 5, 0); got != v {
		t.Fatalf("mated round trip: got %d want %d", got, v)
	}

	// A mate further away than the fifty-move horizon is demoted to a
	// non-mate winning score.
	deep := valueToTT(mateIn(10), 0)
	if got := valueFromTT(deep, 0, 95); got != ValueMateInMaxPly-1 {
		t.Fatalf("fifty-rule demotion: got %d", got)
	}

	if got := valueFromTT(123, 17, 0); got != 123 {
		t.Fatalf("normal scores pass through, got %d", got)
	}
}
