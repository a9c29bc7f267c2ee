package engine

import (
	"testing"

	"github.com/trevorblacklock/Stella/board"
)

func position(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.NewPosition(fen, false)
	if err != nil {
		t.Fatalf("parsing %q: %v", fen, err)
	}
	return pos
}

func TestMateScoreHelpers(t *testing.T) {
	if mateIn(0) != ValueMate || matedIn(0) != -ValueMate {
		t.Fatalf("mate scores must anchor at the root")
	}
	if !isWin(mateIn(10)) || !isLoss(matedIn(10)) {
		t.Fatalf("near mates classify as decided")
	}
	if isWin(500) || isLoss(-500) {
		t.Fatalf("ordinary scores are not decided")
	}
	if mateIn(3) <= mateIn(5) {
		t.Fatalf("shorter mates must compare higher")
	}
}
