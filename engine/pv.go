package engine

import "github.com/trevorblacklock/Stella/board"

// pvLine is one principal variation.
type pvLine struct {
	moves [MaxPly]board.Move
	size  int
}

// pvTable is a triangular PV table: the line at each ply owns its best
// move followed by the child line one ply deeper.
type pvTable [MaxPly + 1]pvLine

func (t *pvTable) reset() {
	for i := range t {
		t[i].size = 0
	}
}

func (t *pvTable) resetPly(ply int) { t[ply].size = 0 }

// update records a new best move at the given ply and pulls up the
// continuation found below it.
func (t *pvTable) update(m board.Move, ply int) {
	line := &t[ply]
	child := &t[ply+1]

	line.moves[0] = m
	copy(line.moves[1:1+child.size], child.moves[:child.size])
	line.size = child.size + 1
}
