package engine

import "github.com/trevorblacklock/Stella/board"

// Eval is a classical tapered material and piece-square evaluator. It
// keeps incremental midgame/endgame accumulators from white's point of
// view, updated through the position's make/undo hooks, so Evaluate only
// has to interpolate by game phase.
type Eval struct {
	mg, eg Value
	stack  []accum
}

type accum struct{ mg, eg Value }

// NewEval returns an evaluator ready to attach to a position.
func NewEval() *Eval { return &Eval{stack: make([]accum, 0, 128)} }

// Game phase weights, 24 points in the starting position.
var phaseWeight = [board.PieceTypeNB]Value{0, 0, 1, 1, 2, 4, 0}

const totalPhase Value = 24

const tempoBonus Value = 12

// Piece-square tables from white's view, a1 first. Black mirrors ranks.
var psqtMG = [board.PieceTypeNB][board.SquareNB]Value{
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		-11, -4, 2, -11, -11, 8, 10, -8,
		-12, -8, 3, 3, 5, 0, 1, -14,
		-12, -2, 6, 16, 18, 4, -4, -14,
		-6, 4, 12, 22, 24, 14, 6, -8,
		4, 16, 26, 30, 30, 28, 18, 6,
		42, 44, 40, 44, 42, 38, 36, 34,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: {
		-50, -32, -24, -18, -18, -24, -32, -50,
		-30, -16, -4, 2, 2, -4, -16, -30,
		-20, 0, 10, 14, 14, 10, 0, -20,
		-14, 6, 16, 22, 22, 16, 6, -14,
		-12, 8, 18, 24, 24, 18, 8, -12,
		-16, 4, 14, 20, 20, 14, 4, -16,
		-28, -12, 0, 6, 6, 0, -12, -28,
		-48, -30, -20, -14, -14, -20, -30, -48,
	},
	board.Bishop: {
		-18, -8, -10, -12, -12, -10, -8, -18,
		-4, 8, 4, 0, 0, 4, 8, -4,
		-2, 6, 8, 6, 6, 8, 6, -2,
		0, 4, 8, 12, 12, 8, 4, 0,
		0, 4, 8, 12, 12, 8, 4, 0,
		-2, 6, 8, 6, 6, 8, 6, -2,
		-4, 8, 4, 0, 0, 4, 8, -4,
		-16, -6, -8, -10, -10, -8, -6, -16,
	},
	board.Rook: {
		-8, -4, 0, 4, 4, 0, -4, -8,
		-8, -4, 0, 4, 4, 0, -4, -8,
		-8, -4, 0, 4, 4, 0, -4, -8,
		-8, -4, 0, 4, 4, 0, -4, -8,
		-8, -4, 0, 4, 4, 0, -4, -8,
		-8, -4, 0, 4, 4, 0, -4, -8,
		6, 10, 12, 14, 14, 12, 10, 6,
		-4, 0, 2, 4, 4, 2, 0, -4,
	},
	board.Queen: {
		-16, -10, -8, -4, -4, -8, -10, -16,
		-8, -2, 2, 4, 4, 2, -2, -8,
		-6, 2, 6, 8, 8, 6, 2, -6,
		-4, 4, 8, 10, 10, 8, 4, -4,
		-4, 4, 8, 10, 10, 8, 4, -4,
		-6, 2, 6, 8, 8, 6, 2, -6,
		-8, -2, 2, 4, 4, 2, -2, -8,
		-16, -10, -8, -4, -4, -8, -10, -16,
	},
	board.King: {
		22, 30, 12, -8, -8, 12, 30, 22,
		18, 20, 0, -16, -16, 0, 20, 18,
		-8, -16, -24, -32, -32, -24, -16, -8,
		-24, -32, -40, -48, -48, -40, -32, -24,
		-32, -40, -48, -56, -56, -48, -40, -32,
		-40, -48, -56, -64, -64, -56, -48, -40,
		-48, -56, -64, -72, -72, -64, -56, -48,
		-56, -64, -72, -80, -80, -72, -64, -56,
	},
}

var psqtEG = [board.PieceTypeNB][board.SquareNB]Value{
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		2, 2, 4, 4, 4, 4, 2, 2,
		4, 4, 6, 6, 6, 6, 4, 4,
		8, 8, 10, 10, 10, 10, 8, 8,
		16, 16, 18, 18, 18, 18, 16, 16,
		34, 34, 36, 36, 36, 36, 34, 34,
		62, 62, 64, 64, 64, 64, 62, 62,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: {
		-40, -26, -18, -12, -12, -18, -26, -40,
		-24, -12, -2, 4, 4, -2, -12, -24,
		-16, 2, 10, 16, 16, 10, 2, -16,
		-10, 8, 16, 22, 22, 16, 8, -10,
		-10, 8, 16, 22, 22, 16, 8, -10,
		-16, 2, 10, 16, 16, 10, 2, -16,
		-24, -12, -2, 4, 4, -2, -12, -24,
		-40, -26, -18, -12, -12, -18, -26, -40,
	},
	board.Bishop: {
		-14, -6, -8, -4, -4, -8, -6, -14,
		-6, 2, 0, 4, 4, 0, 2, -6,
		-4, 4, 6, 8, 8, 6, 4, -4,
		-2, 6, 8, 12, 12, 8, 6, -2,
		-2, 6, 8, 12, 12, 8, 6, -2,
		-4, 4, 6, 8, 8, 6, 4, -4,
		-6, 2, 0, 4, 4, 0, 2, -6,
		-14, -6, -8, -4, -4, -8, -6, -14,
	},
	board.Rook: {
		-4, -2, 0, 0, 0, 0, -2, -4,
		-2, 0, 2, 2, 2, 2, 0, -2,
		-2, 0, 2, 2, 2, 2, 0, -2,
		-2, 0, 2, 2, 2, 2, 0, -2,
		0, 2, 4, 4, 4, 4, 2, 0,
		2, 4, 6, 6, 6, 6, 4, 2,
		8, 10, 12, 12, 12, 12, 10, 8,
		4, 6, 8, 8, 8, 8, 6, 4,
	},
	board.Queen: {
		-18, -12, -8, -4, -4, -8, -12, -18,
		-10, -4, 0, 4, 4, 0, -4, -10,
		-6, 0, 6, 10, 10, 6, 0, -6,
		-4, 4, 10, 14, 14, 10, 4, -4,
		-4, 4, 10, 14, 14, 10, 4, -4,
		-6, 0, 6, 10, 10, 6, 0, -6,
		-10, -4, 0, 4, 4, 0, -4, -10,
		-18, -12, -8, -4, -4, -8, -12, -18,
	},
	board.King: {
		-40, -28, -20, -14, -14, -20, -28, -40,
		-26, -12, -4, 2, 2, -4, -12, -26,
		-18, 0, 10, 16, 16, 10, 0, -18,
		-12, 6, 18, 26, 26, 18, 6, -12,
		-12, 6, 18, 26, 26, 18, 6, -12,
		-18, 0, 10, 16, 16, 10, 0, -18,
		-26, -12, -4, 2, 2, -4, -12, -26,
		-40, -28, -20, -14, -14, -20, -28, -40,
	},
}

// term returns the midgame and endgame contribution of a piece on a
// square, signed positive for white.
func term(pc board.Piece, sq board.Square) (Value, Value) {
	pt := pc.Type()
	rel := board.RelativeSquare(pc.ColorOf(), sq)
	mg := board.PieceValueMG[pt] + psqtMG[pt][rel]
	eg := board.PieceValueEG[pt] + psqtEG[pt][rel]
	if pc.ColorOf() == board.Black {
		return -mg, -eg
	}
	return mg, eg
}

func (e *Eval) add(pc board.Piece, sq board.Square) {
	mg, eg := term(pc, sq)
	e.mg += mg
	e.eg += eg
}

func (e *Eval) remove(pc board.Piece, sq board.Square) {
	mg, eg := term(pc, sq)
	e.mg -= mg
	e.eg -= eg
}

// Reset recomputes the accumulators from scratch.
func (e *Eval) Reset(p *board.Position) {
	e.mg, e.eg = 0, 0
	e.stack = e.stack[:0]
	for b := p.Occupied(); b != 0; {
		sq := board.PopLsb(&b)
		e.add(p.PieceOn(sq), sq)
	}
}

// Push applies the incremental update for a move that was just made.
// Null moves only save the frame.
func (e *Eval) Push(p *board.Position, m board.Move, moved, captured board.Piece) {
	e.stack = append(e.stack, accum{e.mg, e.eg})

	if moved == board.NoPiece {
		return
	}

	us := moved.ColorOf()
	from, to := m.From(), m.To()

	switch m.Kind() {
	case board.Castle:
		kingTo, rookTo := board.RelativeSquare(us, board.G1), board.RelativeSquare(us, board.F1)
		if to < from {
			kingTo, rookTo = board.RelativeSquare(us, board.C1), board.RelativeSquare(us, board.D1)
		}
		rook := board.MakePiece(us, board.Rook)
		e.remove(moved, from)
		e.remove(rook, to)
		e.add(moved, kingTo)
		e.add(rook, rookTo)

	case board.EnPassant:
		e.remove(captured, to-board.Square(board.PawnPush(us)))
		e.remove(moved, from)
		e.add(moved, to)

	case board.Promotion:
		if captured != board.NoPiece {
			e.remove(captured, to)
		}
		e.remove(moved, from)
		e.add(board.MakePiece(us, m.PromotionType()), to)

	default:
		if captured != board.NoPiece {
			e.remove(captured, to)
		}
		e.remove(moved, from)
		e.add(moved, to)
	}
}

// Pop restores the accumulators saved by the matching Push.
func (e *Eval) Pop() {
	top := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	e.mg, e.eg = top.mg, top.eg
}

// Evaluate interpolates the accumulators by game phase and returns the
// score from the side to move's view, clamped inside the mate window.
func (e *Eval) Evaluate(p *board.Position) Value {
	phase := Value(0)
	for pt := board.Knight; pt <= board.Queen; pt++ {
		phase += phaseWeight[pt] * Value(board.PopCount(p.Pieces(pt)))
	}
	phase = clamp(phase, 0, totalPhase)

	v := (e.mg*phase + e.eg*(totalPhase-phase)) / totalPhase
	if p.SideToMove() == board.Black {
		v = -v
	}
	v += tempoBonus

	return clamp(v, ValueMatedInMaxPly+1, ValueMateInMaxPly-1)
}
