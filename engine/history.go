package engine

import "github.com/trevorblacklock/Stella/board"

// History entry caps. The saturating update keeps every entry inside
// [-cap, cap] as long as bonuses never exceed the cap themselves.
const (
	butterflyCap    Value = 7000
	captureCap      Value = 10000
	continuationCap Value = 25000

	goodQuietFloor Value = -10000
)

// History holds the per-thread move ordering statistics: killer moves,
// butterfly history, a ply-keyed continuation history, capture history and
// the static eval trend used for the improving heuristic.
type History struct {
	killers      [board.ColorNB][MaxPly + 2][2]board.Move
	butterfly    [board.ColorNB][board.SquareNB][board.SquareNB]Value
	continuation [MaxPly + 8][board.PieceNB][board.SquareNB]Value
	capture      [board.PieceNB][board.SquareNB][board.PieceTypeNB]Value
	evals        [board.ColorNB][MaxPly]Value
}

// NewHistory returns zeroed statistics.
func NewHistory() *History { return &History{} }

// Clear wipes every table.
func (h *History) Clear() { *h = History{} }

// saturatingAdd nudges an entry toward the bonus while decaying it in
// proportion to its current magnitude: entry += bonus - entry*|bonus|/cap.
func saturatingAdd(entry *Value, bonus, limit Value) {
	b := clamp(bonus, -limit, limit)
	*entry += b - *entry*abs32(b)/limit
}

// GetKiller returns killer id (0 or 1) for a side and ply.
func (h *History) GetKiller(side board.Color, ply, id int) board.Move {
	return h.killers[side][ply][id]
}

// SetKiller shifts a new killer in, keeping the previous as second choice.
func (h *History) SetKiller(side board.Color, m board.Move, ply int) {
	if h.killers[side][ply][0] != m {
		h.killers[side][ply][1] = h.killers[side][ply][0]
		h.killers[side][ply][0] = m
	}
}

// IsKiller reports whether the move is one of the two killers at this ply.
func (h *History) IsKiller(side board.Color, m board.Move, ply int) bool {
	return m == h.killers[side][ply][0] || m == h.killers[side][ply][1]
}

// ClearKillersGrandchildren resets the killers two plies below so stale
// moves from sibling subtrees do not leak into fresh branches.
func (h *History) ClearKillersGrandchildren(side board.Color, ply int) {
	h.killers[side][ply+1][0] = board.MoveNone
	h.killers[side][ply+1][1] = board.MoveNone
}

// GetButterfly returns the from-to history of a quiet move.
func (h *History) GetButterfly(side board.Color, m board.Move) Value {
	return h.butterfly[side][m.From()][m.To()]
}

// UpdateButterfly applies a saturating bonus to the from-to history.
func (h *History) UpdateButterfly(side board.Color, m board.Move, bonus Value) {
	saturatingAdd(&h.butterfly[side][m.From()][m.To()], bonus, butterflyCap)
}

// GetCapture returns the capture history for a piece landing on a square
// taking the given victim type.
func (h *History) GetCapture(pc board.Piece, to board.Square, victim board.PieceType) Value {
	return h.capture[pc][to][victim]
}

// UpdateCapture applies a saturating bonus to the capture history.
func (h *History) UpdateCapture(pc board.Piece, to board.Square, victim board.PieceType, bonus Value) {
	saturatingAdd(&h.capture[pc][to][victim], bonus, captureCap)
}

// GetContinuation returns the continuation history of a piece landing on a
// square at the given ply. Plies down to -7 are valid so lookups near the
// root need no guards.
func (h *History) GetContinuation(pc board.Piece, sq board.Square, ply int) Value {
	return h.continuation[ply+7][pc][sq]
}

// UpdateContinuation applies a saturating bonus to the continuation history.
func (h *History) UpdateContinuation(pc board.Piece, sq board.Square, ply int, bonus Value) {
	saturatingAdd(&h.continuation[ply+7][pc][sq], bonus, continuationCap)
}

// GetEval returns the recorded static eval for a side at a ply.
func (h *History) GetEval(side board.Color, ply int) Value { return h.evals[side][ply] }

// SetEval records the static eval for a side at a ply.
func (h *History) SetEval(side board.Color, ply int, v Value) { h.evals[side][ply] = v }

// IsImproving reports whether the static eval beats the one from two plies
// earlier, which loosens pruning when the position is trending our way.
// Plies spent in check record no eval, so those fall back two more plies.
func (h *History) IsImproving(side board.Color, ply int, v Value) bool {
	if ply >= 2 && h.evals[side][ply-2] != ValueNone {
		return v > h.evals[side][ply-2]
	}
	if ply >= 4 && h.evals[side][ply-4] != ValueNone {
		return v > h.evals[side][ply-4]
	}
	return false
}

// GetHistory scores a move for ordering. Captures rank by victim value and
// capture history; quiets combine butterfly and continuation history with
// bonuses for giving check and for fleeing a cheap attacker, and penalties
// for stepping into one.
func (h *History) GetHistory(pos *board.Position, m board.Move, ply int) Value {
	us := pos.SideToMove()
	them := us.Other()
	from, to := m.From(), m.To()
	pc := pos.PieceOn(from)
	pt := pc.Type()

	if pos.IsCapture(m) {
		victim := pos.PieceOn(to)
		if m.Kind() == board.EnPassant {
			victim = board.MakePiece(them, board.Pawn)
		}
		return 10*board.PieceValue(victim) + h.GetCapture(pc, to, victim.Type())
	}

	threatByPawn := pos.AttacksBy(them, board.Pawn)
	threatByMinor := pos.AttacksBy(them, board.Knight) | pos.AttacksBy(them, board.Bishop) | threatByPawn
	threatByRook := pos.AttacksBy(them, board.Rook) | threatByMinor

	threatened := (pos.PiecesOf(us, board.Queen) & threatByRook) |
		(pos.PiecesOf(us, board.Rook) & threatByMinor) |
		((pos.PiecesOf(us, board.Bishop) | pos.PiecesOf(us, board.Knight)) & threatByPawn)

	v := 2*h.GetButterfly(us, m) +
		h.GetContinuation(pc, to, ply-1) +
		h.GetContinuation(pc, to, ply-2) +
		h.GetContinuation(pc, to, ply-3) +
		h.GetContinuation(pc, to, ply-4)/3 +
		h.GetContinuation(pc, to, ply-6)

	if pos.CheckSquares(pt)&board.SquareBB(to) != 0 {
		v += 16000
	}

	toBB := board.SquareBB(to)
	if threatened&board.SquareBB(from) != 0 {
		switch {
		case pt == board.Queen && threatByRook&toBB == 0:
			v += 50000
		case pt == board.Rook && threatByMinor&toBB == 0:
			v += 25000
		case threatByPawn&toBB == 0:
			v += 15000
		}
	}

	switch {
	case pt == board.Queen && threatByRook&toBB != 0:
		v -= 50000
	case pt == board.Rook && threatByMinor&toBB != 0:
		v -= 25000
	}

	return v
}
