package engine

import (
	"golang.org/x/exp/constraints"

	"github.com/trevorblacklock/Stella/board"
)

// Value mirrors the board score type.
type Value = board.Value

// Score constants. Mate scores count plies from the root so that shorter
// mates always compare higher; anything past the max-ply window is "won"
// but of unknown distance.
const (
	ValueZero Value = 0
	ValueDraw Value = 0

	ValueMate     Value = 32000
	ValueInfinite Value = 32001
	ValueNone     Value = 32002

	MaxPly   = 246
	MaxMoves = board.MaxMoves

	ValueMateInMaxPly  = ValueMate - 2*MaxPly
	ValueMatedInMaxPly = -ValueMateInMaxPly
)

// mateIn returns the score for delivering mate at the given ply.
func mateIn(ply int) Value { return ValueMate - Value(ply) }

// matedIn returns the score for being mated at the given ply.
func matedIn(ply int) Value { return -ValueMate + Value(ply) }

func isWin(v Value) bool  { return v >= ValueMateInMaxPly }
func isLoss(v Value) bool { return v <= ValueMatedInMaxPly }

// valueToTT adjusts mate scores from root-relative to node-relative before
// they are stored in the transposition table.
func valueToTT(v Value, ply int) Value {
	if isWin(v) {
		return v + Value(ply)
	}
	if isLoss(v) {
		return v - Value(ply)
	}
	return v
}

// valueFromTT undoes valueToTT and retires mate lines that the fifty-move
// counter could invalidate before the mate arrives.
func valueFromTT(v Value, ply, fiftyRule int) Value {
	if v == ValueNone {
		return ValueNone
	}
	if isWin(v) {
		if ValueMate-v > Value(100-fiftyRule) {
			return ValueMateInMaxPly - 1
		}
		return v - Value(ply)
	}
	if isLoss(v) {
		if ValueMate+v > Value(100-fiftyRule) {
			return ValueMatedInMaxPly + 1
		}
		return v + Value(ply)
	}
	return v
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v Value) Value {
	if v < 0 {
		return -v
	}
	return v
}
