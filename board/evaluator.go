package board

// Evaluator scores positions for the search. Implementations may keep
// incremental state: Push is called after every move is applied (with a
// null move and no pieces for null moves), Pop after every take-back, and
// Reset whenever the position is replaced wholesale.
//
// Evaluate returns the score from the side to move's point of view and
// must stay strictly inside the mate score window.
type Evaluator interface {
	Evaluate(p *Position) Value
	Push(p *Position, m Move, moved, captured Piece)
	Pop()
	Reset(p *Position)
}
