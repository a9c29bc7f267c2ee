package board

// SEE runs a static exchange evaluation of the capture sequence on the
// move's destination square, returning the expected material gain in
// midgame centipawns. Special moves and quiet moves score zero.
func (p *Position) SEE(m Move) Value {
	if m.Kind() != Normal {
		return 0
	}

	from, to := m.From(), m.To()
	attacker := p.board[from].Type()
	victim := p.board[to].Type()
	us := p.sideToMove

	if victim == NoPieceType {
		return 0
	}

	// Gains of each capture in the exchange, 32 is the piece maximum.
	var score [32]Value
	depth := 0
	score[0] = PieceValueMG[victim]

	occupied := p.all ^ SquareBB(from) ^ SquareBB(to)

	// Sliders behind the first attacker can join in once it moves.
	horizontal := (p.byType[Rook] | p.byType[Queen]) &^ SquareBB(from)
	diagonal := (p.byType[Bishop] | p.byType[Queen]) &^ SquareBB(from)

	attacks := p.Attackers(to, occupied)

	for {
		depth++
		attacks &= occupied
		us = us.Other()
		active := attacks & p.byColor[us]
		if active == 0 {
			break
		}

		// Least valuable attacker recaptures first.
		var pt PieceType
		for pt = Pawn; pt <= King; pt++ {
			if p.PiecesOf(us, pt)&active != 0 {
				break
			}
		}

		score[depth] = PieceValueMG[attacker] - score[depth-1]

		// Stop early once both sides stand worse by continuing.
		if max(-score[depth-1], score[depth]) < 0 {
			break
		}

		attacker = pt

		s := Lsb(p.PiecesOf(us, pt) & attacks)
		occupied ^= SquareBB(s)

		// Moving the attacker can reveal an x-ray on the target square.
		if pt == Pawn || pt == Bishop || pt == Queen {
			attacks |= AttacksBB(Bishop, to, occupied) & diagonal
		}
		if pt == Rook || pt == Queen {
			attacks |= AttacksBB(Rook, to, occupied) & horizontal
		}
	}

	// Fold the gains backwards, each side may decline to recapture.
	for depth--; depth > 0; depth-- {
		score[depth-1] = -max(-score[depth-1], score[depth])
	}

	return score[0]
}
