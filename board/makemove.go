package board

// DoMove applies a pseudo-legal, legal move and pushes a new state. The
// caller must have vetted the move with IsLegal first.
func (p *Position) DoMove(m Move) {
	prev := *p.st()
	p.states = append(p.states, StateInfo{
		Key:             prev.Key,
		CastlingRights:  prev.CastlingRights,
		FiftyRule:       prev.FiftyRule,
		PliesFromNull:   prev.PliesFromNull,
		EpSquare:        SqNone,
		NonPawnMaterial: prev.NonPawnMaterial,
		Played:          m,
	})
	st := p.st()

	from, to := m.From(), m.To()
	pc := p.board[from]
	us := p.sideToMove
	them := us.Other()
	kind := m.Kind()

	captured := p.board[to]
	if kind == EnPassant {
		captured = MakePiece(them, Pawn)
	}

	p.gamePly++
	st.FiftyRule++
	st.PliesFromNull++

	// Castling is encoded king-takes-own-rook, so both pieces come off the
	// board before either lands. The squares can overlap in Chess960.
	if kind == Castle {
		kingFrom, rookFrom := from, to
		var kingTo, rookTo Square
		if to > from {
			kingTo, rookTo = RelativeSquare(us, G1), RelativeSquare(us, F1)
		} else {
			kingTo, rookTo = RelativeSquare(us, C1), RelativeSquare(us, D1)
		}

		rook := p.board[rookFrom]
		p.popPiece(kingFrom)
		p.popPiece(rookFrom)
		p.setPiece(pc, kingTo)
		p.setPiece(rook, rookTo)

		st.Key ^= zobPieces[pc][kingFrom] ^ zobPieces[pc][kingTo] ^
			zobPieces[rook][rookFrom] ^ zobPieces[rook][rookTo]

		captured = NoPiece

		st.Key ^= zobCastling[st.CastlingRights]
		st.CastlingRights &^= p.castleMask[kingFrom] | p.castleMask[kingTo]
		st.Key ^= zobCastling[st.CastlingRights]
	}

	if captured != NoPiece {
		captureSq := to
		if kind == EnPassant {
			captureSq -= Square(PawnPush(us))
		}
		p.popPiece(captureSq)
		st.FiftyRule = 0
		st.Key ^= zobPieces[captured][captureSq]
		if captured.Type() != Pawn {
			st.NonPawnMaterial[them] -= PieceValue(captured)
		}
	}

	if prev.EpSquare != SqNone {
		st.Key ^= zobEnPassant[FileOf(prev.EpSquare)]
	}

	if kind != Castle && st.CastlingRights != 0 && p.castleMask[from]|p.castleMask[to] != 0 {
		st.Key ^= zobCastling[st.CastlingRights]
		st.CastlingRights &^= p.castleMask[from] | p.castleMask[to]
		st.Key ^= zobCastling[st.CastlingRights]
	}

	if kind != Castle {
		p.movePiece(from, to)
		st.Key ^= zobPieces[pc][from] ^ zobPieces[pc][to]
	}

	if pc.Type() == Pawn {
		if to-from == Square(2*PawnPush(us)) {
			st.EpSquare = to - Square(PawnPush(us))
			st.Key ^= zobEnPassant[FileOf(st.EpSquare)]
		} else if kind == Promotion {
			promo := MakePiece(us, m.PromotionType())
			p.popPiece(to)
			p.setPiece(promo, to)
			st.Key ^= zobPieces[pc][to] ^ zobPieces[promo][to]
			st.NonPawnMaterial[us] += PieceValue(promo)
		}
		st.FiftyRule = 0
	}

	st.Captured = captured

	p.sideToMove = them
	st.Key ^= zobSide

	p.update()

	// A position repeats when the same key occurred an even number of
	// plies ago, bounded by the last irreversible move or null move.
	st.Repetition = false
	if limit := min(st.FiftyRule, st.PliesFromNull); limit >= 4 {
		end := len(p.states) - 1 - limit
		for idx := len(p.states) - 5; idx >= end && idx >= 0; idx -= 2 {
			if p.states[idx].Key == st.Key {
				st.Repetition = true
				break
			}
		}
	}

	if p.eval != nil {
		p.eval.Push(p, m, pc, captured)
	}
}

// UndoMove reverses the last move, which must be the one passed in.
func (p *Position) UndoMove(m Move) {
	p.gamePly--
	p.sideToMove = p.sideToMove.Other()

	us := p.sideToMove
	from, to := m.From(), m.To()
	kind := m.Kind()
	captured := p.st().Captured

	if kind == Promotion {
		p.popPiece(to)
		p.setPiece(MakePiece(us, Pawn), to)
	}

	if kind == Castle {
		var kingFrom, rookFrom Square
		if to > from {
			kingFrom, rookFrom = RelativeSquare(us, G1), RelativeSquare(us, F1)
		} else {
			kingFrom, rookFrom = RelativeSquare(us, C1), RelativeSquare(us, D1)
		}

		rook := MakePiece(us, Rook)
		p.popPiece(kingFrom)
		p.popPiece(rookFrom)
		p.setPiece(MakePiece(us, King), from)
		p.setPiece(rook, to)
	} else {
		p.movePiece(to, from)

		if captured != NoPiece {
			captureSq := to
			if kind == EnPassant {
				captureSq -= Square(PawnPush(us))
			}
			p.setPiece(captured, captureSq)
		}
	}

	p.states = p.states[:len(p.states)-1]

	if p.eval != nil {
		p.eval.Pop()
	}
}

// DoNull plays a null move: only the side to move and en passant rights
// change. Used by null-move pruning, never when in check.
func (p *Position) DoNull() {
	prev := *p.st()
	p.states = append(p.states, StateInfo{
		Key:             prev.Key,
		CastlingRights:  prev.CastlingRights,
		FiftyRule:       prev.FiftyRule + 1,
		PliesFromNull:   0,
		EpSquare:        SqNone,
		NonPawnMaterial: prev.NonPawnMaterial,
		Played:          MoveNull,
	})
	st := p.st()

	if prev.EpSquare != SqNone {
		st.Key ^= zobEnPassant[FileOf(prev.EpSquare)]
	}

	p.sideToMove = p.sideToMove.Other()
	st.Key ^= zobSide

	p.update()

	if p.eval != nil {
		p.eval.Push(p, MoveNull, NoPiece, NoPiece)
	}
}

// UndoNull reverses a null move.
func (p *Position) UndoNull() {
	p.sideToMove = p.sideToMove.Other()
	p.states = p.states[:len(p.states)-1]

	if p.eval != nil {
		p.eval.Pop()
	}
}

// IsDraw reports a draw by the fifty-move rule or repetition. A mate
// delivered exactly on the hundredth halfmove still counts as mate.
func (p *Position) IsDraw() bool {
	st := p.st()
	if st.FiftyRule > 99 && st.Checks == 0 {
		return true
	}
	return st.Repetition
}
