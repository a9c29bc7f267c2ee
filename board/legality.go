package board

// IsCapture reports whether the move takes a piece. Castling lands the
// king on its own rook and is never a capture.
func (p *Position) IsCapture(m Move) bool {
	return (p.board[m.To()] != NoPiece && m.Kind() != Castle) || m.Kind() == EnPassant
}

// IsPromotion reports whether the move promotes a pawn.
func (p *Position) IsPromotion(m Move) bool { return m.Kind() == Promotion }

// PieceMoved returns the piece sitting on the move's origin square.
func (p *Position) PieceMoved(m Move) Piece { return p.board[m.From()] }

// IsPseudoLegal vets a move against the current position without the king
// safety checks. Needed because hash moves and killers can be stale or
// corrupted and must never reach DoMove unverified.
func (p *Position) IsPseudoLegal(m Move) bool {
	if !m.IsOK() {
		return false
	}

	from, to := m.From(), m.To()
	pc := p.board[from]
	kind := m.Kind()
	us := p.sideToMove
	them := us.Other()

	captured := p.board[to]
	if kind == EnPassant {
		captured = MakePiece(them, Pawn)
	}

	if pc == NoPiece || pc.ColorOf() != us {
		return false
	}
	if captured != NoPiece && captured.ColorOf() != them {
		return false
	}
	if captured.Type() == King {
		return false
	}
	if (kind == Promotion || kind == EnPassant) && pc.Type() != Pawn {
		return false
	}
	if kind == Castle {
		if pc.Type() != King {
			return false
		}
		right := CastleRight(us, from < to)
		if !p.CanCastle(right) || p.CastlingBlocked(right) {
			return false
		}
		if p.castleRookSq[right] != to {
			return false
		}
		return true
	}

	if pc.Type() == Pawn {
		push := Square(PawnPush(us))

		if kind != EnPassant {
			single := from + push
			double := from + 2*push
			attacks := PawnAttacks(us, from)

			if to != single && to != double && attacks&SquareBB(to) == 0 {
				return false
			}
			if to == single && !p.Empty(to) {
				return false
			}
			if to == double {
				if RelativeRank(us, from) != Rank2 || RelativeRank(us, to) != Rank4 {
					return false
				}
				if !p.Empty(single) || !p.Empty(to) {
					return false
				}
			}
			// Diagonal steps need a capture, straight steps forbid one.
			if attacks&SquareBB(to) != 0 && captured == NoPiece {
				return false
			}
			if attacks&SquareBB(to) == 0 && captured != NoPiece {
				return false
			}
			if kind == Promotion && (RelativeRank(us, to) != Rank8 || RelativeRank(us, from) != Rank7) {
				return false
			}
			if kind != Promotion && RelativeRank(us, to) == Rank8 {
				return false
			}
		} else {
			if p.EpSquare() != to {
				return false
			}
			if p.board[to-push] != MakePiece(them, Pawn) || RelativeRank(us, to) != Rank6 {
				return false
			}
			if PawnAttacks(us, from)&SquareBB(to) == 0 {
				return false
			}
		}
		return true
	}

	if PseudoAttack(pc.Type(), from)&SquareBB(to) == 0 {
		return false
	}
	if pc.Type() != Knight && pc.Type() != King &&
		(BetweenBB(from, to)^SquareBB(to))&p.all != 0 {
		return false
	}

	return true
}

// IsLegal checks king safety for a pseudo-legal move: pins, en passant
// discoveries, castling through attacks and king walks along check rays.
func (p *Position) IsLegal(m Move) bool {
	us := p.sideToMove
	them := us.Other()
	ks := p.KingSq(us)
	from, to := m.From(), m.To()
	kind := m.Kind()
	pc := p.PieceMoved(m)

	if kind == EnPassant {
		captureSq := to - Square(PawnPush(us))
		occ := (p.all ^ SquareBB(from) ^ SquareBB(captureSq)) | SquareBB(to)

		return AttacksBB(Rook, ks, occ)&(p.PiecesOf(them, Rook)|p.PiecesOf(them, Queen)) == 0 &&
			AttacksBB(Bishop, ks, occ)&(p.PiecesOf(them, Bishop)|p.PiecesOf(them, Queen)) == 0
	}

	if kind == Castle {
		if p.Checks() != 0 {
			return false
		}
		d := East
		kingTo := RelativeSquare(us, G1)
		if to < from {
			d = West
			kingTo = RelativeSquare(us, C1)
		}
		for s := from + Square(d); s != kingTo+Square(d); s += Square(d) {
			if p.Attackers(s, p.all)&p.byColor[them] != 0 {
				return false
			}
		}
		return true
	}

	if pc.Type() == King {
		return p.Attackers(to, p.all^SquareBB(from))&p.byColor[them] == 0
	}

	// A pinned piece may only move along the pin ray, and never while in
	// check since it cannot block and keep shielding at once.
	if p.Blockers(us)&SquareBB(from) != 0 {
		return Aligned(from, to, ks) && p.Checks() == 0
	}

	switch PopCount(p.Checks()) {
	case 0:
		return true
	case 1:
		return BetweenBB(ks, Lsb(p.Checks()))&SquareBB(to) != 0
	}
	return false
}

// GivesCheck reports whether the move checks the enemy king, including
// discovered, en passant, promotion and castling checks.
func (p *Position) GivesCheck(m Move) bool {
	us := p.sideToMove
	them := us.Other()
	eks := p.KingSq(them)
	from, to := m.From(), m.To()
	pt := p.board[from].Type()

	// Direct checks from the destination square.
	if m.Kind() == Normal || m.Kind() == EnPassant {
		if p.CheckSquares(pt)&SquareBB(to) != 0 {
			return true
		}
	}

	// Discovered checks: the mover shields the enemy king and leaves the ray.
	if p.Blockers(them)&SquareBB(from) != 0 && !Aligned(from, to, eks) {
		return true
	}

	switch m.Kind() {
	case Promotion:
		occ := p.all ^ SquareBB(from)
		return AttacksBB(m.PromotionType(), to, occ)&SquareBB(eks) != 0

	case EnPassant:
		captureSq := to - Square(PawnPush(us))
		occ := (p.all ^ SquareBB(from) ^ SquareBB(captureSq)) | SquareBB(to)
		return AttacksBB(Rook, eks, occ)&(p.PiecesOf(us, Rook)|p.PiecesOf(us, Queen)) != 0 ||
			AttacksBB(Bishop, eks, occ)&(p.PiecesOf(us, Bishop)|p.PiecesOf(us, Queen)) != 0

	case Castle:
		rookTo := RelativeSquare(us, D1)
		kingTo := RelativeSquare(us, C1)
		if to > from {
			rookTo = RelativeSquare(us, F1)
			kingTo = RelativeSquare(us, G1)
		}
		occ := p.all ^ SquareBB(from) ^ SquareBB(to) | SquareBB(kingTo) | SquareBB(rookTo)
		return AttacksBB(Rook, rookTo, occ)&SquareBB(eks) != 0
	}

	return false
}
