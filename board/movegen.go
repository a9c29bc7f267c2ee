package board

// MaxMoves bounds the number of moves in any reachable position.
const MaxMoves = 256

// MoveList is a fixed-capacity move buffer with parallel ordering scores.
type MoveList struct {
	Moves  [MaxMoves]Move
	Scores [MaxMoves]Value
	Size   int
}

// Add appends a move with a zero score.
func (ml *MoveList) Add(m Move) {
	ml.Moves[ml.Size] = m
	ml.Size++
}

// Clear empties the list.
func (ml *MoveList) Clear() { ml.Size = 0 }

// GenerateCaptures appends every pseudo-legal capture and promotion. The
// mask restricts destinations for non-king pieces; when in check the
// caller passes the checker-and-block ray so only useful moves appear.
// Push promotions count as captures here so quiescence sees them.
func (p *Position) GenerateCaptures(ml *MoveList, mask Bitboard) {
	p.generatePawns(ml, mask, true)
	for pt := Knight; pt <= King; pt++ {
		p.generatePiece(ml, mask, pt, true)
	}
}

// GenerateQuiets appends every pseudo-legal non-capture except promotions,
// including castling when not in check.
func (p *Position) GenerateQuiets(ml *MoveList, mask Bitboard) {
	p.generatePawns(ml, mask, false)
	for pt := Knight; pt <= King; pt++ {
		p.generatePiece(ml, mask, pt, false)
	}
}

func (p *Position) generatePawns(ml *MoveList, mask Bitboard, captures bool) {
	us := p.sideToMove
	them := us.Other()

	pawns := p.PiecesOf(us, Pawn)
	seventh := Rank7BB
	third := Rank3BB
	if us == Black {
		seventh = Rank2BB
		third = Rank6BB
	}
	onSeventh := pawns & seventh
	notSeventh := pawns &^ seventh

	enemy := p.byColor[them]
	empty := ^p.all

	north := PawnPush(us)
	east := NorthEast
	west := NorthWest
	if us == Black {
		east = SouthWest
		west = SouthEast
	}

	if !captures {
		pawnMask := mask & empty

		single := Shift(notSeventh, north) & empty
		double := Shift(single&third, north) & pawnMask
		single &= pawnMask

		for single != 0 {
			to := PopLsb(&single)
			ml.Add(NewMove(to-Square(north), to))
		}
		for double != 0 {
			to := PopLsb(&double)
			ml.Add(NewMove(to-2*Square(north), to))
		}
		return
	}

	pawnMask := mask & enemy
	promoMask := mask & empty

	b := Shift(notSeventh, east) & pawnMask
	for b != 0 {
		to := PopLsb(&b)
		ml.Add(NewMove(to-Square(east), to))
	}
	b = Shift(notSeventh, west) & pawnMask
	for b != 0 {
		to := PopLsb(&b)
		ml.Add(NewMove(to-Square(west), to))
	}

	addPromotions := func(to Square, delta int) {
		for pt := Knight; pt <= Queen; pt++ {
			ml.Add(NewPromotionMove(to-Square(delta), to, pt))
		}
	}

	b = Shift(onSeventh, north) & promoMask
	for b != 0 {
		addPromotions(PopLsb(&b), north)
	}
	b = Shift(onSeventh, east) & pawnMask
	for b != 0 {
		addPromotions(PopLsb(&b), east)
	}
	b = Shift(onSeventh, west) & pawnMask
	for b != 0 {
		addPromotions(PopLsb(&b), west)
	}

	if ep := p.EpSquare(); ep != SqNone {
		b = notSeventh & PawnAttacks(them, ep)
		for b != 0 {
			ml.Add(NewEnPassantMove(PopLsb(&b), ep))
		}
	}
}

func (p *Position) generatePiece(ml *MoveList, mask Bitboard, pt PieceType, captures bool) {
	us := p.sideToMove
	enemy := p.byColor[us.Other()]
	empty := ^p.all

	if pt == King {
		// King moves dodge the mask: with the king attacked the mask only
		// covers blocking squares, which do not apply to the king itself.
		kingMask := empty
		if captures {
			kingMask = enemy
		}

		from := p.KingSq(us)
		attacks := AttacksBB(King, from, 0) & kingMask
		for attacks != 0 {
			ml.Add(NewMove(from, PopLsb(&attacks)))
		}

		if !captures && p.Checks() == 0 {
			for _, kingSide := range [2]bool{true, false} {
				right := CastleRight(us, kingSide)
				if p.CanCastle(right) && !p.CastlingBlocked(right) {
					ml.Add(NewCastleMove(from, p.castleRookSq[right]))
				}
			}
		}
		return
	}

	pieceMask := mask & empty
	if captures {
		pieceMask = mask & enemy
	}

	pieces := p.PiecesOf(us, pt)
	for pieces != 0 {
		from := PopLsb(&pieces)
		attacks := AttacksBB(pt, from, p.all) & pieceMask
		for attacks != 0 {
			ml.Add(NewMove(from, PopLsb(&attacks)))
		}
	}
}
