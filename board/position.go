package board

// StateInfo carries everything about a position that cannot be recomputed
// cheaply when a move is taken back. One entry is pushed per move.
type StateInfo struct {
	Key            uint64
	CastlingRights uint8
	FiftyRule      int
	PliesFromNull  int
	Repetition     bool
	Captured       Piece
	EpSquare       Square
	Played         Move

	Checks       Bitboard
	Blockers     [ColorNB]Bitboard
	Pinners      [ColorNB]Bitboard
	CheckSquares [PieceTypeNB]Bitboard

	NonPawnMaterial [ColorNB]Value
}

// Position is a full game state: piece placement, side to move, castling
// metadata and the stack of per-move states. It is not safe for concurrent
// use; the search clones one per thread.
type Position struct {
	byType  [PieceTypeNB]Bitboard
	byColor [ColorNB]Bitboard
	all     Bitboard
	board   [SquareNB]Piece

	sideToMove Color
	gamePly    int
	chess960   bool

	castleMask   [SquareNB]uint8
	castleRookSq [CastleRightNB]Square
	castlePath   [CastleRightNB]Bitboard

	states []StateInfo
	eval   Evaluator
}

// st returns the current state, the top of the state stack.
func (p *Position) st() *StateInfo { return &p.states[len(p.states)-1] }

func (p *Position) prev() *StateInfo { return &p.states[len(p.states)-2] }

// SideToMove returns the color to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// Key returns the zobrist hash of the current position.
func (p *Position) Key() uint64 { return p.st().Key }

// Occupied returns all occupied squares.
func (p *Position) Occupied() Bitboard { return p.all }

// OccupiedBy returns the squares occupied by one side.
func (p *Position) OccupiedBy(c Color) Bitboard { return p.byColor[c] }

// Pieces returns all pieces of a type regardless of color.
func (p *Position) Pieces(pt PieceType) Bitboard { return p.byType[pt] }

// PiecesOf returns the pieces of one type and color.
func (p *Position) PiecesOf(c Color, pt PieceType) Bitboard {
	return p.byType[pt] & p.byColor[c]
}

// PieceOn returns the piece on a square, NoPiece when empty.
func (p *Position) PieceOn(s Square) Piece { return p.board[s] }

// Empty reports whether a square is empty.
func (p *Position) Empty(s Square) bool { return p.board[s] == NoPiece }

// KingSq returns the king square for a side.
func (p *Position) KingSq(c Color) Square { return Lsb(p.PiecesOf(c, King)) }

// Checks returns the pieces giving check to the side to move.
func (p *Position) Checks() Bitboard { return p.st().Checks }

// Blockers returns the pieces shielding the given side's king from sliders.
func (p *Position) Blockers(c Color) Bitboard { return p.st().Blockers[c] }

// Pinners returns the enemy sliders pinning pieces against the given king.
func (p *Position) Pinners(c Color) Bitboard { return p.st().Pinners[c] }

// CheckSquares returns the squares from which a piece of the given type
// would check the enemy king.
func (p *Position) CheckSquares(pt PieceType) Bitboard { return p.st().CheckSquares[pt] }

// EpSquare returns the en passant target square, SqNone when unavailable.
func (p *Position) EpSquare() Square { return p.st().EpSquare }

// FiftyRule returns the halfmove clock.
func (p *Position) FiftyRule() int { return p.st().FiftyRule }

// Captured returns the piece captured by the last move.
func (p *Position) Captured() Piece { return p.st().Captured }

// NonPawnMaterial returns the summed non-pawn piece values for a side.
func (p *Position) NonPawnMaterial(c Color) Value { return p.st().NonPawnMaterial[c] }

// GamePly returns the number of halfmoves played from the start position.
func (p *Position) GamePly() int { return p.gamePly }

// IsChess960 reports whether Chess960 castling rules are in effect.
func (p *Position) IsChess960() bool { return p.chess960 }

// LastMove returns the move that produced the current position.
func (p *Position) LastMove() Move { return p.st().Played }

// CanCastle reports whether any of the rights bits are still available.
func (p *Position) CanCastle(rights uint8) bool { return p.st().CastlingRights&rights != 0 }

// CastleRookSquare returns the rook origin square for a single right.
func (p *Position) CastleRookSquare(right uint8) Square { return p.castleRookSq[right] }

// CastlingBlocked reports whether the king or rook path is occupied.
func (p *Position) CastlingBlocked(right uint8) bool {
	return p.castlePath[right]&p.all != 0
}

// SetEvaluator attaches an evaluator whose incremental hooks will be
// driven by DoMove and UndoMove. A nil evaluator detaches.
func (p *Position) SetEvaluator(ev Evaluator) {
	p.eval = ev
	if ev != nil {
		ev.Reset(p)
	}
}

// Evaluator returns the attached evaluator, nil when none is set.
func (p *Position) Evaluator() Evaluator { return p.eval }

// Clone returns a deep copy sharing no mutable state. The evaluator is
// not carried over since evaluators are per-thread.
func (p *Position) Clone() *Position {
	c := *p
	c.states = make([]StateInfo, len(p.states), len(p.states)+64)
	copy(c.states, p.states)
	c.eval = nil
	return &c
}

// setPiece places a piece on an empty square and updates the bitboards.
func (p *Position) setPiece(pc Piece, s Square) {
	p.board[s] = pc
	b := SquareBB(s)
	p.byType[pc.Type()] |= b
	p.byColor[pc.ColorOf()] |= b
	p.all |= b
}

// popPiece removes the piece from a square.
func (p *Position) popPiece(s Square) {
	pc := p.board[s]
	p.board[s] = NoPiece
	b := SquareBB(s)
	p.byType[pc.Type()] ^= b
	p.byColor[pc.ColorOf()] ^= b
	p.all ^= b
}

// movePiece moves a piece between squares, destination must be empty.
func (p *Position) movePiece(from, to Square) {
	pc := p.board[from]
	b := SquareBB(from) | SquareBB(to)
	p.byType[pc.Type()] ^= b
	p.byColor[pc.ColorOf()] ^= b
	p.all ^= b
	p.board[from] = NoPiece
	p.board[to] = pc
}

// setCastlingRights registers one castling right given the rook square.
func (p *Position) setCastlingRights(c Color, rookSquare Square) {
	kingFrom := p.KingSq(c)
	right := CastleRight(c, kingFrom < rookSquare)

	p.st().CastlingRights |= right
	p.castleMask[kingFrom] |= right
	p.castleMask[rookSquare] |= right
	p.castleRookSq[right] = rookSquare

	var kingTo, rookTo Square
	if right&KingSideRights != 0 {
		kingTo, rookTo = RelativeSquare(c, G1), RelativeSquare(c, F1)
	} else {
		kingTo, rookTo = RelativeSquare(c, C1), RelativeSquare(c, D1)
	}

	p.castlePath[right] = (BetweenBB(rookSquare, rookTo) | BetweenBB(kingFrom, kingTo)) &^
		(SquareBB(kingFrom) | SquareBB(rookSquare))
}

// update recomputes the check, pin and check-square information for the
// current state. Called after every make, unmake and FEN load.
func (p *Position) update() {
	st := p.st()
	us := p.sideToMove
	them := us.Other()

	for _, c := range [2]Color{White, Black} {
		ks := p.KingSq(c)
		enemy := c.Other()

		lateral := p.PiecesOf(enemy, Rook) | p.PiecesOf(enemy, Queen)
		diagonal := p.PiecesOf(enemy, Bishop) | p.PiecesOf(enemy, Queen)

		// Sliders that would see the king on an empty board. Pieces of
		// either color between the two are blockers; only a blocker of the
		// king's own color makes the sniper a pinner.
		snipers := (PseudoAttack(Rook, ks) & lateral) |
			(PseudoAttack(Bishop, ks) & diagonal)

		var checkers, blockers, pinners Bitboard
		if c == us {
			checkers = (PawnAttacks(us, ks) & p.PiecesOf(them, Pawn)) |
				(AttacksBB(Knight, ks, 0) & p.PiecesOf(them, Knight))
		}

		for snipers != 0 {
			s := PopLsb(&snipers)
			between := BetweenBB(ks, s) &^ SquareBB(s) & p.all
			switch PopCount(between) {
			case 0:
				checkers |= SquareBB(s)
			case 1:
				blockers |= between
				if between&p.byColor[c] != 0 {
					pinners |= SquareBB(s)
				}
			}
		}

		st.Blockers[c] = blockers
		st.Pinners[c] = pinners
		if c == us {
			st.Checks = checkers
		}
	}

	eks := p.KingSq(them)
	st.CheckSquares[Pawn] = PawnAttacks(them, eks)
	st.CheckSquares[Knight] = AttacksBB(Knight, eks, 0)
	st.CheckSquares[Bishop] = AttacksBB(Bishop, eks, p.all)
	st.CheckSquares[Rook] = AttacksBB(Rook, eks, p.all)
	st.CheckSquares[Queen] = st.CheckSquares[Rook] | st.CheckSquares[Bishop]
	st.CheckSquares[King] = 0
}

// Attackers returns every piece of either color attacking a square given
// an occupancy board.
func (p *Position) Attackers(s Square, occ Bitboard) Bitboard {
	return (PawnAttacks(White, s) & p.PiecesOf(Black, Pawn)) |
		(PawnAttacks(Black, s) & p.PiecesOf(White, Pawn)) |
		(AttacksBB(Knight, s, 0) & p.byType[Knight]) |
		(AttacksBB(Bishop, s, occ) & (p.byType[Bishop] | p.byType[Queen])) |
		(AttacksBB(Rook, s, occ) & (p.byType[Rook] | p.byType[Queen])) |
		(AttacksBB(King, s, 0) & p.byType[King])
}

// AttacksBy returns every square attacked by the given side's pieces of
// one type on the current occupancy.
func (p *Position) AttacksBy(c Color, pt PieceType) Bitboard {
	pieces := p.PiecesOf(c, pt)
	if pt == Pawn {
		return PawnAttacksFrom(c, pieces)
	}
	var threat Bitboard
	for pieces != 0 {
		threat |= AttacksBB(pt, PopLsb(&pieces), p.all)
	}
	return threat
}
