package board

// Move packs a chess move into 16 bits:
//
//	bits 0-5   destination square
//	bits 6-11  origin square
//	bits 12-13 promotion piece type, offset from Knight
//	bits 14-15 move kind
//
// Castling is encoded as king-takes-own-rook so that standard chess and
// Chess960 share one representation. MoveNull has equal origin and
// destination which no real move can have.
type Move uint16

// MoveKind occupies the top two bits of a move.
type MoveKind uint16

const (
	Normal    MoveKind = 0
	Promotion MoveKind = 1 << 14
	EnPassant MoveKind = 2 << 14
	Castle    MoveKind = 3 << 14
)

const (
	MoveNone Move = 0
	MoveNull Move = 65
)

// NewMove builds a normal move.
func NewMove(from, to Square) Move { return Move(from<<6) + Move(to) }

// NewPromotionMove builds a promotion to the given piece type.
func NewPromotionMove(from, to Square, pt PieceType) Move {
	return Move(Promotion) + Move(pt-Knight)<<12 + NewMove(from, to)
}

// NewEnPassantMove builds an en passant capture.
func NewEnPassantMove(from, to Square) Move { return Move(EnPassant) + NewMove(from, to) }

// NewCastleMove builds a castling move from the king and rook squares.
func NewCastleMove(kingFrom, rookFrom Square) Move { return Move(Castle) + NewMove(kingFrom, rookFrom) }

// From returns the origin square.
func (m Move) From() Square { return Square(m>>6) & 63 }

// To returns the destination square.
func (m Move) To() Square { return Square(m) & 63 }

// Kind returns the move kind bits.
func (m Move) Kind() MoveKind { return MoveKind(m) & (3 << 14) }

// PromotionType returns the promotion piece type, Knight when unset.
func (m Move) PromotionType() PieceType { return PieceType(m>>12&3) + Knight }

// IsOK reports whether the move could be a real move; MoveNone and
// MoveNull both fail this check.
func (m Move) IsOK() bool { return m.From() != m.To() }

// Format renders the move in UCI coordinate notation. In standard chess
// castling is printed with the king's true destination, in Chess960 with
// the rook square as mandated by the protocol.
func (m Move) Format(chess960 bool) string {
	if m == MoveNone {
		return "(none)"
	}
	if m == MoveNull {
		return "0000"
	}

	from, to := m.From(), m.To()
	if m.Kind() == Castle && !chess960 {
		if to > from {
			to = MakeSquare(FileG, RankOf(from))
		} else {
			to = MakeSquare(FileC, RankOf(from))
		}
	}

	s := SquareName(from) + SquareName(to)
	if m.Kind() == Promotion {
		s += string(" nbrq"[m.PromotionType()-Knight+1])
	}
	return s
}

// String renders the move assuming standard chess castling.
func (m Move) String() string { return m.Format(false) }
