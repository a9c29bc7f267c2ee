package board

// Value is the score type used across the board and engine packages.
// Scores are centipawn based and kept well inside the int32 range so that
// history and ordering arithmetic never overflows.
type Value = int32

// Color of a side, white moves first.
type Color uint8

const (
	White Color = iota
	Black
	ColorNB
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

// PieceType ignores color. NoPieceType doubles as the "no capture" marker.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	PieceTypeNB
)

// Piece packs a color and a piece type into one byte: color<<3 | type.
type Piece uint8

const (
	NoPiece Piece = 0

	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 9
	BlackKnight Piece = 10
	BlackBishop Piece = 11
	BlackRook   Piece = 12
	BlackQueen  Piece = 13
	BlackKing   Piece = 14

	PieceNB = 16
)

// MakePiece builds a piece from a color and type.
func MakePiece(c Color, pt PieceType) Piece { return Piece(uint8(c)<<3 | uint8(pt)) }

// Type strips the color bit from a piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// ColorOf returns the color of the piece. Only valid for real pieces.
func (p Piece) ColorOf() Color { return Color(p >> 3) }

// pieceChars maps piece values to their FEN characters, '.' marks empty.
const pieceChars = ".PNBRQK  pnbrqk"

// Char returns the FEN character for the piece.
func (p Piece) Char() byte { return pieceChars[p] }

// PieceFromChar converts a FEN character into a piece, NoPiece if unknown.
func PieceFromChar(ch byte) Piece {
	for i := 1; i < len(pieceChars); i++ {
		if pieceChars[i] == ch {
			return Piece(i)
		}
	}
	return NoPiece
}

// Square indexes the board from A1=0 to H8=63, little endian rank-file.
type Square int

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	SqNone   Square = 64
	SquareNB        = 64
)

// Direction deltas applied to squares.
const (
	North = 8
	South = -8
	East  = 1
	West  = -1

	NorthEast = North + East
	NorthWest = North + West
	SouthEast = South + East
	SouthWest = South + West
)

// File and rank constants.
const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileNB
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	RankNB
)

// MakeSquare builds a square from a file and rank.
func MakeSquare(file, rank int) Square { return Square(rank*8 + file) }

// FileOf returns the file of a square, 0 for the a-file.
func FileOf(s Square) int { return int(s) & 7 }

// RankOf returns the rank of a square, 0 for the first rank.
func RankOf(s Square) int { return int(s) >> 3 }

// SquareOK reports whether the square lies on the board.
func SquareOK(s Square) bool { return s >= A1 && s <= H8 }

// RelativeSquare flips the square vertically for black.
func RelativeSquare(c Color, s Square) Square { return s ^ Square(56*uint8(c)) }

// RelativeRank returns the rank of a square from the given side's view.
func RelativeRank(c Color, s Square) int { return RankOf(RelativeSquare(c, s)) }

// PawnPush is the forward direction for the given side.
func PawnPush(c Color) int {
	if c == White {
		return North
	}
	return South
}

// SquareName renders a square in coordinate notation.
func SquareName(s Square) string {
	if !SquareOK(s) {
		return "-"
	}
	return string([]byte{byte('a' + FileOf(s)), byte('1' + RankOf(s))})
}

// SquareFromName parses coordinate notation, SqNone on failure.
func SquareFromName(name string) Square {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return SqNone
	}
	return MakeSquare(int(name[0]-'a'), int(name[1]-'1'))
}

// Castling rights, one bit per side and wing.
const (
	WhiteKingSide  uint8 = 1
	WhiteQueenSide uint8 = 2
	BlackKingSide  uint8 = 4
	BlackQueenSide uint8 = 8

	KingSideRights  = WhiteKingSide | BlackKingSide
	QueenSideRights = WhiteQueenSide | BlackQueenSide
	AnyCastling     = 15
	CastleRightNB   = 16
)

// CastleRight returns the single right bit for a color and wing.
func CastleRight(c Color, kingSide bool) uint8 {
	if kingSide {
		return WhiteKingSide << (2 * uint8(c))
	}
	return WhiteQueenSide << (2 * uint8(c))
}

// Midgame and endgame piece values, indexed by piece type. The midgame
// column doubles as the exchange value used by the static exchange search.
var (
	PieceValueMG = [PieceTypeNB]Value{0, 125, 780, 825, 1275, 2540, 0}
	PieceValueEG = [PieceTypeNB]Value{0, 210, 850, 915, 1380, 2680, 0}
)

// PieceValue returns the midgame value of a piece.
func PieceValue(p Piece) Value { return PieceValueMG[p.Type()] }
