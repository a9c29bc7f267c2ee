package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPosition parses a FEN string into a position. Castling rights accept
// the standard KQkq letters as well as Shredder-FEN file letters; chess960
// selects the castling rules and the rendering of castle moves.
func NewPosition(fen string, chess960 bool) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen %q: need at least 4 fields, have %d", fen, len(fields))
	}

	p := &Position{chess960: chess960}
	for i := range p.board {
		p.board[i] = NoPiece
	}
	for i := range p.castleRookSq {
		p.castleRookSq[i] = SqNone
	}
	p.states = make([]StateInfo, 1, 64)
	st := p.st()
	st.EpSquare = SqNone
	st.Played = MoveNone

	// 1. Piece placement, rank 8 first.
	s := A8
	kings := [ColorNB]int{}
	for _, ch := range []byte(fields[0]) {
		switch {
		case ch >= '1' && ch <= '8':
			s += Square(ch - '0')
		case ch == '/':
			s += 2 * South
		default:
			pc := PieceFromChar(ch)
			if pc == NoPiece {
				return nil, fmt.Errorf("fen %q: bad piece %q", fen, ch)
			}
			if !SquareOK(s) {
				return nil, fmt.Errorf("fen %q: piece placement overflows the board", fen)
			}
			st.Key ^= zobPieces[pc][s]
			p.setPiece(pc, s)
			if pc.Type() == King {
				kings[pc.ColorOf()]++
			}
			if pc.Type() != Pawn && pc.Type() != King {
				st.NonPawnMaterial[pc.ColorOf()] += PieceValue(pc)
			}
			s++
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fmt.Errorf("fen %q: each side needs exactly one king", fen)
	}

	// 2. Side to move.
	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fmt.Errorf("fen %q: bad side to move %q", fen, fields[1])
	}
	if p.sideToMove == Black {
		st.Key ^= zobSide
	}

	// 3. Castling rights.
	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			c := White
			if ch >= 'a' && ch <= 'z' {
				c = Black
			}
			rook := MakePiece(c, Rook)
			upper := ch &^ 0x20

			var rookSq Square
			switch {
			case upper == 'K':
				for rookSq = RelativeSquare(c, H1); SquareOK(rookSq) && p.board[rookSq] != rook; rookSq-- {
				}
			case upper == 'Q':
				for rookSq = RelativeSquare(c, A1); SquareOK(rookSq) && p.board[rookSq] != rook; rookSq++ {
				}
			case upper >= 'A' && upper <= 'H':
				rookSq = MakeSquare(int(upper-'A'), RankOf(RelativeSquare(c, A1)))
			default:
				return nil, fmt.Errorf("fen %q: bad castling token %q", fen, ch)
			}

			if !SquareOK(rookSq) || p.board[rookSq] != rook {
				return nil, fmt.Errorf("fen %q: no rook for castling token %q", fen, ch)
			}
			p.setCastlingRights(c, rookSq)
		}
	}
	st.Key ^= zobCastling[st.CastlingRights]

	// 4. En passant square.
	if fields[3] != "-" {
		ep := SquareFromName(fields[3])
		wantRank := Rank6
		if p.sideToMove == Black {
			wantRank = Rank3
		}
		if ep != SqNone && RankOf(ep) == wantRank {
			st.EpSquare = ep
			st.Key ^= zobEnPassant[FileOf(ep)]
		}
	}

	// 5. Halfmove clock and fullmove number, optional.
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("fen %q: bad halfmove clock: %w", fen, err)
		}
		st.FiftyRule = n
	}
	full := 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("fen %q: bad fullmove number: %w", fen, err)
		}
		full = n
	}
	p.gamePly = 2 * (full - 1)
	if p.gamePly < 0 {
		p.gamePly = 0
	}
	if p.sideToMove == Black {
		p.gamePly++
	}

	p.update()

	// The side that just moved may not stand in check.
	them := p.sideToMove.Other()
	if p.Attackers(p.KingSq(them), p.all)&p.byColor[p.sideToMove] != 0 {
		return nil, fmt.Errorf("fen %q: side not to move is in check", fen)
	}
	return p, nil
}

// FEN renders the position back into FEN notation.
func (p *Position) FEN() string {
	var sb strings.Builder

	for r := Rank8; r >= Rank1; r-- {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[MakeSquare(f, r)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r != Rank1 {
			sb.WriteByte('/')
		}
	}

	if p.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if !p.CanCastle(AnyCastling) {
		sb.WriteByte('-')
	} else {
		write := func(right uint8, std, base byte) {
			if !p.CanCastle(right) {
				return
			}
			if p.chess960 {
				sb.WriteByte(base + byte(FileOf(p.castleRookSq[right])))
			} else {
				sb.WriteByte(std)
			}
		}
		write(WhiteKingSide, 'K', 'A')
		write(WhiteQueenSide, 'Q', 'A')
		write(BlackKingSide, 'k', 'a')
		write(BlackQueenSide, 'q', 'a')
	}

	sb.WriteByte(' ')
	sb.WriteString(SquareName(p.EpSquare()))
	fmt.Fprintf(&sb, " %d %d", p.st().FiftyRule, 1+(p.gamePly-int(p.sideToMove))/2)

	return sb.String()
}

// String renders a board diagram with the FEN, key and checkers below it,
// handy for the UCI "d" command and debugging.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("+-----------------+\n")
	for r := Rank8; r >= Rank1; r-- {
		sb.WriteByte('|')
		for f := FileA; f <= FileH; f++ {
			sb.WriteByte(' ')
			sb.WriteByte(p.board[MakeSquare(f, r)].Char())
		}
		fmt.Fprintf(&sb, " | %d\n", 1+r)
	}
	sb.WriteString("+-----------------+\n")
	sb.WriteString("  a b c d e f g h\n")

	fmt.Fprintf(&sb, "\nFen: %s\nKey: 0x%016X\nCheckers:", p.FEN(), p.Key())
	for b := p.Checks(); b != 0; {
		sb.WriteByte(' ')
		sb.WriteString(SquareName(PopLsb(&b)))
	}
	sb.WriteByte('\n')
	return sb.String()
}
