package board

import "math/bits"

// Bitboard is a 64-bit set of squares, bit 0 is a1.
type Bitboard uint64

const (
	FileABB Bitboard = 0x0101010101010101
	FileBBB Bitboard = FileABB << 1
	FileCBB Bitboard = FileABB << 2
	FileDBB Bitboard = FileABB << 3
	FileEBB Bitboard = FileABB << 4
	FileFBB Bitboard = FileABB << 5
	FileGBB Bitboard = FileABB << 6
	FileHBB Bitboard = FileABB << 7

	Rank1BB Bitboard = 0xFF
	Rank2BB Bitboard = Rank1BB << 8
	Rank3BB Bitboard = Rank1BB << 16
	Rank4BB Bitboard = Rank1BB << 24
	Rank5BB Bitboard = Rank1BB << 32
	Rank6BB Bitboard = Rank1BB << 40
	Rank7BB Bitboard = Rank1BB << 48
	Rank8BB Bitboard = Rank1BB << 56

	AllSquares Bitboard = ^Bitboard(0)
)

// SquareBB returns the bitboard with only the given square set.
func SquareBB(s Square) Bitboard { return Bitboard(1) << uint(s) }

// FileBB returns the file mask containing the square.
func FileBB(s Square) Bitboard { return FileABB << uint(FileOf(s)) }

// RankBB returns the rank mask containing the square.
func RankBB(s Square) Bitboard { return Rank1BB << uint(8*RankOf(s)) }

// Lsb returns the lowest set square. The board must be non-empty.
func Lsb(b Bitboard) Square { return Square(bits.TrailingZeros64(uint64(b))) }

// Msb returns the highest set square. The board must be non-empty.
func Msb(b Bitboard) Square { return Square(63 - bits.LeadingZeros64(uint64(b))) }

// PopLsb removes and returns the lowest set square.
func PopLsb(b *Bitboard) Square {
	s := Lsb(*b)
	*b &= *b - 1
	return s
}

// PopCount counts the set squares.
func PopCount(b Bitboard) int { return bits.OnesCount64(uint64(b)) }

// Shift moves every bit one step in the given direction, dropping bits
// that would wrap around the board edge.
func Shift(b Bitboard, d int) Bitboard {
	switch d {
	case North:
		return b << 8
	case South:
		return b >> 8
	case East:
		return (b &^ FileHBB) << 1
	case West:
		return (b &^ FileABB) >> 1
	case NorthEast:
		return (b &^ FileHBB) << 9
	case NorthWest:
		return (b &^ FileABB) << 7
	case SouthEast:
		return (b &^ FileHBB) >> 7
	case SouthWest:
		return (b &^ FileABB) >> 9
	}
	return 0
}

// Precomputed lookup tables filled in by initBitboards.
var (
	squareDistance [SquareNB][SquareNB]uint8
	betweenBB      [SquareNB][SquareNB]Bitboard
	lineBB         [SquareNB][SquareNB]Bitboard
	pseudoAttacks  [PieceTypeNB][SquareNB]Bitboard
	pawnAttacksBB  [ColorNB][SquareNB]Bitboard

	rookAttackTable   [102400]Bitboard
	bishopAttackTable [5248]Bitboard
	rookMagics        [SquareNB]magicEntry
	bishopMagics      [SquareNB]magicEntry
)

// magicEntry holds the fancy magic data for one square. The attacks slice
// aliases into the shared per-piece attack table.
type magicEntry struct {
	attacks []Bitboard
	mask    Bitboard
	magic   Bitboard
	shift   uint
}

func (m *magicEntry) index(occ Bitboard) uint {
	return uint(((occ & m.mask) * m.magic) >> m.shift)
}

// Distance is the Chebyshev distance between two squares.
func Distance(s1, s2 Square) int { return int(squareDistance[s1][s2]) }

// BetweenBB returns the squares strictly between s1 and s2 plus s2 itself.
// When the squares are not aligned only s2 is set.
func BetweenBB(s1, s2 Square) Bitboard { return betweenBB[s1][s2] }

// LineBB returns the full line through two aligned squares, empty otherwise.
func LineBB(s1, s2 Square) Bitboard { return lineBB[s1][s2] }

// Aligned reports whether s3 lies on the line through s1 and s2.
func Aligned(s1, s2, s3 Square) bool { return lineBB[s1][s2]&SquareBB(s3) != 0 }

// PawnAttacks returns the squares a pawn of the given color attacks from s.
func PawnAttacks(c Color, s Square) Bitboard { return pawnAttacksBB[c][s] }

// PawnAttacksFrom returns all squares attacked by the pawns on b.
func PawnAttacksFrom(c Color, b Bitboard) Bitboard {
	if c == White {
		return Shift(b, NorthEast) | Shift(b, NorthWest)
	}
	return Shift(b, SouthEast) | Shift(b, SouthWest)
}

// PseudoAttack returns the attacks of a piece on an empty board.
func PseudoAttack(pt PieceType, s Square) Bitboard { return pseudoAttacks[pt][s] }

// AttacksBB returns the attack set of a piece type on a square given the
// occupied board. Pawns are handled by PawnAttacks instead.
func AttacksBB(pt PieceType, s Square, occ Bitboard) Bitboard {
	switch pt {
	case Bishop:
		m := &bishopMagics[s]
		return m.attacks[m.index(occ)]
	case Rook:
		m := &rookMagics[s]
		return m.attacks[m.index(occ)]
	case Queen:
		bm := &bishopMagics[s]
		rm := &rookMagics[s]
		return bm.attacks[bm.index(occ)] | rm.attacks[rm.index(occ)]
	}
	return pseudoAttacks[pt][s]
}

// prng is the xorshift generator used for magic and zobrist generation.
// Construction has to be reproducible so tables and keys never change
// between runs.
type prng struct{ seed uint64 }

func newPrng(seed uint64) prng { return prng{seed} }

func (r *prng) next() uint64 {
	r.seed ^= r.seed >> 12
	r.seed ^= r.seed << 25
	r.seed ^= r.seed >> 27
	return r.seed * 2685821657736338717
}

// sparse returns a random number with roughly 1/8 of its bits set, which
// makes far better magic candidates than uniform randoms.
func (r *prng) sparse() uint64 { return r.next() & r.next() & r.next() }

// safeStep returns the destination square bit for a single step, or zero
// when the step runs off the board.
func safeStep(s Square, step int) Bitboard {
	to := s + Square(step)
	if SquareOK(to) && Distance(s, to) <= 2 {
		return SquareBB(to)
	}
	return 0
}

// slidingAttack walks outward in each slider direction until a blocker.
func slidingAttack(pt PieceType, s Square, occ Bitboard) Bitboard {
	rookDirs := [4]int{North, South, East, West}
	bishopDirs := [4]int{NorthEast, NorthWest, SouthEast, SouthWest}

	dirs := rookDirs
	if pt == Bishop {
		dirs = bishopDirs
	}

	var attacks Bitboard
	for _, d := range dirs {
		sq := s
		for safeStep(sq, d) != 0 {
			sq += Square(d)
			attacks |= SquareBB(sq)
			if occ&SquareBB(sq) != 0 {
				break
			}
		}
	}
	return attacks
}

// Per-square seeds for the magic search, found by brute forcing random
// seeds and keeping the one with the fewest verification passes.
var magicSeeds = [SquareNB]uint64{
	18512, 53, 49288, 34962, 53536, 33290, 9256, 34980,
	8498, 1159, 18694, 652, 4234, 11794, 24614, 33948,
	25105, 33042, 17413, 6288, 32978, 5147, 5153, 12545,
	6172, 8392, 9288, 8624, 21889, 50432, 2328, 8354,
	35592, 8616, 61704, 5268, 8290, 1122, 8275, 1305,
	1539, 4992, 17456, 28928, 1569, 1418, 35968, 20500,
	169, 11520, 1172, 24620, 12576, 36997, 33027, 8360,
	1161, 49298, 34864, 4865, 19464, 8239, 33293, 4290,
}

// initMagics builds the magic tables for one slider type using the
// Carry-Rippler trick to enumerate every occupancy subset of each mask.
func initMagics(pt PieceType, table []Bitboard, magics *[SquareNB]magicEntry) {
	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	cnt := 0
	offset := 0

	for s := A1; s <= H8; s++ {
		// Edge squares only matter when the slider sits on them.
		edges := ((Rank1BB | Rank8BB) &^ RankBB(s)) | ((FileABB | FileHBB) &^ FileBB(s))

		m := &magics[s]
		m.mask = slidingAttack(pt, s, 0) &^ edges
		m.shift = uint(64 - PopCount(m.mask))

		// Enumerate all subsets of the mask and record the reference attacks.
		size := 0
		b := Bitboard(0)
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(pt, s, b)
			size++
			b = (b - m.mask) & m.mask
			if b == 0 {
				break
			}
		}

		m.attacks = table[offset : offset+size]
		offset += size

		rng := newPrng(magicSeeds[s])

		// Search for a magic that maps every occupancy to the right slot.
		// The epoch counter marks slots claimed by the current candidate so
		// the table never has to be cleared between attempts.
		for i := 0; i < size; {
			for m.magic = 0; PopCount((m.magic*m.mask)>>56) < 6; {
				m.magic = Bitboard(rng.sparse())
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.attacks[idx] = reference[i]
				} else if m.attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

func initBitboards() {
	kingSteps := [8]int{-9, -8, -7, -1, 1, 7, 8, 9}
	knightSteps := [8]int{-17, -15, -10, -6, 6, 10, 15, 17}

	for s1 := A1; s1 <= H8; s1++ {
		for s2 := A1; s2 <= H8; s2++ {
			fd := FileOf(s1) - FileOf(s2)
			if fd < 0 {
				fd = -fd
			}
			rd := RankOf(s1) - RankOf(s2)
			if rd < 0 {
				rd = -rd
			}
			if fd < rd {
				fd = rd
			}
			squareDistance[s1][s2] = uint8(fd)
		}
	}

	initMagics(Rook, rookAttackTable[:], &rookMagics)
	initMagics(Bishop, bishopAttackTable[:], &bishopMagics)

	for s1 := A1; s1 <= H8; s1++ {
		pawnAttacksBB[White][s1] = PawnAttacksFrom(White, SquareBB(s1))
		pawnAttacksBB[Black][s1] = PawnAttacksFrom(Black, SquareBB(s1))

		for _, step := range kingSteps {
			pseudoAttacks[King][s1] |= safeStep(s1, step)
		}
		for _, step := range knightSteps {
			pseudoAttacks[Knight][s1] |= safeStep(s1, step)
		}

		pseudoAttacks[Bishop][s1] = AttacksBB(Bishop, s1, 0)
		pseudoAttacks[Rook][s1] = AttacksBB(Rook, s1, 0)
		pseudoAttacks[Queen][s1] = pseudoAttacks[Bishop][s1] | pseudoAttacks[Rook][s1]

		for _, pt := range [2]PieceType{Bishop, Rook} {
			for s2 := A1; s2 <= H8; s2++ {
				if pseudoAttacks[pt][s1]&SquareBB(s2) != 0 {
					lineBB[s1][s2] = (AttacksBB(pt, s1, 0) & AttacksBB(pt, s2, 0)) | SquareBB(s1) | SquareBB(s2)
					betweenBB[s1][s2] = AttacksBB(pt, s1, SquareBB(s2)) & AttacksBB(pt, s2, SquareBB(s1))
				}
				betweenBB[s1][s2] |= SquareBB(s2)
			}
		}
	}
}

func init() {
	initBitboards()
	initZobrist()
}
