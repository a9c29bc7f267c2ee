package board

import "testing"

// Every magic lookup must match the slow ray walk for every reachable
// occupancy of the relevant mask, enumerated with the Carry-Rippler.
func TestMagicAttacksMatchRayWalk(t *testing.T) {
	for _, pt := range []PieceType{Bishop, Rook} {
		for s := A1; s <= H8; s++ {
			mask := slidingAttack(pt, s, 0) &^ edgesFor(s)
			occ := Bitboard(0)
			for {
				got := AttacksBB(pt, s, occ)
				want := slidingAttack(pt, s, occ)
				if got != want {
					t.Fatalf("%v on %s occ %x: got %x want %x",
						pt, SquareName(s), occ, got, want)
				}
				occ = (occ - mask) & mask
				if occ == 0 {
					break
				}
			}
		}
	}
}

func edgesFor(s Square) Bitboard {
	edges := (Rank1BB | Rank8BB) &^ RankBB(s)
	edges |= (FileABB | FileHBB) &^ FileBB(s)
	return edges
}

func TestQueenAttacksAreUnionOfSliders(t *testing.T) {
	occ := SquareBB(D4) | SquareBB(F6) | SquareBB(B2)
	for s := A1; s <= H8; s++ {
		want := AttacksBB(Rook, s, occ) | AttacksBB(Bishop, s, occ)
		if got := AttacksBB(Queen, s, occ); got != want {
			t.Fatalf("queen on %s: got %x want %x", SquareName(s), got, want)
		}
	}
}

func TestBetweenIncludesTarget(t *testing.T) {
	b := BetweenBB(A1, H8)
	for _, s := range []Square{B2, C3, D4, E5, F6, G7, H8} {
		if b&SquareBB(s) == 0 {
			t.Fatalf("between a1-h8 missing %s", SquareName(s))
		}
	}
	if b&SquareBB(A1) != 0 {
		t.Fatalf("between a1-h8 must not include the origin")
	}
	if BetweenBB(A1, B3) != SquareBB(B3) {
		t.Fatalf("unaligned squares reduce to the target bit")
	}
}

func TestLineAndAligned(t *testing.T) {
	if LineBB(C2, F5)&SquareBB(B1) == 0 || LineBB(C2, F5)&SquareBB(H7) == 0 {
		t.Fatalf("line c2-f5 should span the full diagonal")
	}
	if !Aligned(A1, D4, G7) {
		t.Fatalf("a1 d4 g7 are aligned")
	}
	if Aligned(A1, D4, G6) {
		t.Fatalf("a1 d4 g6 are not aligned")
	}
}

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b Square
		want int
	}{
		{A1, A1, 0},
		{A1, B2, 1},
		{A1, H8, 7},
		{E4, E6, 2},
		{A1, H1, 7},
	}
	for _, c := range cases {
		if got := Distance(c.a, c.b); got != c.want {
			t.Fatalf("distance %s-%s: got %d want %d",
				SquareName(c.a), SquareName(c.b), got, c.want)
		}
	}
}

func TestPawnAttacks(t *testing.T) {
	if PawnAttacks(White, E4) != SquareBB(D5)|SquareBB(F5) {
		t.Fatalf("white pawn on e4 attacks d5 and f5")
	}
	if PawnAttacks(Black, E4) != SquareBB(D3)|SquareBB(F3) {
		t.Fatalf("black pawn on e4 attacks d3 and f3")
	}
	if PawnAttacks(White, A2) != SquareBB(B3) {
		t.Fatalf("edge pawns must not wrap files")
	}
	if PawnAttacksFrom(White, SquareBB(A2)|SquareBB(H2)) != SquareBB(B3)|SquareBB(G3) {
		t.Fatalf("set-wise pawn attacks disagree with per-square attacks")
	}
}

func TestPseudoAttacks(t *testing.T) {
	if PseudoAttack(Knight, A1) != SquareBB(B3)|SquareBB(C2) {
		t.Fatalf("knight on a1 reaches b3 and c2 only")
	}
	if PopCount(PseudoAttack(King, E4)) != 8 {
		t.Fatalf("king on e4 has 8 neighbours")
	}
	if PseudoAttack(Rook, D4) != AttacksBB(Rook, D4, 0) {
		t.Fatalf("pseudo rook attacks are the empty-board attacks")
	}
}
