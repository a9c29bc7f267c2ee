package board

// Zobrist keys for incremental position hashing. En passant keys are per
// file and folded in whenever a double push sets the en passant square,
// castling keys cover every rights combination so rights changes are one xor.
var (
	zobPieces    [PieceNB][SquareNB]uint64
	zobEnPassant [FileNB]uint64
	zobCastling  [CastleRightNB]uint64
	zobSide      uint64
)

func initZobrist() {
	rng := newPrng(534895)

	for pt := Pawn; pt <= King; pt++ {
		for _, c := range [2]Color{White, Black} {
			for s := A1; s <= H8; s++ {
				zobPieces[MakePiece(c, pt)][s] = rng.next()
			}
		}
	}

	for f := FileA; f <= FileH; f++ {
		zobEnPassant[f] = rng.next()
	}

	for rights := 0; rights < CastleRightNB; rights++ {
		zobCastling[rights] = rng.next()
	}

	zobSide = rng.next()
}
