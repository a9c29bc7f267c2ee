package engine

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/trevorblacklock/Stella/board"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
// At depth one the count is just the size of the legal move list, which
// skips a full layer of make/undo.
func Perft(pos *board.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	gen := NewPerftGenerator(pos)
	if depth == 1 {
		var n uint64
		for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
			n++
		}
		return n
	}

	var nodes uint64
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		pos.DoMove(m)
		nodes += Perft(pos, depth-1)
		pos.UndoMove(m)
	}
	return nodes
}

// Divide returns the perft count under each root move, keyed by the
// move's coordinate notation, plus the total.
func Divide(pos *board.Position, depth int) (map[string]uint64, uint64) {
	counts := make(map[string]uint64)
	var total uint64

	gen := NewPerftGenerator(pos)
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		pos.DoMove(m)
		n := Perft(pos, depth-1)
		pos.UndoMove(m)
		counts[m.Format(pos.IsChess960())] = n
		total += n
	}
	return counts, total
}

// PerftParallel splits the root moves across workers, each on its own
// position copy. Worker counts below one fall back to the CPU count.
func PerftParallel(ctx context.Context, pos *board.Position, depth, workers int) (uint64, error) {
	if depth <= 1 {
		return Perft(pos, depth), nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var moves []board.Move
	gen := NewPerftGenerator(pos)
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		moves = append(moves, m)
	}

	var total atomic.Uint64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, m := range moves {
		m := m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := pos.Clone()
			p.DoMove(m)
			total.Add(Perft(p, depth-1))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}
