package engine

import "github.com/trevorblacklock/Stella/board"

// GenMode selects which moves a Generator yields and in what order.
type GenMode uint8

const (
	// ModeSearch yields every pseudo-legal move, best first.
	ModeSearch GenMode = iota
	// ModeQSearch yields only winning or equal captures.
	ModeQSearch
	// ModeQSearchCheck yields all captures then every evasion.
	ModeQSearchCheck
	// ModePerft yields every legal move without any ordering work.
	ModePerft
)

// genStage is the explicit state of the staged pipeline.
type genStage uint8

const (
	stageTTMove genStage = iota
	stageInitCaptures
	stageGoodCaptures
	stageKiller1
	stageKiller2
	stageInitQuiets
	stageGoodQuiets
	stageBadCaptures
	stageBadQuiets
	stageInitEvasions
	stageAllEvasions
	stageDone
)

// Offsets applied when a move is scored into its list. Good moves get a
// large boost so the lazy selection sort visits them before the rest.
const (
	goodMoveOffset   Value = 100000
	badCaptureOffset Value = 1000
)

// Generator hands the search one pseudo-legal move at a time, lazily: the
// hash move and killers go out before any list is built, captures are
// generated only when needed and quiets can be skipped wholesale. In-check
// positions restrict generation to blocking squares and the checker.
type Generator struct {
	pos  *board.Position
	hist *History
	mode GenMode

	stage genStage
	ply   int
	mask  board.Bitboard

	ttMove  board.Move
	killer1 board.Move
	killer2 board.Move

	captures board.MoveList
	quiets   board.MoveList
	searched board.MoveList

	seeScores  [MaxMoves]Value
	captureIdx int
	quietIdx   int

	goodCaptures int
	goodQuiets   int

	see        Value
	skipQuiets bool
}

// NewPerftGenerator builds a generator that yields every legal move.
func NewPerftGenerator(p *board.Position) *Generator {
	g := &Generator{pos: p, mode: ModePerft}
	g.initMask()
	g.generate(true)
	g.generate(false)
	g.stage = stageDone
	return g
}

// NewGenerator builds a staged generator for the search. The TT move and
// killers are emitted first and filtered out of the generated lists.
func NewGenerator(p *board.Position, h *History, mode GenMode, ttMove board.Move, ply int) *Generator {
	g := &Generator{
		pos:    p,
		hist:   h,
		mode:   mode,
		ttMove: ttMove,
		ply:    ply,
	}
	g.killer1 = h.GetKiller(p.SideToMove(), ply, 0)
	g.killer2 = h.GetKiller(p.SideToMove(), ply, 1)
	if g.killer1 == ttMove || mode == ModeQSearchCheck {
		g.killer1 = board.MoveNone
	}
	if g.killer2 == ttMove || mode == ModeQSearchCheck {
		g.killer2 = board.MoveNone
	}
	g.initMask()
	return g
}

// initMask restricts non-king destinations while in check: with a single
// checker only capturing it or blocking helps, with two nothing does.
func (g *Generator) initMask() {
	g.mask = board.AllSquares
	checks := g.pos.Checks()
	switch board.PopCount(checks) {
	case 0:
	case 1:
		g.mask = board.BetweenBB(g.pos.KingSq(g.pos.SideToMove()), board.Lsb(checks))
	default:
		g.mask = 0
	}
}

// SkipQuiets tells the generator to stop yielding quiet moves, used by
// late move pruning once quiets cannot beat alpha anymore.
func (g *Generator) SkipQuiets() { g.skipQuiets = true }

// SeeScore returns the static exchange score of the last capture yielded.
func (g *Generator) SeeScore() Value { return g.see }

// AddSearched records a yielded move so history maluses can find it later.
func (g *Generator) AddSearched(m board.Move) { g.searched.Add(m) }

// Searched returns the moves recorded with AddSearched.
func (g *Generator) Searched() *board.MoveList { return &g.searched }

// Next returns the next move to try, MoveNone when exhausted. Perft mode
// walks the pregenerated legal lists; the staged modes run the pipeline.
func (g *Generator) Next() board.Move {
	if g.mode == ModePerft {
		if g.captureIdx < g.captures.Size {
			m := g.captures.Moves[g.captureIdx]
			g.captureIdx++
			return m
		}
		if g.quietIdx < g.quiets.Size {
			m := g.quiets.Moves[g.quietIdx]
			g.quietIdx++
			return m
		}
		return board.MoveNone
	}

	for {
		switch g.stage {
		case stageTTMove:
			g.stage = stageInitCaptures
			if g.pos.IsPseudoLegal(g.ttMove) {
				return g.ttMove
			}

		case stageInitCaptures:
			g.stage = stageGoodCaptures
			g.generate(true)

		case stageGoodCaptures:
			if g.captureIdx < g.goodCaptures {
				return g.nextCapture()
			}
			switch g.mode {
			case ModeQSearch:
				return board.MoveNone
			case ModeQSearchCheck:
				g.stage = stageBadCaptures
			default:
				g.stage = stageKiller1
			}

		case stageKiller1:
			g.stage = stageKiller2
			if g.pos.IsPseudoLegal(g.killer1) {
				return g.killer1
			}

		case stageKiller2:
			g.stage = stageInitQuiets
			if g.pos.IsPseudoLegal(g.killer2) {
				return g.killer2
			}

		case stageInitQuiets:
			g.stage = stageGoodQuiets
			if !g.skipQuiets {
				g.generate(false)
			}

		case stageGoodQuiets:
			if !g.skipQuiets && g.quietIdx < g.goodQuiets {
				return g.nextQuiet()
			}
			g.stage = stageBadCaptures

		case stageBadCaptures:
			if g.captureIdx < g.captures.Size {
				return g.nextCapture()
			}
			if g.mode == ModeQSearchCheck {
				g.stage = stageInitEvasions
			} else {
				g.stage = stageBadQuiets
			}

		case stageBadQuiets:
			if !g.skipQuiets && g.quietIdx < g.quiets.Size {
				return g.nextQuiet()
			}
			return board.MoveNone

		case stageInitEvasions:
			g.stage = stageAllEvasions
			g.generate(false)

		case stageAllEvasions:
			if g.quietIdx < g.quiets.Size {
				return g.nextQuiet()
			}
			return board.MoveNone

		default:
			return board.MoveNone
		}
	}
}

// probeList selection-sorts lazily: it finds the best remaining move,
// swaps the consumed slot into its place and returns it.
func probeList(list *board.MoveList, idx *int) (board.Move, int) {
	best := *idx
	for i := *idx + 1; i < list.Size; i++ {
		if list.Scores[i] > list.Scores[best] {
			best = i
		}
	}

	m := list.Moves[best]
	list.Scores[best] = list.Scores[*idx]
	list.Moves[best] = list.Moves[*idx]
	*idx++
	return m, best
}

func (g *Generator) nextCapture() board.Move {
	m, best := probeList(&g.captures, &g.captureIdx)
	g.see = g.seeScores[best]
	g.seeScores[best] = g.seeScores[g.captureIdx-1]
	return m
}

func (g *Generator) nextQuiet() board.Move {
	m, _ := probeList(&g.quiets, &g.quietIdx)
	return m
}

// generate fills one list from the raw board generators, scoring and
// partitioning each move. Perft mode filters for legality instead.
func (g *Generator) generate(captures bool) {
	var raw board.MoveList
	if captures {
		g.pos.GenerateCaptures(&raw, g.mask)
	} else {
		g.pos.GenerateQuiets(&raw, g.mask)
	}

	for i := 0; i < raw.Size; i++ {
		g.addMove(raw.Moves[i], captures)
	}
}

func (g *Generator) addMove(m board.Move, capture bool) {
	if g.mode == ModePerft {
		if !g.pos.IsLegal(m) {
			return
		}
		if capture {
			g.captures.Add(m)
		} else {
			g.quiets.Add(m)
		}
		return
	}

	if m == g.ttMove {
		return
	}

	if capture {
		see := g.pos.SEE(m)
		g.seeScores[g.captures.Size] = see

		score := g.hist.GetHistory(g.pos, m, g.ply)
		if see >= 0 {
			g.goodCaptures++
			score += goodMoveOffset + see
		} else {
			score += badCaptureOffset + see
		}

		g.captures.Scores[g.captures.Size] = score
		g.captures.Add(m)
		return
	}

	if m == g.killer1 || m == g.killer2 {
		return
	}

	score := g.hist.GetHistory(g.pos, m, g.ply)
	if score > goodQuietFloor {
		g.goodQuiets++
		score += goodMoveOffset
	}
	g.quiets.Scores[g.quiets.Size] = score
	g.quiets.Add(m)
}
