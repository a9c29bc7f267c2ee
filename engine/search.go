package engine

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/trevorblacklock/Stella/board"
)

// RootMove tracks one legal move at the root across iterations.
type RootMove struct {
	Move     board.Move
	Current  Value
	Previous Value
	Average  Value
}

// SearchData is the per-thread search state. Node counts are atomic so
// the coordinator can aggregate them while workers run.
type SearchData struct {
	threadID  int
	ply       int
	rootDepth int
	selDepth  int
	nodes     atomic.Uint64

	score    Value
	bestMove board.Move

	pv        pvTable
	rootMoves []RootMove

	hist *History
	eval *Eval

	nullMinPly int
}

// Search owns the worker pool, the shared transposition table and the
// iterative deepening driver. One Search serves a whole UCI session.
type Search struct {
	threadCount int
	threadData  []SearchData

	tt *TT
	tm *TimeManager

	// ShowInfo enables UCI info output from the main thread.
	ShowInfo bool

	chess960 bool
}

// NewSearch returns a single-threaded search with a default-sized table.
func NewSearch() *Search {
	s := &Search{tt: NewTT(DefaultHashMB), ShowInfo: true}
	s.SetThreads(1)
	return s
}

// SetThreads sets the worker count, clamped to the hardware.
func (s *Search) SetThreads(n int) {
	s.threadCount = clamp(n, 1, max(runtime.NumCPU(), 1))
	if len(s.threadData) < s.threadCount {
		s.threadData = make([]SearchData, s.threadCount)
	}
}

// SetHashSize resizes the shared table to the given megabytes.
func (s *Search) SetHashSize(mb int) { s.tt.Resize(clamp(mb, 1, 1<<17)) }

// Clear wipes the table and every thread's history, as on ucinewgame.
func (s *Search) Clear() {
	s.tt.Clear()
	for i := range s.threadData {
		if s.threadData[i].hist != nil {
			s.threadData[i].hist.Clear()
		}
	}
}

// Nodes returns the nodes searched by all threads so far.
func (s *Search) Nodes() uint64 { return s.totalNodes() }

// Score returns the main thread's score from the last finished iteration.
func (s *Search) Score() Value { return s.threadData[0].score }

func (s *Search) totalNodes() uint64 {
	var n uint64
	for i := 0; i < s.threadCount; i++ {
		n += s.threadData[i].nodes.Load()
	}
	return n
}

func (s *Search) maxSelDepth() int {
	d := 0
	for i := 0; i < s.threadCount; i++ {
		if s.threadData[i].selDepth > d {
			d = s.threadData[i].selDepth
		}
	}
	return d
}

// Run searches the position under the given limits and returns the best
// move. The calling goroutine acts as the main thread; the remaining
// workers run the same iterative deepening loop on their own position
// copies and mostly help by filling the shared table.
func (s *Search) Run(pos *board.Position, tm *TimeManager) board.Move {
	s.tm = tm
	s.tt.NewSearch()
	s.chess960 = pos.IsChess960()

	rootMoves := make([]RootMove, 0, 64)
	gen := NewPerftGenerator(pos)
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		rootMoves = append(rootMoves, RootMove{
			Move: m, Current: -ValueInfinite, Previous: -ValueInfinite, Average: -ValueInfinite,
		})
	}
	if len(rootMoves) == 0 {
		return board.MoveNone
	}

	for i := 0; i < s.threadCount; i++ {
		sd := &s.threadData[i]
		sd.threadID = i
		sd.ply = 0
		sd.rootDepth = 0
		sd.selDepth = 0
		sd.nodes.Store(0)
		sd.score = -ValueInfinite
		sd.bestMove = board.MoveNone
		sd.nullMinPly = 0
		sd.rootMoves = append(sd.rootMoves[:0], rootMoves...)
		if sd.hist == nil {
			sd.hist = NewHistory()
		}
		if sd.eval == nil {
			sd.eval = NewEval()
		}
		sd.pv.reset()
	}

	var wg sync.WaitGroup
	for i := 1; i < s.threadCount; i++ {
		wg.Add(1)
		go func(sd *SearchData) {
			defer wg.Done()
			s.iterate(sd, pos.Clone())
		}(&s.threadData[i])
	}

	s.iterate(&s.threadData[0], pos.Clone())

	tm.Stop()
	wg.Wait()

	best := s.threadData[0].bestMove
	if best == board.MoveNone {
		best = s.threadData[0].rootMoves[0].Move
	}
	return best
}

// iterate runs iterative deepening with aspiration windows on one thread.
func (s *Search) iterate(sd *SearchData, pos *board.Position) {
	pos.SetEvaluator(sd.eval)
	mainThread := sd.threadID == 0
	maxDepth := s.tm.MaxDepth()

	average := -ValueInfinite

	for depth := 1; depth <= maxDepth; depth++ {
		sd.rootDepth = depth

		alpha, beta := -ValueInfinite, ValueInfinite
		delta := ValueInfinite
		if depth >= 4 {
			delta = 16
			alpha = max(average-delta, -ValueInfinite)
			beta = min(average+delta, ValueInfinite)
		}

		score := -ValueInfinite
		failHighs := 0
		for {
			for i := range sd.rootMoves {
				sd.rootMoves[i].Previous = sd.rootMoves[i].Current
				sd.rootMoves[i].Current = -ValueInfinite
			}
			sd.pv.reset()
			sd.selDepth = 0

			// Consecutive fail-highs shave a ply off the re-search; the
			// verification at full depth happens once the window settles.
			adjusted := max(1, depth-failHighs)
			score = s.alphabeta(pos, sd, alpha, beta, adjusted, false, board.MoveNone)

			if !s.tm.CanContinue(s.totalNodes()) {
				break
			}

			if score <= alpha {
				failHighs = 0
				alpha = max(score-delta, -ValueInfinite)
				if mainThread && s.ShowInfo && s.tm.Elapsed() > 3000 {
					s.printInfo(sd, score, BoundUpper)
				}
			} else if score >= beta {
				failHighs++
				beta = min(score+delta, ValueInfinite)
				if mainThread && s.ShowInfo && s.tm.Elapsed() > 3000 {
					s.printInfo(sd, score, BoundLower)
				}
			} else {
				break
			}
			delta += delta / 3
		}

		stopped := !s.tm.CanContinue(s.totalNodes())
		if !stopped {
			sd.score = score
			if average == -ValueInfinite {
				average = score
			} else {
				average = (2*score + average) / 3
			}

			for i := range sd.rootMoves {
				rm := &sd.rootMoves[i]
				if rm.Current == -ValueInfinite {
					continue
				}
				if rm.Average == -ValueInfinite {
					rm.Average = rm.Current
				} else {
					rm.Average = (rm.Average + rm.Current) / 2
				}
			}
			slices.SortStableFunc(sd.rootMoves, func(a, b RootMove) bool {
				return a.Current > b.Current
			})

			if mainThread && s.ShowInfo {
				s.printInfo(sd, score, BoundNone)
			}
		}

		if mainThread {
			if stopped || !s.tm.ShouldDeepen(s.totalNodes()) {
				s.tm.Stop()
				return
			}
		} else if stopped {
			return
		}
	}
}

// Continuation history plies refreshed on every quiet stat update.
var contOffsets = [5]int{1, 2, 3, 4, 6}

// lmrTable holds the base late move reductions by depth and move count.
var lmrTable [64][64]int8

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			lmrTable[d][m] = int8(0.75 + math.Log(float64(d))*math.Log(float64(m))/2.25)
		}
	}
}

// statBonus scales history rewards with depth, capped so a single update
// never saturates a table.
func statBonus(depth int) Value {
	return min(Value(16*depth*depth+32*depth+16), 1200)
}

func lmpMargin(depth int, improving bool) int {
	n := 4 + depth*depth
	if !improving {
		n /= 2
	}
	return n
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func findRootMove(moves []RootMove, m board.Move) *RootMove {
	for i := range moves {
		if moves[i].Move == m {
			return &moves[i]
		}
	}
	return nil
}

// alphabeta is the principal variation search. excluded marks the hash
// move skipped by a singular verification at the same node.
func (s *Search) alphabeta(pos *board.Position, sd *SearchData, alpha, beta Value, depth int, cutNode bool, excluded board.Move) Value {
	us := pos.SideToMove()
	pvNode := beta-alpha != 1
	root := sd.ply == 0
	mainThread := sd.threadID == 0

	sd.pv.resetPly(sd.ply)

	if depth <= 0 {
		return s.qsearch(pos, sd, alpha, beta)
	}

	// Unwind with a harmless bound once a stop is forced; the partial
	// iteration is thrown away by the driver.
	if s.tm.Stopped() {
		return beta
	}

	nodes := sd.nodes.Add(1)
	if mainThread && nodes%1024 == 0 && !s.tm.CanContinue(s.totalNodes()) {
		s.tm.Stop()
		return beta
	}

	if sd.ply > sd.selDepth {
		sd.selDepth = sd.ply
	}

	inCheck := pos.Checks() != 0
	key := pos.Key()

	if !root {
		// Shuffle the draw score a little so the search keeps looking for
		// something better than an early repetition.
		if pos.IsDraw() {
			return 8 - Value(nodes&0xF)
		}
		if sd.ply >= MaxPly-1 {
			if inCheck {
				return ValueDraw
			}
			return sd.eval.Evaluate(pos)
		}

		// Mate distance pruning: a shorter mate elsewhere bounds this node.
		alpha = max(matedIn(sd.ply), alpha)
		beta = min(mateIn(sd.ply+1), beta)
		if alpha >= beta {
			return alpha
		}
	}

	ttMove := board.MoveNone
	ttScore := ValueNone
	ttEval := ValueNone
	ttBound := BoundNone
	ttDepth := 0
	ttPV := pvNode
	ttHit := false

	if excluded == board.MoveNone {
		var e TTEntry
		e, ttHit = s.tt.Probe(key)
		if ttHit {
			ttMove = e.Move
			ttScore = valueFromTT(e.Score, sd.ply, pos.FiftyRule())
			ttEval = e.Eval
			ttBound = e.Bound
			ttDepth = e.Depth
			ttPV = ttPV || e.PV

			// Late in the fifty-move count a stored score may hide an
			// upcoming draw claim, so only cut while well clear of it.
			if !pvNode && ttDepth >= depth && ttScore != ValueNone && pos.FiftyRule() < 90 {
				if (ttBound&BoundLower != 0 && ttScore >= beta) ||
					(ttBound&BoundUpper != 0 && ttScore <= alpha) {
					return ttScore
				}
			}
		}
	}

	eval := ValueNone
	improving := false
	if !inCheck {
		if ttHit && ttEval != ValueNone {
			eval = ttEval
		} else {
			eval = sd.eval.Evaluate(pos)
		}
		sd.hist.SetEval(us, sd.ply, eval)
		improving = sd.hist.IsImproving(us, sd.ply, eval)

		// A table score with the right bound is a better guess than the
		// raw evaluation.
		if ttHit && ttScore != ValueNone {
			if (ttBound&BoundLower != 0 && ttScore > eval) ||
				(ttBound&BoundUpper != 0 && ttScore < eval) {
				eval = ttScore
			}
		}
	} else {
		sd.hist.SetEval(us, sd.ply, ValueNone)
	}

	if !pvNode && !inCheck && excluded == board.MoveNone {
		// Razoring: hopeless positions drop straight into quiescence.
		if depth <= 3 && eval+150*Value(depth) < alpha {
			v := s.qsearch(pos, sd, alpha, alpha+1)
			if v < alpha {
				return v
			}
		}

		// Reverse futility: a static margin over beta fails high.
		if depth <= 8 && !isWin(eval) {
			margin := 70 * Value(depth)
			if improving {
				margin -= 70
			}
			if eval-margin >= beta {
				return eval
			}
		}

		// Null move pruning, verified at high depth to dodge zugzwang.
		if depth >= 3 && eval >= beta &&
			pos.LastMove() != board.MoveNull &&
			pos.NonPawnMaterial(us) > 0 &&
			sd.ply >= sd.nullMinPly &&
			!isLoss(beta) {

			r := 3 + depth/3 + int(min((eval-beta)/200, 3))

			pos.DoNull()
			sd.ply++
			v := -s.alphabeta(pos, sd, -beta, -beta+1, depth-r, !cutNode, board.MoveNone)
			sd.ply--
			pos.UndoNull()

			if v >= beta {
				if isWin(v) {
					v = beta
				}
				if sd.nullMinPly > 0 || depth < 12 {
					return v
				}

				// Verification search with null moves disabled along the
				// upper part of the remaining tree.
				sd.nullMinPly = sd.ply + 3*(depth-r)/4
				verified := s.alphabeta(pos, sd, beta-1, beta, depth-r, false, board.MoveNone)
				sd.nullMinPly = 0
				if verified >= beta {
					return v
				}
			}
		}
	}

	// Without a hash move deep nodes are cheaper to redo one ply shallower
	// than to order blind at full depth.
	if depth >= 4 && ttMove == board.MoveNone && (pvNode || cutNode) {
		depth--
	}

	gen := NewGenerator(pos, sd.hist, ModeSearch, ttMove, sd.ply)

	bestScore := -ValueInfinite
	bestMove := board.MoveNone
	legalMoves := 0
	moveCnt := 0
	skipQuiets := false

	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		if m == excluded {
			continue
		}
		if !pos.IsLegal(m) {
			continue
		}

		moveCnt++
		isCapture := pos.IsCapture(m)
		quiet := !isCapture && m.Kind() != board.Promotion
		givesCheck := pos.GivesCheck(m)

		var histScore Value
		if quiet {
			histScore = sd.hist.GetHistory(pos, m, sd.ply)
		}

		if root && mainThread && s.ShowInfo && s.tm.Elapsed() > 3000 {
			fmt.Printf("info depth %d currmove %s currmovenumber %d\n",
				sd.rootDepth, m.Format(s.chess960), moveCnt)
		}

		// Shallow pruning once any line is on the board.
		if !root && !isLoss(bestScore) && pos.NonPawnMaterial(us) > 0 {
			if quiet && !skipQuiets {
				if depth <= 8 && moveCnt >= lmpMargin(depth, improving) {
					skipQuiets = true
					gen.SkipQuiets()
				}
				if depth <= 8 && !inCheck && !givesCheck && eval != ValueNone &&
					eval+100+150*Value(depth) <= alpha {
					skipQuiets = true
					gen.SkipQuiets()
				}
			}
			if isCapture && depth <= 8 && pos.SEE(m) < -200*Value(depth) {
				continue
			}
		}

		// Singular extension: when the hash move alone beats a lowered
		// window the node hinges on it, so look one ply further. An
		// exclusion search that still reaches beta cuts the node outright.
		extension := 0
		if !root && depth >= 8 && m == ttMove && excluded == board.MoveNone &&
			ttBound&BoundLower != 0 && ttDepth >= depth-3 &&
			ttScore != ValueNone && !isWin(ttScore) && !isLoss(ttScore) {

			singularBeta := ttScore - 2*Value(depth)
			v := s.alphabeta(pos, sd, singularBeta-1, singularBeta, (depth-1)/2, cutNode, m)
			if v < singularBeta {
				extension = 1
			} else if singularBeta >= beta {
				return singularBeta
			} else if ttScore >= beta {
				extension = -1
			}
		} else if givesCheck && sd.ply < 2*sd.rootDepth {
			extension = 1
		}

		newDepth := depth - 1 + extension

		pos.DoMove(m)
		sd.ply++

		var score Value
		if legalMoves == 0 {
			score = -s.alphabeta(pos, sd, -beta, -alpha, newDepth, false, board.MoveNone)
		} else {
			// Late moves start reduced; a surprise fail-high re-searches
			// at full depth before the PV window gets involved.
			r := 0
			if depth >= 3 && moveCnt > 1+2*b2i(root) && (quiet || !ttPV) {
				r = int(lmrTable[min(depth, 63)][min(moveCnt, 63)])
				if !improving {
					r++
				}
				if cutNode {
					r++
				}
				if ttPV {
					r--
				}
				if sd.hist.IsKiller(us, m, sd.ply-1) {
					r--
				}
				if quiet {
					r -= int(clamp(histScore/8000, -2, 2))
				}
				r = clamp(r, 0, newDepth-1)
			}

			score = -s.alphabeta(pos, sd, -alpha-1, -alpha, newDepth-r, true, board.MoveNone)
			if r > 0 && score > alpha {
				score = -s.alphabeta(pos, sd, -alpha-1, -alpha, newDepth, !cutNode, board.MoveNone)
			}
			if pvNode && score > alpha && score < beta {
				score = -s.alphabeta(pos, sd, -beta, -alpha, newDepth, false, board.MoveNone)
			}
		}

		sd.ply--
		pos.UndoMove(m)
		gen.AddSearched(m)
		legalMoves++

		if root {
			if rm := findRootMove(sd.rootMoves, m); rm != nil &&
				(legalMoves == 1 || score > alpha) {
				rm.Current = score
			}
		}

		if score > bestScore {
			bestScore = score
			bestMove = m

			if root && (depth <= 2 || s.tm.CanContinue(s.totalNodes())) {
				sd.bestMove = m
			}
			if pvNode && mainThread && !s.tm.Stopped() {
				sd.pv.update(m, sd.ply)
			}

			if score >= beta {
				break
			}
			if score > alpha {
				alpha = score
			}
		}
	}

	if legalMoves == 0 {
		if excluded != board.MoveNone {
			return alpha
		}
		if inCheck {
			return matedIn(sd.ply)
		}
		return ValueDraw
	}

	if bestScore >= beta && !s.tm.Stopped() {
		s.updateStats(pos, sd, gen, bestMove, depth)
	}

	if excluded == board.MoveNone && !s.tm.Stopped() {
		bound := BoundUpper
		if bestScore >= beta {
			bound = BoundLower
		} else if pvNode && bestMove != board.MoveNone {
			bound = BoundExact
		}
		s.tt.Save(key, depth, valueToTT(bestScore, sd.ply), eval, bestMove, bound, ttPV)
	}

	return bestScore
}

// updateStats rewards the cutoff move and punishes everything tried
// before it, scaled by depth.
func (s *Search) updateStats(pos *board.Position, sd *SearchData, gen *Generator, bestMove board.Move, depth int) {
	us := pos.SideToMove()
	ply := sd.ply
	bonus := statBonus(depth)

	victimType := func(m board.Move) board.PieceType {
		if m.Kind() == board.EnPassant {
			return board.Pawn
		}
		return pos.PieceOn(m.To()).Type()
	}

	if pos.IsCapture(bestMove) {
		sd.hist.UpdateCapture(pos.PieceMoved(bestMove), bestMove.To(), victimType(bestMove), bonus)
	} else {
		sd.hist.SetKiller(us, bestMove, ply)
		sd.hist.ClearKillersGrandchildren(us, ply)
		sd.hist.UpdateButterfly(us, bestMove, bonus)
		pc := pos.PieceMoved(bestMove)
		for _, off := range contOffsets {
			sd.hist.UpdateContinuation(pc, bestMove.To(), ply-off, bonus)
		}
	}

	searched := gen.Searched()
	for i := 0; i < searched.Size; i++ {
		m := searched.Moves[i]
		if m == bestMove {
			continue
		}
		if pos.IsCapture(m) {
			sd.hist.UpdateCapture(pos.PieceMoved(m), m.To(), victimType(m), -bonus)
		} else {
			sd.hist.UpdateButterfly(us, m, -bonus)
			pc := pos.PieceMoved(m)
			for _, off := range contOffsets {
				sd.hist.UpdateContinuation(pc, m.To(), ply-off, -bonus)
			}
		}
	}
}

// qsearch resolves captures (and evasions while in check) until the
// position is quiet enough to trust the static evaluation.
func (s *Search) qsearch(pos *board.Position, sd *SearchData, alpha, beta Value) Value {
	pvNode := beta-alpha != 1
	mainThread := sd.threadID == 0

	sd.pv.resetPly(sd.ply)

	if s.tm.Stopped() {
		return beta
	}
	nodes := sd.nodes.Add(1)
	if mainThread && nodes%1024 == 0 && !s.tm.CanContinue(s.totalNodes()) {
		s.tm.Stop()
		return beta
	}

	if sd.ply > sd.selDepth {
		sd.selDepth = sd.ply
	}

	inCheck := pos.Checks() != 0

	if pos.IsDraw() {
		return 8 - Value(nodes&0xF)
	}
	if sd.ply >= MaxPly-1 {
		if inCheck {
			return ValueDraw
		}
		return sd.eval.Evaluate(pos)
	}

	key := pos.Key()

	ttMove := board.MoveNone
	ttScore := ValueNone
	ttEval := ValueNone
	ttBound := BoundNone
	ttPV := pvNode

	e, ttHit := s.tt.Probe(key)
	if ttHit {
		ttMove = e.Move
		ttScore = valueFromTT(e.Score, sd.ply, pos.FiftyRule())
		ttEval = e.Eval
		ttBound = e.Bound
		ttPV = ttPV || e.PV

		if !pvNode && ttScore != ValueNone {
			if (ttBound&BoundLower != 0 && ttScore >= beta) ||
				(ttBound&BoundUpper != 0 && ttScore <= alpha) {
				return ttScore
			}
		}
	}

	bestScore := -ValueInfinite
	eval := ValueNone

	if !inCheck {
		if ttHit && ttEval != ValueNone {
			eval = ttEval
		} else {
			eval = sd.eval.Evaluate(pos)
		}
		bestScore = eval

		if ttHit && ttScore != ValueNone {
			if (ttBound&BoundLower != 0 && ttScore > bestScore) ||
				(ttBound&BoundUpper != 0 && ttScore < bestScore) {
				bestScore = ttScore
			}
		}

		// Stand pat.
		if bestScore >= beta {
			if !ttHit {
				s.tt.Save(key, 0, valueToTT(bestScore, sd.ply), eval, board.MoveNone, BoundLower, false)
			}
			return bestScore
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}

	mode := ModeQSearch
	if inCheck {
		mode = ModeQSearchCheck
	}
	gen := NewGenerator(pos, sd.hist, mode, ttMove, sd.ply)

	bestMove := board.MoveNone
	legalMoves := 0

	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		if !pos.IsLegal(m) {
			continue
		}
		legalMoves++

		// Delta pruning: even winning the exchange cannot lift alpha.
		if !inCheck && pos.IsCapture(m) && eval != ValueNone &&
			eval+pos.SEE(m)+200 <= alpha {
			continue
		}

		pos.DoMove(m)
		sd.ply++
		score := -s.qsearch(pos, sd, -beta, -alpha)
		sd.ply--
		pos.UndoMove(m)

		if score > bestScore {
			bestScore = score
			bestMove = m

			if pvNode && mainThread {
				sd.pv.update(m, sd.ply)
			}
			if score >= beta {
				break
			}
			if score > alpha {
				alpha = score
			}
		}
	}

	if inCheck && legalMoves == 0 {
		return matedIn(sd.ply)
	}

	if !s.tm.Stopped() {
		bound := BoundUpper
		if bestScore >= beta {
			bound = BoundLower
		}
		s.tt.Save(key, 0, valueToTT(bestScore, sd.ply), eval, bestMove, bound, ttPV)
	}

	return bestScore
}

// printInfo emits one UCI info line for the main thread's current state.
func (s *Search) printInfo(sd *SearchData, score Value, bound Bound) {
	elapsed := s.tm.Elapsed()
	nodes := s.totalNodes()
	nps := nodes * 1000 / (elapsed + 1)

	line := fmt.Sprintf("info depth %d seldepth %d", sd.rootDepth, s.maxSelDepth())

	if abs32(score) >= ValueMateInMaxPly && abs32(score) != ValueInfinite {
		mate := int(ValueMate-abs32(score)+1) / 2
		if score < 0 {
			mate = -mate
		}
		line += fmt.Sprintf(" score mate %d", mate)
	} else {
		line += fmt.Sprintf(" score cp %d", score)
	}

	switch bound {
	case BoundLower:
		line += " lowerbound"
	case BoundUpper:
		line += " upperbound"
	}

	line += fmt.Sprintf(" nodes %d nps %d hashfull %d time %d pv",
		nodes, nps, s.tt.Hashfull(), elapsed)

	pv := &sd.pv[0]
	if pv.size > 0 {
		for i := 0; i < pv.size; i++ {
			line += " " + pv.moves[i].Format(s.chess960)
		}
	} else if sd.bestMove != board.MoveNone {
		line += " " + sd.bestMove.Format(s.chess960)
	} else {
		line += " " + sd.rootMoves[0].Move.Format(s.chess960)
	}

	fmt.Println(line)
}
