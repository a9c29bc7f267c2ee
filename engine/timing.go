package engine

import (
	"math"
	"sync/atomic"
	"time"
)

// limit is one optional search bound.
type limit struct {
	enabled bool
	max     uint64
}

// TimeManager decides when a search has to stop. Limits can stack: depth,
// node and movetime caps plus a classical time control with an optimal
// budget (stop starting new iterations) and a hard maximum (abort the
// tree). The force-stop flag is the only piece shared across threads.
type TimeManager struct {
	start time.Time

	depthLimit    limit
	nodeLimit     limit
	moveTimeLimit limit

	timeLimit struct {
		enabled bool
		max     uint64
		optimal uint64
	}

	// MoveOverhead is subtracted from every time budget to absorb GUI and
	// transport latency, in milliseconds.
	MoveOverhead int

	forceStop atomic.Bool
}

// NewTimeManager returns a reset manager with the default overhead.
func NewTimeManager() *TimeManager {
	tm := &TimeManager{MoveOverhead: 10}
	tm.Reset()
	return tm
}

// Reset clears every limit and restarts the clock.
func (tm *TimeManager) Reset() {
	tm.start = time.Now()
	tm.depthLimit = limit{}
	tm.nodeLimit = limit{}
	tm.moveTimeLimit = limit{}
	tm.timeLimit.enabled = false
	tm.forceStop.Store(false)
}

// Elapsed returns milliseconds since the search began.
func (tm *TimeManager) Elapsed() uint64 {
	return uint64(time.Since(tm.start) / time.Millisecond)
}

// Stop forces the search to unwind as soon as it polls.
func (tm *TimeManager) Stop() { tm.forceStop.Store(true) }

// Stopped reports whether a stop has been forced.
func (tm *TimeManager) Stopped() bool { return tm.forceStop.Load() }

// SetDepthLimit caps the iterative deepening depth.
func (tm *TimeManager) SetDepthLimit(d int) {
	tm.depthLimit = limit{enabled: true, max: uint64(d)}
}

// MaxDepth returns the allowed search depth.
func (tm *TimeManager) MaxDepth() int {
	if tm.depthLimit.enabled && tm.depthLimit.max < MaxPly-1 {
		return int(tm.depthLimit.max)
	}
	return MaxPly - 1
}

// SetNodeLimit caps the total searched nodes.
func (tm *TimeManager) SetNodeLimit(nodes uint64) {
	tm.nodeLimit = limit{enabled: true, max: nodes}
}

// SetMoveTimeLimit fixes the time for this move in milliseconds.
func (tm *TimeManager) SetMoveTimeLimit(ms uint64) {
	tm.moveTimeLimit = limit{enabled: true, max: ms}
}

// SetTimeLimit derives optimal and maximum budgets from the remaining
// time, increment and expected moves to go. With an unknown horizon the
// scale is extrapolated on a log curve of the remaining time.
func (tm *TimeManager) SetTimeLimit(remaining, inc uint64, movesToGo, ply int) {
	overhead := uint64(tm.MoveOverhead)
	if overhead == 0 && inc == 0 {
		overhead = 10
	}

	mtg := 50
	if movesToGo > 0 && movesToGo < 50 {
		mtg = movesToGo
	}
	if remaining < 1000 && inc == 0 {
		mtg = int(remaining / 20)
		if mtg < 1 {
			mtg = 1
		}
	}

	timeLeft := int64(remaining) + int64(inc)*int64(mtg) - int64(overhead)*int64(mtg)
	if timeLeft < 1 {
		timeLeft = 1
	}

	var optimalScale, maxScale float64
	if movesToGo == 0 {
		logTime := math.Log10(float64(timeLeft) / 1000.0)
		optimal := math.Min(0.003+0.0005*logTime, 0.005)
		maxConst := math.Max(3.5+3.0*logTime, 2.9)

		optimalScale = math.Min(0.01+math.Sqrt(float64(ply))*optimal,
			0.2*float64(remaining)/float64(timeLeft))
		maxScale = math.Min(6.0, maxConst+float64(ply)/10.0)
	} else {
		optimalScale = math.Min(float64(ply)/500.0+0.5/float64(mtg),
			0.9*float64(remaining)/float64(timeLeft))
		maxScale = math.Min(6.0, 1.5+0.1*float64(mtg))
	}

	optimalTime := uint64(float64(timeLeft) * optimalScale)
	maxTime := uint64(math.Min(0.7*float64(remaining)-float64(overhead),
		maxScale*float64(optimalTime)))
	if maxTime < 1 {
		maxTime = 1
	}

	tm.timeLimit.enabled = true
	tm.timeLimit.optimal = optimalTime
	tm.timeLimit.max = maxTime
}

// CanContinue is the hard check polled inside the tree: false once any
// limit is exhausted or a stop was forced.
func (tm *TimeManager) CanContinue(nodes uint64) bool {
	if tm.Stopped() {
		return false
	}
	if tm.nodeLimit.enabled && nodes >= tm.nodeLimit.max {
		return false
	}
	if tm.moveTimeLimit.enabled && tm.Elapsed() >= tm.moveTimeLimit.max {
		return false
	}
	if tm.timeLimit.enabled && tm.Elapsed() >= tm.timeLimit.max {
		return false
	}
	return true
}

// ShouldDeepen gates the next iterative deepening round: a new iteration
// is only worth starting while under the optimal budget.
func (tm *TimeManager) ShouldDeepen(nodes uint64) bool {
	if !tm.CanContinue(nodes) {
		return false
	}
	if tm.timeLimit.enabled && tm.Elapsed() >= tm.timeLimit.optimal {
		return false
	}
	return true
}
