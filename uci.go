package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/trevorblacklock/Stella/board"
	"github.com/trevorblacklock/Stella/engine"
)

const (
	engineName   = "Stella"
	engineAuthor = "Trevor Blacklock"
)

func main() {
	newUCI(os.Stdout).loop(os.Stdin)
}

// uci drives one engine session over the UCI protocol. Searches run on a
// background goroutine so stop and quit stay responsive; position and
// option state is only touched between searches.
type uci struct {
	out io.Writer

	pos    *board.Position
	search *engine.Search
	tm     *engine.TimeManager

	chess960     bool
	moveOverhead int
	threads      int

	outMu     sync.Mutex
	searching sync.WaitGroup
}

func newUCI(out io.Writer) *uci {
	pos, _ := board.NewPosition(board.StartFEN, false)
	return &uci{
		out:          out,
		pos:          pos,
		search:       engine.NewSearch(),
		tm:           engine.NewTimeManager(),
		moveOverhead: 10,
		threads:      1,
	}
}

// printf serializes output; bestmove arrives from the search goroutine
// while the loop may be answering isready.
func (u *uci) printf(format string, args ...any) {
	u.outMu.Lock()
	fmt.Fprintf(u.out, format, args...)
	u.outMu.Unlock()
}

func (u *uci) loop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.printf("id name %s\n", engineName)
			u.printf("id author %s\n", engineAuthor)
			u.printf("option name Hash type spin default %d min 1 max 131072\n", engine.DefaultHashMB)
			u.printf("option name Threads type spin default 1 min 1 max 256\n")
			u.printf("option name MoveOverhead type spin default 10 min 0 max 10000\n")
			u.printf("option name UCI_Chess960 type check default false\n")
			u.printf("option name Clear Hash type button\n")
			u.printf("uciok\n")

		case "isready":
			u.printf("readyok\n")

		case "ucinewgame":
			u.searching.Wait()
			u.search.Clear()
			u.pos, _ = board.NewPosition(board.StartFEN, u.chess960)

		case "setoption":
			u.searching.Wait()
			u.setOption(tokens[1:])

		case "position":
			u.searching.Wait()
			u.position(tokens[1:])

		case "go":
			u.searching.Wait()
			u.goCommand(tokens[1:])

		case "stop":
			u.tm.Stop()
			u.searching.Wait()

		case "d":
			u.printf("%s", u.pos.String())

		case "eval":
			ev := engine.NewEval()
			ev.Reset(u.pos)
			u.printf("info string eval %d\n", ev.Evaluate(u.pos))

		case "quit":
			u.tm.Stop()
			u.searching.Wait()
			return

		default:
			u.printf("info string unknown command %s\n", tokens[0])
		}
	}

	u.tm.Stop()
	u.searching.Wait()
}

// setOption handles "setoption name <id> [value <x>]". Option names may
// contain spaces, so everything between name and value is the id.
func (u *uci) setOption(tokens []string) {
	name, value := "", ""
	field := ""
	for _, tok := range tokens {
		switch strings.ToLower(tok) {
		case "name":
			field = "name"
		case "value":
			field = "value"
		default:
			switch field {
			case "name":
				if name != "" {
					name += " "
				}
				name += tok
			case "value":
				if value != "" {
					value += " "
				}
				value += tok
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil {
			u.search.SetHashSize(mb)
		}
	case "threads":
		if n, err := strconv.Atoi(value); err == nil {
			u.threads = n
			u.search.SetThreads(n)
		}
	case "moveoverhead":
		if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
			u.moveOverhead = ms
		}
	case "uci_chess960":
		u.chess960 = strings.EqualFold(value, "true")
	case "clear hash":
		u.search.Clear()
	default:
		u.printf("info string unknown option %s\n", name)
	}
}

// position handles "position [startpos | fen <fen>] [moves ...]".
func (u *uci) position(tokens []string) {
	if len(tokens) == 0 {
		return
	}

	moveIdx := len(tokens)
	for i, tok := range tokens {
		if strings.ToLower(tok) == "moves" {
			moveIdx = i
			break
		}
	}

	var pos *board.Position
	var err error
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		pos, err = board.NewPosition(board.StartFEN, u.chess960)
	case "fen":
		pos, err = board.NewPosition(strings.Join(tokens[1:moveIdx], " "), u.chess960)
	default:
		u.printf("info string invalid position subcommand\n")
		return
	}
	if err != nil {
		u.printf("info string invalid fen: %v\n", err)
		return
	}

	for _, moveStr := range tokens[min(moveIdx+1, len(tokens)):] {
		m := findMove(pos, strings.ToLower(moveStr))
		if m == board.MoveNone {
			u.printf("info string illegal move %s in position %s\n", moveStr, pos.FEN())
			return
		}
		pos.DoMove(m)
	}
	u.pos = pos
}

// findMove resolves coordinate notation against the legal moves of the
// position, which also settles castling encodings for both rule sets.
func findMove(pos *board.Position, moveStr string) board.Move {
	gen := engine.NewPerftGenerator(pos)
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		if m.Format(pos.IsChess960()) == moveStr {
			return m
		}
	}
	return board.MoveNone
}

// goCommand parses the limits and starts the search in the background.
// "go perft N" runs synchronously and prints a divide table instead.
func (u *uci) goCommand(tokens []string) {
	tm := engine.NewTimeManager()
	tm.MoveOverhead = u.moveOverhead

	var wtime, btime, winc, binc, movesToGo int
	timed := false

	for i := 0; i < len(tokens); i++ {
		next := func() int {
			if i+1 < len(tokens) {
				i++
				n, _ := strconv.Atoi(tokens[i])
				return n
			}
			return 0
		}

		switch strings.ToLower(tokens[i]) {
		case "perft":
			u.perft(next())
			return
		case "depth":
			tm.SetDepthLimit(next())
		case "nodes":
			tm.SetNodeLimit(uint64(next()))
		case "movetime":
			tm.SetMoveTimeLimit(uint64(next()))
		case "wtime":
			wtime = next()
			timed = true
		case "btime":
			btime = next()
			timed = true
		case "winc":
			winc = next()
		case "binc":
			binc = next()
		case "movestogo":
			movesToGo = next()
		case "infinite":
		default:
			u.printf("info string unknown go option %s\n", tokens[i])
		}
	}

	if timed {
		remaining, inc := wtime, winc
		if u.pos.SideToMove() == board.Black {
			remaining, inc = btime, binc
		}
		tm.SetTimeLimit(uint64(max(remaining, 1)), uint64(max(inc, 0)), movesToGo, u.pos.GamePly())
	}

	u.tm = tm
	pos := u.pos.Clone()

	u.searching.Add(1)
	go func() {
		defer u.searching.Done()
		best := u.search.Run(pos, tm)
		u.printf("bestmove %s\n", best.Format(pos.IsChess960()))
	}()
}

// perft prints the node count under every root move and the total.
func (u *uci) perft(depth int) {
	if depth <= 0 {
		u.printf("info string perft depth must be positive\n")
		return
	}

	start := time.Now()
	counts, total := engine.Divide(u.pos.Clone(), depth)

	gen := engine.NewPerftGenerator(u.pos)
	for m := gen.Next(); m != board.MoveNone; m = gen.Next() {
		key := m.Format(u.pos.IsChess960())
		u.printf("%s: %d\n", key, counts[key])
	}

	elapsed := time.Since(start)
	u.printf("\nnodes %d time %dms nps %.0f\n",
		total, elapsed.Milliseconds(), float64(total)/max(elapsed.Seconds(), 0.001))
}
