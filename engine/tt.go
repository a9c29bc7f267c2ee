package engine

import (
	"unsafe"

	"github.com/trevorblacklock/Stella/board"
)

// Bound classifies a stored score relative to the search window.
type Bound uint8

const (
	BoundNone  Bound = 0
	BoundUpper Bound = 1
	BoundLower Bound = 2
	BoundExact Bound = BoundUpper | BoundLower
)

// ttEntry is one packed slot. The upper 32 key bits verify a probe, the
// node byte packs the PV flag above the two bound bits and the age byte
// carries the table generation the entry was written in.
type ttEntry struct {
	key32 uint32
	score int16
	eval  int16
	move  uint16
	depth uint8
	node  uint8
	age   uint8
}

// TTEntry is the unpacked probe result handed to the search.
type TTEntry struct {
	Move  board.Move
	Score Value
	Eval  Value
	Depth int
	Bound Bound
	PV    bool
}

// TT is a shared transposition table. Workers read and write it without
// locks; a torn entry is caught by the key check or at worst misorders a
// move, both of which the search tolerates. Scores are stored ply-adjusted
// by the caller through valueToTT.
type TT struct {
	entries    []ttEntry
	generation uint8
}

// DefaultHashMB is the table size used until a Hash option arrives.
const DefaultHashMB = 16

// NewTT allocates a table of roughly the given size in megabytes.
func NewTT(mb int) *TT {
	t := &TT{}
	t.Resize(mb)
	return t
}

// Resize reallocates the table, dropping all stored entries. The entry
// count is rounded down to a power of two so indexing is a single mask.
func (t *TT) Resize(mb int) {
	bytes := uint64(mb) << 20
	num := bytes / uint64(unsafe.Sizeof(ttEntry{}))
	for num&(num-1) != 0 {
		num &= num - 1
	}
	if num == 0 {
		num = 1
	}
	t.entries = make([]ttEntry, num)
	t.generation = 0
}

// Clear zeroes the table in place.
func (t *TT) Clear() {
	for i := range t.entries {
		t.entries[i] = ttEntry{}
	}
	t.generation = 0
}

// NewSearch bumps the generation so older entries lose replacement fights.
func (t *TT) NewSearch() { t.generation++ }

func (t *TT) index(key uint64) uint64 { return key & (uint64(len(t.entries)) - 1) }

// Probe looks up a position. The boolean reports whether a valid entry
// with a matching key was found.
func (t *TT) Probe(key uint64) (TTEntry, bool) {
	e := t.entries[t.index(key)]
	if e.key32 != uint32(key>>32) || e.node == 0 {
		return TTEntry{}, false
	}
	return TTEntry{
		Move:  board.Move(e.move),
		Score: Value(e.score),
		Eval:  Value(e.eval),
		Depth: int(e.depth),
		Bound: Bound(e.node & 3),
		PV:    e.node&4 != 0,
	}, true
}

// Save stores an entry, replacing the incumbent when the new data is an
// exact bound, belongs to a different position, comes from a newer search
// or searched at least as deep.
func (t *TT) Save(key uint64, depth int, score, eval Value, m board.Move, b Bound, pv bool) {
	idx := t.index(key)
	e := &t.entries[idx]

	key32 := uint32(key >> 32)
	if !(b == BoundExact || e.key32 != key32 || e.age != t.generation || e.depth <= uint8(depth)) {
		return
	}

	// Keep the old move when the new search found nothing better.
	if m == board.MoveNone && e.key32 == key32 {
		m = board.Move(e.move)
	}

	node := uint8(b)
	if pv {
		node |= 4
	}

	*e = ttEntry{
		key32: key32,
		score: int16(score),
		eval:  int16(eval),
		move:  uint16(m),
		depth: uint8(depth),
		node:  node,
		age:   t.generation,
	}
}

// Hashfull estimates table saturation in permill by sampling the first
// thousand entries for the current generation, matching the UCI field.
func (t *TT) Hashfull() int {
	n := 1000
	if len(t.entries) < n {
		n = len(t.entries)
	}
	used := 0
	for i := 0; i < n; i++ {
		if t.entries[i].node != 0 && t.entries[i].age == t.generation {
			used++
		}
	}
	if n == 0 {
		return 0
	}
	return used * 1000 / n
}
