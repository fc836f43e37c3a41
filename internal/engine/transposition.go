package engine

import (
	"math/bits"

	"github.com/corvidlabs/chessnnue/internal/board"
)

// Bound is the kind of score stored in a TT entry.
type Bound uint8

const (
	Invalid Bound = iota
	Exact
	LowerBound
	UpperBound
)

// TTEntry is one transposition-table slot. A slot with Flag Invalid is
// empty regardless of the rest of its contents.
type TTEntry struct {
	Hash     uint64
	Flag     Bound
	Depth    int
	Score    Score
	BestMove board.Move
}

// TT is a fixed-capacity, no-probing transposition table: slot index is the
// Zhang-style multiply-high `(hash * N) >> 64`, so the table size need not
// be a power of two, and collisions simply replace under the §4.G policy.
type TT struct {
	entries []TTEntry
}

// NewTT sizes the table so entries occupy approximately budgetBytes.
func NewTT(budgetBytes int) *TT {
	n := budgetBytes / entrySize
	if n < 1 {
		n = 1
	}
	return &TT{entries: make([]TTEntry, n)}
}

const entrySize = 40 // bytes per TTEntry on 64-bit platforms, for sizing only

func (tt *TT) slot(hash uint64) int {
	hi, _ := bits.Mul64(hash, uint64(len(tt.entries)))
	return int(hi)
}

// Get looks up hash and, if present, returns its entry with the stored
// score shifted from root-relative (ply zero) to the given ply.
func (tt *TT) Get(hash uint64, ply int) (TTEntry, bool) {
	e := tt.entries[tt.slot(hash)]
	if e.Flag == Invalid || e.Hash != hash {
		return TTEntry{}, false
	}
	e.Score = e.Score.AddPly(int32(ply))
	return e, true
}

// Set stores entry at hash's slot, replacing the current occupant when
// either the current occupant has the same hash and the new flag is Exact,
// or the new depth is at least the stored depth. The score is recorded
// root-relative (ply zero) regardless of the ply it was computed at.
func (tt *TT) Set(hash uint64, ply int, flag Bound, depth int, score Score, best board.Move) {
	idx := tt.slot(hash)
	cur := tt.entries[idx]

	sameHashExact := cur.Flag != Invalid && cur.Hash == hash && flag == Exact
	deeperOrEqual := depth >= cur.Depth
	if cur.Flag != Invalid && !sameHashExact && !deeperOrEqual {
		return
	}

	tt.entries[idx] = TTEntry{
		Hash:     hash,
		Flag:     flag,
		Depth:    depth,
		Score:    score.SubPly(int32(ply)),
		BestMove: best,
	}
}

// Clear empties every slot.
func (tt *TT) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// HashFull estimates occupancy in permille, sampling the first 1000 slots
// (or every slot, if the table is smaller) — the conventional UCI metric.
func (tt *TT) HashFull() int {
	n := len(tt.entries)
	sample := n
	if sample > 1000 {
		sample = 1000
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.entries[i].Flag != Invalid {
			used++
		}
	}
	return used * 1000 / sample
}
