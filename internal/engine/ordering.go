package engine

import "github.com/corvidlabs/chessnnue/internal/board"

// Ordering score bands: killers outrank every capture, captures are keyed
// by SEE and outrank quiet non-killer moves, which sort by a plain
// from/to history used only to break ties deterministically.
const (
	killerBase  = 2_000_000
	captureBase = 1_000_000
)

// Orderer holds the per-ply killer table and a from/to history table used
// only as a tiebreaker among quiet moves.
type Orderer struct {
	killers [MaxPly][2]board.Move
	history [64][64]int
}

func NewOrderer() *Orderer {
	return &Orderer{}
}

// Clear resets killers and ages history for a new search.
func (o *Orderer) Clear() {
	for i := range o.killers {
		o.killers[i][0] = board.NoMove
		o.killers[i][1] = board.NoMove
	}
	for i := range o.history {
		for j := range o.history[i] {
			o.history[i][j] /= 2
		}
	}
}

// Score returns the ordering key for move m at the given ply: Killer rank,
// then SEE for captures, then None (history tiebreak) for quiet moves.
func (o *Orderer) Score(pos *board.Position, m board.Move, ply int) int {
	if m == o.killers[ply][0] {
		return killerBase + 1
	}
	if m == o.killers[ply][1] {
		return killerBase
	}
	if m.IsCapture(pos) {
		return captureBase + SEE(pos, m)
	}
	return o.history[m.From()][m.To()]
}

// ScoreAll scores every move in moves for sorting.
func (o *Orderer) ScoreAll(pos *board.Position, moves *board.MoveList, ply int) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = o.Score(pos, moves.Get(i), ply)
	}
	return scores
}

// PickMove moves the highest-scoring remaining move (from index onward)
// into index, a lazy partial selection sort so the searcher need not sort
// moves it never visits.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers inserts m as a killer at ply: the two slots behave as a
// size-2 front-pushing queue, a duplicate of slot 0 is a no-op.
func (o *Orderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly {
		return
	}
	if o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// UpdateHistory nudges the history tiebreaker for a quiet move that caused
// a beta cutoff at the given depth.
func (o *Orderer) UpdateHistory(m board.Move, depth int) {
	o.history[m.From()][m.To()] += depth * depth
}
