package engine

import (
	"github.com/corvidlabs/chessnnue/internal/board"
	"github.com/corvidlabs/chessnnue/internal/nnue"
)

// EngineOptions configures an Engine: tt_size is the transposition table's
// memory budget in bytes, depth the default iterative-deepening ceiling.
type EngineOptions struct {
	TTSize int
	Depth  int
}

// Engine drives iterative deepening over a single root Position, reusing
// its Searcher's transposition table across depths (killers are reset at
// the start of every iteration).
type Engine struct {
	options  EngineOptions
	searcher *Searcher
	net      *nnue.Network
	fs       nnue.FeatureSet
	root     *Position
}

// NewEngine builds an Engine for the given network, feature scheme, and
// handler. Call SetPosition before BestMove.
func NewEngine(net *nnue.Network, fs nnue.FeatureSet, options EngineOptions, handler Handler) *Engine {
	tt := NewTT(options.TTSize)
	return &Engine{
		options:  options,
		searcher: NewSearcher(tt, handler),
		net:      net,
		fs:       fs,
	}
}

// SetPosition replaces the root position, rebuilding its accumulator from
// scratch, and installs history as the repetition-history stack (the
// Zobrist hashes of every position reached so far in the real game,
// including the new root, oldest first).
func (e *Engine) SetPosition(b *board.Position, history []uint64) {
	e.root = NewPosition(e.net, e.fs, b)
	e.searcher.SetHistory(history)
}

// SetHandler installs a new stop/result handler.
func (e *Engine) SetHandler(h Handler) {
	e.searcher.handler = h
}

// Handler returns the currently installed handler.
func (e *Engine) Handler() Handler {
	return e.searcher.handler
}

// BestMove runs iterative deepening from fromDepth up to the configured
// max depth, feeding each completed iteration's best move back in as the
// next iteration's root hint. Returns the last completed iteration's
// result, or false if no iteration completed (an immediate stop request).
func (e *Engine) BestMove(fromDepth int) (SearchResult, bool) {
	var result SearchResult
	have := false
	var hint board.Move = board.NoMove

	for d := fromDepth; d <= e.options.Depth; d++ {
		r, ok := e.searcher.Search(e.root, d, true, hint)
		if !ok {
			break
		}
		e.searcher.handler.NewResult(r)
		result = r
		have = true
		hint = r.BestMove
		if r.Eval.IsMate() {
			break
		}
	}

	return result, have
}
