package engine

import (
	"github.com/corvidlabs/chessnnue/internal/board"
	"github.com/corvidlabs/chessnnue/internal/nnue"
)

// Position pairs a board with an NNUE accumulator kept in sync with it and
// a ply counter measured from the search root. It is immutable by move:
// MakeMove and NullMove return a new value rather than mutating the
// receiver, so the search tree can hold many live Positions at once without
// them interfering.
type Position struct {
	Board *board.Position
	Acc   *nnue.Accumulator
	Ply   int

	net *nnue.Network
	fs  nnue.FeatureSet
}

// NewPosition builds the root Position for b, computing its accumulator
// from scratch.
func NewPosition(net *nnue.Network, fs nnue.FeatureSet, b *board.Position) *Position {
	return &Position{
		Board: b.Copy(),
		Acc:   nnue.FromBoard(net.Features, fs, b),
		Ply:   0,
		net:   net,
		fs:    fs,
	}
}

// MakeMove returns a new Position reflecting mv played from p: the board is
// cloned and advanced, the accumulator is incrementally updated (or rebuilt
// from scratch, per the feature scheme's rebuild rule), and the ply counter
// increments by one.
func (p *Position) MakeMove(mv board.Move) *Position {
	next := p.Board.Copy()
	next.MakeMove(mv)
	acc := p.Acc.Update(p.net.Features, p.fs, p.Board, next, mv)
	return &Position{Board: next, Acc: acc, Ply: p.Ply + 1, net: p.net, fs: p.fs}
}

// NullMove returns a Position with side to move flipped and the same
// accumulator (no board feature changed), or false if the side to move is
// currently in check, where a null move would be illegal.
func (p *Position) NullMove() (*Position, bool) {
	if p.Board.InCheck() {
		return nil, false
	}
	next := p.Board.Copy()
	next.MakeNullMove()
	return &Position{Board: next, Acc: p.Acc, Ply: p.Ply + 1, net: p.net, fs: p.fs}, true
}

// Eval returns the terminal-adjusted NNUE score: MatedIn(ply) if the side
// to move is checkmated, Neutral for any other drawn or terminal-without-
// progress position (stalemate, fifty-move, insufficient material), and
// the raw NNUE output otherwise.
func (p *Position) Eval() Score {
	if p.Board.IsCheckmate() {
		return Mated(int32(p.Ply))
	}
	if p.Board.IsDraw() {
		return Neutral
	}
	cp := p.net.Evaluate(p.Acc, p.Board.SideToMove)
	return Cp(cp)
}
