package nnue

import (
	"github.com/corvidlabs/chessnnue/internal/board"
	"github.com/corvidlabs/chessnnue/internal/vecops"
)

// Accumulator holds the two L1-sized dense activations, one per color
// perspective, kept in sync with a board's active features.
type Accumulator struct {
	White []int16
	Black []int16
}

// Empty initializes both perspectives to the feature layer's bias.
func Empty(layer *FeatureLayer) *Accumulator {
	acc := &Accumulator{
		White: make([]int16, layer.Output),
		Black: make([]int16, layer.Output),
	}
	copy(acc.White, layer.Bias)
	copy(acc.Black, layer.Bias)
	return acc
}

// Clone returns an independent value copy, used when forking along a move.
func (acc *Accumulator) Clone() *Accumulator {
	out := &Accumulator{
		White: make([]int16, len(acc.White)),
		Black: make([]int16, len(acc.Black)),
	}
	copy(out.White, acc.White)
	copy(out.Black, acc.Black)
	return out
}

func (acc *Accumulator) vector(c board.Color) []int16 {
	if c == board.White {
		return acc.White
	}
	return acc.Black
}

// AddFeature adds the idx-th feature-layer column into the named
// perspective's vector.
func (acc *Accumulator) AddFeature(layer *FeatureLayer, idx int, perspective board.Color) {
	vecops.AddI16(acc.vector(perspective), layer.Weights[idx])
}

// RemoveFeature subtracts the idx-th feature-layer column from the named
// perspective's vector.
func (acc *Accumulator) RemoveFeature(layer *FeatureLayer, idx int, perspective board.Color) {
	vecops.SubI16(acc.vector(perspective), layer.Weights[idx])
}

// FromBoard builds a fresh accumulator from scratch by adding every active
// feature of pos for both perspectives.
func FromBoard(layer *FeatureLayer, fs FeatureSet, pos *board.Position) *Accumulator {
	acc := Empty(layer)
	wKing := pos.KingSquare[board.White]
	bKing := pos.KingSquare[board.Black]
	for sq := board.Square(0); sq < 64; sq++ {
		p := pos.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		pt := p.Type()
		if !fs.Active(pt) {
			continue
		}
		pc := p.Color()
		acc.AddFeature(layer, fs.FeatureIndex(board.White, wKing, sq, pt, pc), board.White)
		acc.AddFeature(layer, fs.FeatureIndex(board.Black, bKing, sq, pt, pc), board.Black)
	}
	return acc
}

func epCapturedSquare(to board.Square, moverColor board.Color) board.Square {
	if moverColor == board.White {
		return to - 8
	}
	return to + 8
}

// Update returns a fresh accumulator reflecting move m played on prev to
// reach next. If the moved piece forces a rebuild under fs (a king move
// under HalfKP), the result is built from scratch from next; otherwise the
// receiver is cloned and updated incrementally: the captured piece's
// feature is removed (from the en-passant square for en-passant captures),
// the mover's origin-square feature is removed, the destination feature
// is added using the promoted piece type on promotion, and on castling the
// rook's feature is moved as well.
func (acc *Accumulator) Update(layer *FeatureLayer, fs FeatureSet, prev, next *board.Position, m board.Move) *Accumulator {
	moved := prev.PieceAt(m.From())
	pt := moved.Type()
	color := moved.Color()

	if fs.RequiresRebuild(pt) {
		return FromBoard(layer, fs, next)
	}

	result := acc.Clone()
	wKing := next.KingSquare[board.White]
	bKing := next.KingSquare[board.Black]

	remove := func(pt board.PieceType, pc board.Color, sq board.Square) {
		if !fs.Active(pt) {
			return
		}
		result.RemoveFeature(layer, fs.FeatureIndex(board.White, wKing, sq, pt, pc), board.White)
		result.RemoveFeature(layer, fs.FeatureIndex(board.Black, bKing, sq, pt, pc), board.Black)
	}
	add := func(pt board.PieceType, pc board.Color, sq board.Square) {
		if !fs.Active(pt) {
			return
		}
		result.AddFeature(layer, fs.FeatureIndex(board.White, wKing, sq, pt, pc), board.White)
		result.AddFeature(layer, fs.FeatureIndex(board.Black, bKing, sq, pt, pc), board.Black)
	}

	if m.IsEnPassant() {
		capSq := epCapturedSquare(m.To(), color)
		if captured := prev.PieceAt(capSq); captured != board.NoPiece {
			remove(captured.Type(), captured.Color(), capSq)
		}
	} else if captured := prev.PieceAt(m.To()); captured != board.NoPiece {
		remove(captured.Type(), captured.Color(), m.To())
	}

	remove(pt, color, m.From())

	destPt := pt
	if m.IsPromotion() {
		destPt = m.Promotion()
	}
	add(destPt, color, m.To())

	if m.IsCastling() {
		rank := m.From().Rank()
		rookFrom, rookTo := board.NewSquare(7, rank), board.NewSquare(5, rank)
		if m.To() < m.From() {
			rookFrom, rookTo = board.NewSquare(0, rank), board.NewSquare(3, rank)
		}
		remove(board.Rook, color, rookFrom)
		add(board.Rook, color, rookTo)
	}

	return result
}
