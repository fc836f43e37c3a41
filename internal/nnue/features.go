package nnue

import "github.com/corvidlabs/chessnnue/internal/board"

// FeatureSet is the capability contract shared by every feature scheme: how
// many total features it has, the ceiling on how many can be simultaneously
// active in one perspective's accumulator (every piece on the board that the
// scheme indexes, both colors, short of the king for schemes that exclude
// it), whether a moved piece forces a full accumulator rebuild, and how to
// turn a (perspective, king square, piece) tuple into a feature index.
type FeatureSet interface {
	TotalFeatures() int
	FeaturesPerSide() int
	// Active reports whether the given piece type has its own feature
	// index in this scheme (HalfKP excludes the king).
	Active(pt board.PieceType) bool
	// RequiresRebuild reports whether moving a piece of this type forces
	// a from-scratch accumulator rebuild rather than an incremental update.
	RequiresRebuild(pt board.PieceType) bool
	// FeatureIndex returns the feature index for a piece of type pt and
	// color pieceColor sitting on sq, as seen from perspective. kingSq is
	// the perspective side's own king square; schemes that don't need
	// king-relative indexing ignore it.
	FeatureIndex(perspective board.Color, kingSq, sq board.Square, pt board.PieceType, pieceColor board.Color) int
}

// SPC (simple piece-color) indexes every square by piece type and color,
// independent of king position. 6 piece types * 2 colors * 64 squares = 768.
type SPC struct{}

func (SPC) TotalFeatures() int                   { return DefaultNumFeatures }
func (SPC) FeaturesPerSide() int                 { return 32 } // 32 pieces max on a board, king included
func (SPC) Active(board.PieceType) bool          { return true }
func (SPC) RequiresRebuild(board.PieceType) bool { return false }

func (SPC) FeatureIndex(perspective board.Color, _, sq board.Square, pt board.PieceType, pieceColor board.Color) int {
	s := sq
	c := pieceColor
	if perspective == board.Black {
		s = s.Mirror()
		c = c.Other()
	}
	return int(s) + 64*(int(pt)+6*int(c))
}

// HalfKP indexes non-king pieces relative to the perspective side's own
// king square. 64 king squares * 64 piece squares * 5 piece types * 2
// colors = 40960. Any king move invalidates every feature index computed
// from the old king square, so it forces a full rebuild.
type HalfKP struct{}

const halfKPPieceTypes = 5 // Pawn..Queen, King excluded

func (HalfKP) TotalFeatures() int   { return HalfKPFeatures }
func (HalfKP) FeaturesPerSide() int { return 30 } // 32 pieces max minus both kings

func (HalfKP) Active(pt board.PieceType) bool {
	return pt != board.King
}

func (HalfKP) RequiresRebuild(pt board.PieceType) bool {
	return pt == board.King
}

func (HalfKP) FeatureIndex(perspective board.Color, kingSq, sq board.Square, pt board.PieceType, pieceColor board.Color) int {
	ks := kingSq
	ps := sq
	if perspective == board.Black {
		ks = ks.Mirror()
		ps = ps.Mirror()
	}
	relColor := 0
	if pieceColor != perspective {
		relColor = 1
	}
	pieceIdx := int(pt) + halfKPPieceTypes*relColor
	return int(ks)*(halfKPPieceTypes*2*64) + pieceIdx*64 + int(ps)
}
