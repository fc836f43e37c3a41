package engine

import (
	"testing"

	"github.com/corvidlabs/chessnnue/internal/board"
	"github.com/corvidlabs/chessnnue/internal/nnue"
)

func newTestPosition(t *testing.T, fen string) (*Position, *nnue.Network) {
	t.Helper()
	net := nnue.NewNetwork(nnue.DefaultNumFeatures, nnue.DefaultL1, nnue.DefaultL2)
	net.InitRandom(1)
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%s): %v", fen, err)
	}
	return NewPosition(net, nnue.SPC{}, b), net
}

func TestPositionMakeMoveKeepsAccumulatorInSync(t *testing.T) {
	pos, net := newTestPosition(t, board.StartFEN)
	ml := pos.Board.GenerateLegalMoves()
	mv := ml.Get(0)

	next := pos.MakeMove(mv)
	fresh := nnue.FromBoard(net.Features, nnue.SPC{}, next.Board)

	for i := range next.Acc.White {
		if next.Acc.White[i] != fresh.White[i] || next.Acc.Black[i] != fresh.Black[i] {
			t.Fatalf("index %d: accumulator diverged after MakeMove", i)
		}
	}
	if next.Ply != pos.Ply+1 {
		t.Fatalf("ply = %d, want %d", next.Ply, pos.Ply+1)
	}
}

func TestPositionNullMoveIllegalInCheck(t *testing.T) {
	pos, _ := newTestPosition(t, "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if _, ok := pos.NullMove(); ok {
		t.Fatal("null move should be illegal while in check")
	}
}

func TestPositionEvalCheckmateIsMatedIn(t *testing.T) {
	pos, _ := newTestPosition(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if !pos.Board.IsCheckmate() {
		t.Fatal("test position should be checkmate")
	}
	got := pos.Eval()
	if got != Mated(int32(pos.Ply)) {
		t.Fatalf("Eval() = %v, want MatedIn(%d)", got, pos.Ply)
	}
}

func TestPositionEvalStalemateIsNeutral(t *testing.T) {
	pos, _ := newTestPosition(t, "k7/8/1Q6/8/8/8/8/6K1 b - - 0 1")
	if !pos.Board.IsStalemate() {
		t.Fatal("test position should be stalemate")
	}
	if got := pos.Eval(); got != Neutral {
		t.Fatalf("Eval() = %v, want Neutral", got)
	}
}
