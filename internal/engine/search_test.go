package engine

import (
	"testing"

	"github.com/corvidlabs/chessnnue/internal/board"
	"github.com/corvidlabs/chessnnue/internal/nnue"
)

type testHandler struct {
	results []SearchResult
	stop    bool
}

func (h *testHandler) NewResult(r SearchResult) { h.results = append(h.results, r) }
func (h *testHandler) ShouldStop() bool         { return h.stop }

func newTestEngine(t *testing.T, fen string, depth int) (*Engine, *testHandler) {
	t.Helper()
	net := nnue.NewNetwork(nnue.DefaultNumFeatures, nnue.DefaultL1, nnue.DefaultL2)
	net.InitRandom(3)
	h := &testHandler{}
	e := NewEngine(net, nnue.SPC{}, EngineOptions{TTSize: 1 << 20, Depth: depth}, h)
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%s): %v", fen, err)
	}
	e.SetPosition(b, []uint64{b.Hash})
	return e, h
}

func TestBestMoveAtDepthOneReturnsLegalMove(t *testing.T) {
	e, _ := newTestEngine(t, board.StartFEN, 1)
	r, ok := e.BestMove(1)
	if !ok {
		t.Fatal("expected a completed iteration")
	}
	legal := e.root.Board.GenerateLegalMoves()
	if !legal.Contains(r.BestMove) {
		t.Fatalf("BestMove %v is not a legal move from the starting position", r.BestMove)
	}
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	// White to move, Ra1-a8# mates: the king on g8 is boxed in by its own
	// f7/g7/h7 pawns, and the rook on a8 controls all of rank 8 including
	// both remaining escape squares f8 and h8.
	e, _ := newTestEngine(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 3)
	r, ok := e.BestMove(1)
	if !ok {
		t.Fatal("expected a completed iteration")
	}
	if r.Eval.Kind() != MateIn {
		t.Fatalf("Eval = %v, want a MateIn score", r.Eval)
	}
}

func TestSearchStalemateReturnsNeutral(t *testing.T) {
	e, _ := newTestEngine(t, "k7/8/1Q6/8/8/8/8/6K1 b - - 0 1", 2)
	r, ok := e.BestMove(1)
	if !ok {
		t.Fatal("expected a completed iteration")
	}
	if r.BestMove != board.NoMove {
		t.Fatalf("stalemate position should have no legal move, got %v", r.BestMove)
	}
	if r.Eval != Neutral {
		t.Fatalf("Eval = %v, want Neutral", r.Eval)
	}
}

func TestRepetitionDetectedAsNeutral(t *testing.T) {
	// Plays g1f3 g8f6 f3g1 f6g8 g1f3 as the real game so far (5 half
	// moves, root to move is black), then searches the 6th half move
	// g8f6, which recreates the position reached after the first g8f6 —
	// a genuine repeated position two (same-side) positions back.
	net := nnue.NewNetwork(nnue.DefaultNumFeatures, nnue.DefaultL1, nnue.DefaultL2)
	net.InitRandom(11)
	h := &testHandler{}

	b := board.NewPosition()
	history := []uint64{b.Hash}
	for _, mv := range []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3"} {
		m, err := board.ParseMove(mv, b)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", mv, err)
		}
		b.MakeMove(m)
		history = append(history, b.Hash)
	}

	tt := NewTT(1 << 16)
	s := NewSearcher(tt, h)
	s.SetHistory(history)

	fs := nnue.SPC{}
	root := NewPosition(net, fs, b)
	repeatMove, err := board.ParseMove("g8f6", b)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	child := root.MakeMove(repeatMove)

	score, ok := s.searchNode(child, 1, Worst, Best, true)
	if !ok {
		t.Fatal("search aborted unexpectedly")
	}
	if score != Neutral {
		t.Fatalf("expected Neutral at a repeated position, got %v", score)
	}
}

func TestTTHitCountIncreasesOnRerun(t *testing.T) {
	e, _ := newTestEngine(t, board.StartFEN, 3)
	if _, ok := e.BestMove(1); !ok {
		t.Fatal("first search did not complete")
	}
	before := e.searcher.tblHits

	e.SetPosition(e.root.Board, []uint64{e.root.Board.Hash})
	if _, ok := e.BestMove(3); !ok {
		t.Fatal("second search did not complete")
	}
	if e.searcher.tblHits <= before {
		t.Fatalf("expected TT hits to increase on rerun, got %d then %d", before, e.searcher.tblHits)
	}
}
