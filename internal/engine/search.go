package engine

import "github.com/corvidlabs/chessnnue/internal/board"

// nullMoveReduction is the R in the null-move pruning depth reduction
// depth - R - 1.
const nullMoveReduction = 2

// Stats summarizes one completed search.
type Stats struct {
	NodesVisited int
	Depth        int
	SelDepth     int
	TblHits      int
}

// SearchResult is the outcome of one iterative-deepening iteration.
type SearchResult struct {
	BestMove board.Move
	Eval     Score
	Stats    Stats
	Hashfull int
	PV       [MaxPly]board.Move
}

// Handler is the caller-supplied capability consulted during search:
// NewResult is invoked once per completed iterative-deepening iteration,
// ShouldStop is polled at the top of every interior node.
type Handler interface {
	NewResult(SearchResult)
	ShouldStop() bool
}

// Searcher runs one root search at a time. The transposition table and
// repetition history it holds are reused across searches and across
// iterative-deepening depths; each Search clears the killer table and
// halves the history tiebreaker before it starts.
type Searcher struct {
	tt      *TT
	orderer *Orderer
	handler Handler
	history []uint64

	nodes    int
	selDepth int
	tblHits  int
}

func NewSearcher(tt *TT, handler Handler) *Searcher {
	return &Searcher{tt: tt, orderer: NewOrderer(), handler: handler}
}

// SetHistory installs the repetition-history stack (Zobrist hashes of every
// position reached so far in the real game, root position last).
func (s *Searcher) SetHistory(history []uint64) {
	s.history = append([]uint64(nil), history...)
}

func (s *Searcher) baseHistoryLen() int {
	return len(s.history)
}

// Search runs the root driver for the given depth: the hint move (from the
// previous completed iteration, if any) is searched first, then the
// remaining legal moves in ordering order. Returns false if the search was
// aborted by the stop flag before completing.
func (s *Searcher) Search(root *Position, depth int, quiesce bool, hint board.Move) (SearchResult, bool) {
	s.nodes = 0
	s.selDepth = 0
	s.tblHits = 0
	s.orderer.Clear()
	baseLen := s.baseHistoryLen()

	legal := root.Board.GenerateLegalMoves()

	var bestMove board.Move = board.NoMove
	bestEval := Worst
	haveResult := false

	searchChild := func(mv board.Move) (Score, bool) {
		child := root.MakeMove(mv)
		alpha, beta := Worst, Best
		if haveResult {
			beta = bestEval.Negate()
		}
		score, ok := s.searchNode(child, depth-1, alpha, beta, quiesce)
		if !ok {
			return Score{}, false
		}
		return score.Negate(), true
	}

	tryMove := func(mv board.Move) bool {
		score, ok := searchChild(mv)
		if !ok {
			return false
		}
		if !haveResult || score.Greater(bestEval) {
			bestEval = score
			bestMove = mv
			haveResult = true
		}
		return true
	}

	if hint != board.NoMove && legal.Contains(hint) {
		if !tryMove(hint) {
			s.history = s.history[:baseLen]
			return SearchResult{}, false
		}
	}

	scores := s.orderer.ScoreAll(root.Board, legal, 0)
	for i := 0; i < legal.Len(); i++ {
		PickMove(legal, scores, i)
		mv := legal.Get(i)
		if mv == hint {
			continue
		}
		if !tryMove(mv) {
			s.history = s.history[:baseLen]
			return SearchResult{}, false
		}
	}

	s.history = s.history[:baseLen]

	if !haveResult {
		return SearchResult{BestMove: board.NoMove, Eval: root.Eval(), Stats: s.stats(depth)}, true
	}

	return SearchResult{
		BestMove: bestMove,
		Eval:     bestEval,
		Stats:    s.stats(depth),
		Hashfull: s.tt.HashFull(),
		PV:       s.reconstructPV(root, bestMove, depth),
	}, true
}

func (s *Searcher) stats(depth int) Stats {
	return Stats{NodesVisited: s.nodes, Depth: depth, SelDepth: s.selDepth, TblHits: s.tblHits}
}

func (s *Searcher) reconstructPV(root *Position, first board.Move, depth int) [MaxPly]board.Move {
	var pv [MaxPly]board.Move
	for i := range pv {
		pv[i] = board.NoMove
	}
	if first == board.NoMove {
		return pv
	}
	pv[0] = first
	cur := root.MakeMove(first)
	for i := 1; i < depth && i < MaxPly; i++ {
		e, ok := s.tt.Get(cur.Board.Hash, cur.Ply)
		if !ok || e.Flag != Exact || e.BestMove == board.NoMove {
			break
		}
		pv[i] = e.BestMove
		cur = cur.MakeMove(e.BestMove)
	}
	return pv
}

// searchNode is the interior-node search: a result of (Score{}, false)
// means the stop flag fired and must propagate to the root unchanged.
func (s *Searcher) searchNode(pos *Position, depth int, alpha, beta Score, quiesceAtLeaf bool) (Score, bool) {
	if s.handler.ShouldStop() {
		return Score{}, false
	}
	s.nodes++
	if pos.Ply > s.selDepth {
		s.selDepth = pos.Ply
	}

	if e, ok := s.tt.Get(pos.Board.Hash, pos.Ply); ok && e.Depth >= depth {
		s.tblHits++
		switch e.Flag {
		case Exact:
			return e.Score, true
		case LowerBound:
			if e.Score.Greater(alpha) {
				alpha = e.Score
			}
		case UpperBound:
			if e.Score.Less(beta) {
				beta = e.Score
			}
		}
		if !alpha.Less(beta) {
			return e.Score, true
		}
	}

	alphaOrig := alpha

	s.history = append(s.history, pos.Board.Hash)
	defer func() { s.history = s.history[:len(s.history)-1] }()

	if pos.Board.InCheck() {
		depth++
	}

	if s.isRepetition() {
		return Neutral, true
	}

	if depth == 0 {
		if quiesceAtLeaf {
			return s.quiescence(pos, alpha, beta)
		}
		return pos.Eval(), true
	}

	legal := pos.Board.GenerateLegalMoves()
	if legal.Len() == 0 {
		if pos.Board.InCheck() {
			return Mated(int32(pos.Ply)), true
		}
		return Neutral, true
	}

	if s.canTryNullMove(pos, depth) {
		if np, ok := pos.NullMove(); ok {
			childDepth := depth - nullMoveReduction - 1
			if childDepth < 0 {
				childDepth = 0
			}
			score, ok := s.searchNode(np, childDepth, beta.Negate(), beta.Negate().NextUp(), quiesceAtLeaf)
			if !ok {
				return Score{}, false
			}
			score = score.Negate()
			if score.Greater(beta) || score == beta {
				return score, true
			}
		}
	}

	var ttMove board.Move = board.NoMove
	if e, ok := s.tt.Get(pos.Board.Hash, pos.Ply); ok {
		ttMove = e.BestMove
	}

	bestScore := Worst
	var bestMove board.Move = board.NoMove
	pv := true

	tryChild := func(mv board.Move, window func() (Score, Score)) (Score, bool) {
		a, b := window()
		child := pos.MakeMove(mv)
		score, ok := s.searchNode(child, depth-1, a, b, quiesceAtLeaf)
		if !ok {
			return Score{}, false
		}
		return score.Negate(), true
	}

	if ttMove != board.NoMove && legal.Contains(ttMove) {
		score, ok := tryChild(ttMove, func() (Score, Score) { return beta.Negate(), alpha.Negate() })
		if !ok {
			return Score{}, false
		}
		bestScore = score
		bestMove = ttMove
		if score.Greater(alpha) {
			alpha = score
			pv = false
		}
	}

	scores := s.orderer.ScoreAll(pos.Board, legal, pos.Ply)
	cutoff := false
	if !alpha.Less(beta) {
		cutoff = true
	}

	for i := 0; !cutoff && i < legal.Len(); i++ {
		PickMove(legal, scores, i)
		mv := legal.Get(i)
		if mv == ttMove {
			continue
		}

		var score Score
		var ok bool
		if pv {
			score, ok = tryChild(mv, func() (Score, Score) { return beta.Negate(), alpha.Negate() })
		} else {
			score, ok = tryChild(mv, func() (Score, Score) { return alpha.Negate().NextDown(), alpha.Negate() })
			if ok && score.Greater(alpha) && score.Less(beta) {
				score, ok = tryChild(mv, func() (Score, Score) { return beta.Negate(), alpha.Negate() })
			}
		}
		if !ok {
			return Score{}, false
		}

		if bestMove == board.NoMove || score.Greater(bestScore) {
			bestScore = score
			bestMove = mv
		}
		if score.Greater(alpha) {
			alpha = score
			pv = false
		}
		if !alpha.Less(beta) {
			if mv.IsQuiet(pos.Board) {
				s.orderer.UpdateKillers(mv, pos.Ply)
				s.orderer.UpdateHistory(mv, depth)
			}
			cutoff = true
		}
	}

	flag := Exact
	if bestScore.Less(alphaOrig) || bestScore == alphaOrig {
		flag = UpperBound
	} else if !bestScore.Less(beta) {
		flag = LowerBound
	}
	s.tt.Set(pos.Board.Hash, pos.Ply, flag, depth, bestScore, bestMove)

	return bestScore, true
}

// canTryNullMove reports whether null-move pruning is attempted at pos: the
// side to move must hold at least 8 pieces with at least one non-pawn,
// non-king piece (to avoid zugzwang-prone pawn endgames).
func (s *Searcher) canTryNullMove(pos *Position, depth int) bool {
	if depth < nullMoveReduction+1 {
		return false
	}
	b := pos.Board
	us := b.SideToMove
	if b.Occupied[us].PopCount() < 8 {
		return false
	}
	return b.HasNonPawnMaterial()
}

// isRepetition reports whether the current position (the last entry pushed
// onto history) has occurred before at an even ply distance (same side to
// move), which the implementation treats as an immediate draw.
func (s *Searcher) isRepetition() bool {
	n := len(s.history)
	if n < 3 {
		return false
	}
	current := s.history[n-1]
	for i := n - 3; i >= 0; i -= 2 {
		if s.history[i] == current {
			return true
		}
	}
	return false
}

// quiescence resolves tactical sequences at a leaf: a stand-pat score
// bounds the search, and only captures with non-negative SEE are explored.
func (s *Searcher) quiescence(pos *Position, alpha, beta Score) (Score, bool) {
	if s.handler.ShouldStop() {
		return Score{}, false
	}
	s.nodes++

	standPat := pos.Eval()
	if !standPat.Less(beta) {
		return beta, true
	}
	if standPat.Greater(alpha) {
		alpha = standPat
	}

	captures := pos.Board.GenerateCaptures()
	scores := make([]int, captures.Len())
	for i := 0; i < captures.Len(); i++ {
		scores[i] = SEE(pos.Board, captures.Get(i))
	}

	for i := 0; i < captures.Len(); i++ {
		PickMove(captures, scores, i)
		mv := captures.Get(i)
		if scores[i] < 0 {
			break
		}

		child := pos.MakeMove(mv)
		score, ok := s.quiescence(child, beta.Negate(), alpha.Negate())
		if !ok {
			return Score{}, false
		}
		score = score.Negate()

		if !score.Less(beta) {
			return beta, true
		}
		if score.Greater(alpha) {
			alpha = score
		}
	}

	return alpha, true
}
