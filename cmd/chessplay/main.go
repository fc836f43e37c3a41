// Command chessplay runs one depth-limited search from a FEN position and
// prints the best move, its score, and the principal variation. It is a
// thin example driver, not a protocol implementation: wiring this engine
// into UCI or any other GUI protocol is left to the caller.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"time"

	"github.com/corvidlabs/chessnnue/internal/board"
	"github.com/corvidlabs/chessnnue/internal/engine"
	"github.com/corvidlabs/chessnnue/internal/nnue"
)

var (
	fen     = flag.String("fen", board.StartFEN, "FEN of the position to search")
	depth   = flag.Int("depth", 6, "maximum search depth in plies")
	ttMB    = flag.Int("tt", 32, "transposition table size in megabytes")
	weights = flag.String("weights", "", "path to a raw NNUE weight file (SPC layout); random weights if empty")
	halfKP  = flag.Bool("halfkp", false, "use the HalfKP feature scheme instead of SPC")
)

func main() {
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("invalid FEN %q: %v", *fen, err)
	}

	var fs nnue.FeatureSet = nnue.SPC{}
	numFeatures, l1, l2 := nnue.DefaultNumFeatures, nnue.DefaultL1, nnue.DefaultL2
	if *halfKP {
		fs = nnue.HalfKP{}
		numFeatures = nnue.HalfKPFeatures
	}

	net := nnue.NewNetwork(numFeatures, l1, l2)
	if *weights != "" {
		if err := net.LoadWeights(*weights); err != nil {
			log.Fatalf("loading weights from %s: %v", *weights, err)
		}
	} else {
		log.Printf("no --weights given, using random weights (evaluation will be meaningless)")
		net.InitRandom(time.Now().UnixNano())
	}

	h := newCLIHandler()
	eng := engine.NewEngine(net, fs, engine.EngineOptions{TTSize: *ttMB << 20, Depth: *depth}, h)
	eng.SetPosition(pos, []uint64{pos.Hash})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go func() {
		<-ctx.Done()
		h.stop.Store(true)
	}()

	result, ok := eng.BestMove(1)
	if !ok {
		fmt.Println("no move found (search stopped before the first iteration completed)")
		return
	}

	fmt.Printf("bestmove %s score %s depth %d nodes %d hashfull %d\n",
		moveString(result.BestMove), result.Eval, result.Stats.Depth, result.Stats.NodesVisited, result.Hashfull)
	fmt.Printf("pv %s\n", pvString(result.PV[:]))
}

// cliHandler reports each completed iteration to stdout and stops the
// search on SIGINT; it is the only Handler implementation this command
// needs since it has no time control of its own.
type cliHandler struct {
	stop atomic.Bool
}

func newCLIHandler() *cliHandler {
	return &cliHandler{}
}

func (h *cliHandler) NewResult(r engine.SearchResult) {
	fmt.Printf("info depth %d nodes %d score %s hashfull %d\n",
		r.Stats.Depth, r.Stats.NodesVisited, r.Eval, r.Hashfull)
}

func (h *cliHandler) ShouldStop() bool {
	return h.stop.Load()
}

func moveString(m board.Move) string {
	if m == board.NoMove {
		return "(none)"
	}
	return m.String()
}

func pvString(pv []board.Move) string {
	var sb strings.Builder
	for i, m := range pv {
		if m == board.NoMove {
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
