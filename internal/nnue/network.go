package nnue

import "github.com/corvidlabs/chessnnue/internal/board"

// outputScale divides the raw output-layer scalar down into centipawns.
const outputScale = 8

// Network is the full evaluator: a feature layer producing an accumulator,
// a hidden layer over the concatenated two-perspective activation, and a
// scalar output layer.
type Network struct {
	Features *FeatureLayer
	Hidden   *Layer // Input = 2*L1, Output = L2
	Output   *Layer // Input = L2, Output = 1
}

func NewNetwork(numFeatures, l1, l2 int) *Network {
	return &Network{
		Features: NewFeatureLayer(numFeatures, l1),
		Hidden:   NewLayer(2*l1, l2),
		Output:   NewLayer(l2, 1),
	}
}

// Evaluate concatenates the side-to-move accumulator then the opponent's,
// clip-ReLUs to i8, runs the hidden layer, clip-ReLUs again, runs the
// output layer, and divides the resulting scalar into centipawns.
func (n *Network) Evaluate(acc *Accumulator, sideToMove board.Color) int32 {
	l1 := n.Features.Output
	concat := make([]int16, 2*l1)
	var own, opp []int16
	if sideToMove == board.White {
		own, opp = acc.White, acc.Black
	} else {
		own, opp = acc.Black, acc.White
	}
	copy(concat[:l1], own)
	copy(concat[l1:], opp)

	hiddenIn := ClippedReLUI16(concat)
	hiddenOut := n.Hidden.Activate(hiddenIn)
	outIn := ClippedReLUI32(hiddenOut, 64)
	out := n.Output.Activate(outIn)

	return out[0] / outputScale
}

// InitRandom fills every weight with small reproducible pseudo-random
// values (an LCG keyed on seed). Used by tests and by cmd/chessplay when no
// weight file is given; the result is not a trained model.
func (n *Network) InitRandom(seed int64) {
	state := uint64(seed)
	next := func() int16 {
		state = state*6364136223846793005 + 1442695040888963407
		return int16((state>>48)&0xFF) - 128
	}

	for i := range n.Features.Weights {
		for j := range n.Features.Weights[i] {
			n.Features.Weights[i][j] = next() >> 5
		}
	}
	for i := range n.Features.Bias {
		n.Features.Bias[i] = next() >> 3
	}

	clamp8 := func(v int16) int8 {
		if v > 127 {
			return 127
		}
		if v < -128 {
			return -128
		}
		return int8(v)
	}

	for i := range n.Hidden.Weights {
		for j := range n.Hidden.Weights[i] {
			n.Hidden.Weights[i][j] = clamp8(next() >> 6)
		}
	}
	for i := range n.Hidden.Bias {
		n.Hidden.Bias[i] = int32(next())
	}

	for i := range n.Output.Weights {
		for j := range n.Output.Weights[i] {
			n.Output.Weights[i][j] = clamp8(next() >> 6)
		}
	}
	for i := range n.Output.Bias {
		n.Output.Bias[i] = int32(next())
	}
}
