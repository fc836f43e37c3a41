package nnue

import "github.com/corvidlabs/chessnnue/internal/vecops"

// FeatureLayer is the sparse input layer: one weight column per feature,
// stored row-major over the feature index so a single column is contiguous
// and can be added into an accumulator with one vecops.AddI16 call.
type FeatureLayer struct {
	Input  int // total feature count
	Output int // L1 size
	// Weights[idx] is the Output-length column for feature idx.
	Weights [][]int16
	Bias    []int16
}

func NewFeatureLayer(input, output int) *FeatureLayer {
	w := make([][]int16, input)
	for i := range w {
		w[i] = make([]int16, output)
	}
	return &FeatureLayer{Input: input, Output: output, Weights: w, Bias: make([]int16, output)}
}

// Layer is a dense layer: OUTPUT x INPUT i8 weights, i32 bias, activated by
// an i8 dot product per output row.
type Layer struct {
	Input  int
	Output int
	// Weights[o] is the Input-length row of weights feeding output o.
	Weights [][]int8
	Bias    []int32
}

func NewLayer(input, output int) *Layer {
	w := make([][]int8, output)
	for i := range w {
		w[i] = make([]int8, input)
	}
	return &Layer{Input: input, Output: output, Weights: w, Bias: make([]int32, output)}
}

// Activate computes bias + W·x for every output row using vecops.DotI8.
func (l *Layer) Activate(x []int8) []int32 {
	out := make([]int32, l.Output)
	for o := 0; o < l.Output; o++ {
		out[o] = l.Bias[o] + vecops.DotI8(l.Weights[o], x)
	}
	return out
}

// ClippedReLU maps x/scale into [0, 127], the fixed-point activation used
// between every pair of layers.
func ClippedReLU(x int32, scale int32) int8 {
	v := x / scale
	if v < 0 {
		v = 0
	}
	if v > 127 {
		v = 127
	}
	return int8(v)
}

// ClippedReLUI16 applies ClippedReLU elementwise to an i16 vector with
// scale 1, the feature-layer-to-hidden-layer activation.
func ClippedReLUI16(in []int16) []int8 {
	out := make([]int8, len(in))
	for i, v := range in {
		out[i] = ClippedReLU(int32(v), 1)
	}
	return out
}

// ClippedReLUI32 applies ClippedReLU elementwise to an i32 vector with the
// given scale, the hidden-layer-to-output activation (scale 64).
func ClippedReLUI32(in []int32, scale int32) []int8 {
	out := make([]int8, len(in))
	for i, v := range in {
		out[i] = ClippedReLU(v, scale)
	}
	return out
}
