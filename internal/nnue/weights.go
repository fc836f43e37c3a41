package nnue

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// LoadWeights reads a raw, header-less weight image from filename: the
// feature layer's weights and bias, the hidden layer's weights and bias,
// then the output layer's weights and bias, each in native little-endian
// byte order with no padding between sections.
func (n *Network) LoadWeights(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open weights file: %w", err)
	}
	defer f.Close()
	return n.LoadWeightsFromReader(f)
}

// LoadWeightsFromReader is LoadWeights over an arbitrary io.Reader.
func (n *Network) LoadWeightsFromReader(r io.Reader) error {
	for i := range n.Features.Weights {
		if err := binary.Read(r, binary.LittleEndian, &n.Features.Weights[i]); err != nil {
			return fmt.Errorf("failed to read feature weights at %d: %w", i, err)
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &n.Features.Bias); err != nil {
		return fmt.Errorf("failed to read feature bias: %w", err)
	}

	for i := range n.Hidden.Weights {
		if err := binary.Read(r, binary.LittleEndian, &n.Hidden.Weights[i]); err != nil {
			return fmt.Errorf("failed to read hidden weights at %d: %w", i, err)
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &n.Hidden.Bias); err != nil {
		return fmt.Errorf("failed to read hidden bias: %w", err)
	}

	for i := range n.Output.Weights {
		if err := binary.Read(r, binary.LittleEndian, &n.Output.Weights[i]); err != nil {
			return fmt.Errorf("failed to read output weights at %d: %w", i, err)
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &n.Output.Bias); err != nil {
		return fmt.Errorf("failed to read output bias: %w", err)
	}
	return nil
}

// SaveWeights writes the raw, header-less weight image described above.
func (n *Network) SaveWeights(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create weights file: %w", err)
	}
	defer f.Close()
	return n.saveTo(f)
}

// saveTo is the io.Writer-based core of SaveWeights, split out so tests can
// round-trip through an in-memory buffer instead of the filesystem.
func (n *Network) saveTo(f io.Writer) error {
	for i := range n.Features.Weights {
		if err := binary.Write(f, binary.LittleEndian, n.Features.Weights[i]); err != nil {
			return fmt.Errorf("failed to write feature weights at %d: %w", i, err)
		}
	}
	if err := binary.Write(f, binary.LittleEndian, n.Features.Bias); err != nil {
		return fmt.Errorf("failed to write feature bias: %w", err)
	}

	for i := range n.Hidden.Weights {
		if err := binary.Write(f, binary.LittleEndian, n.Hidden.Weights[i]); err != nil {
			return fmt.Errorf("failed to write hidden weights at %d: %w", i, err)
		}
	}
	if err := binary.Write(f, binary.LittleEndian, n.Hidden.Bias); err != nil {
		return fmt.Errorf("failed to write hidden bias: %w", err)
	}

	for i := range n.Output.Weights {
		if err := binary.Write(f, binary.LittleEndian, n.Output.Weights[i]); err != nil {
			return fmt.Errorf("failed to write output weights at %d: %w", i, err)
		}
	}
	if err := binary.Write(f, binary.LittleEndian, n.Output.Bias); err != nil {
		return fmt.Errorf("failed to write output bias: %w", err)
	}
	return nil
}
