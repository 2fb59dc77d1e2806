package eval

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// weightMagic tags the opaque binary weight file format (spec 4.4:
// "Weight data is loaded from an opaque binary file whose format is
// not part of this core spec"). This module defines its own minimal
// container since no external format is mandated: a magic number and
// version guard against loading a stale or foreign file, followed by
// one row of NumGroups big-endian int32 weights per empty-count from
// 0 to 60 inclusive.
const (
	weightMagic   = uint32(0xEDA70001)
	weightVersion = uint32(1)
	numRows       = 61 // n_empties 0..60
)

// Weights is the opaque, read-only-after-load weight table: one row
// of per-group coefficients for every possible n_empties value.
type Weights struct {
	rows [numRows][NumGroups]int32
}

// row returns the weight row for nEmpties, clamped into range so a
// caller never needs to bounds-check n_empties itself.
func (w *Weights) row(nEmpties int) [NumGroups]int32 {
	if nEmpties < 0 {
		nEmpties = 0
	}
	if nEmpties >= numRows {
		nEmpties = numRows - 1
	}
	return w.rows[nEmpties]
}

// DefaultWeights builds a compiled-in weight table so the engine can
// evaluate positions without an external file: every row is baseWeight
// scaled by one factor that falls linearly from 1.0 at 60 empties to
// 0.5 at 0 empties (truncated to int32), so all groups keep the same
// relative weights in every phase.
func DefaultWeights() *Weights {
	w := &Weights{}
	for n := 0; n < numRows; n++ {
		phase := float64(n) / float64(numRows-1) // 1.0 = early game, 0.0 = late game
		for g := 0; g < NumGroups; g++ {
			positional := float64(baseWeight[g])
			w.rows[n][g] = int32(positional * (0.5 + 0.5*phase))
		}
	}
	return w
}

// LoadWeights reads a weight table from path in the container format
// documented above. Returns an error for a missing file, a bad magic
// number, or a truncated row set; never panics on external input.
func LoadWeights(path string) (*Weights, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("eval: opening weight file: %w", err)
	}
	defer f.Close()
	return readWeights(f)
}

func readWeights(r io.Reader) (*Weights, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("eval: reading weight file header: %w", err)
	}
	magic := binary.BigEndian.Uint32(header[0:4])
	version := binary.BigEndian.Uint32(header[4:8])
	if magic != weightMagic {
		return nil, fmt.Errorf("eval: bad weight file magic %#x", magic)
	}
	if version != weightVersion {
		return nil, fmt.Errorf("eval: unsupported weight file version %d", version)
	}
	w := &Weights{}
	buf := make([]byte, NumGroups*4)
	for n := 0; n < numRows; n++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("eval: reading weight row %d: %w", n, err)
		}
		for g := 0; g < NumGroups; g++ {
			w.rows[n][g] = int32(binary.BigEndian.Uint32(buf[g*4:]))
		}
	}
	return w, nil
}

// SaveWeights writes w to path in the format LoadWeights reads,
// primarily used by tests and by external tuning tools (out of scope
// for this core, per spec section 1) that need a file to hand back in.
func SaveWeights(path string, w *Weights) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("eval: creating weight file: %w", err)
	}
	defer f.Close()
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], weightMagic)
	binary.BigEndian.PutUint32(header[4:8], weightVersion)
	if _, err := f.Write(header[:]); err != nil {
		return err
	}
	buf := make([]byte, NumGroups*4)
	for n := 0; n < numRows; n++ {
		for g := 0; g < NumGroups; g++ {
			binary.BigEndian.PutUint32(buf[g*4:], uint32(w.rows[n][g]))
		}
		if _, err := f.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
