//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"fmt"

	"github.com/twoparty/yaogc/circuit"
)

// Gate is one garbled gate: the shuffled ciphertext rows for every
// input-bit combination of the underlying circuit gate.
type Gate struct {
	Rows []Sealed
}

// DecodeMap maps an output wire's two keys back to the bit they
// represent.
type DecodeMap map[Key]bool

// Circuit is a garbled circuit: one Gate per circuit gate, in the
// same order as circuit.Circuit.Gates, plus a decoding map per
// output wire.
type Circuit struct {
	Gates  []Gate
	Decode map[circuit.Wire]DecodeMap
}

// Garble builds a garbled circuit from a validated circuit and its
// keyring. The garbler owns kr exclusively; Garble does not mutate
// it.
func Garble(c *circuit.Circuit, kr *Keyring) (*Circuit, error) {
	gc := &Circuit{
		Gates:  make([]Gate, len(c.Gates)),
		Decode: make(map[circuit.Wire]DecodeMap, len(c.Out)),
	}

	for i, g := range c.Gates {
		rows, err := garbleGate(g, kr)
		if err != nil {
			return nil, fmt.Errorf("garble gate %d (%v): %w", i, g.Output, err)
		}
		gc.Gates[i] = Gate{Rows: rows}
	}

	for _, w := range c.Out {
		pair := kr.Pair(w)
		gc.Decode[w] = DecodeMap{
			pair.K0: false,
			pair.K1: true,
		}
	}

	return gc, nil
}

// garbleGate enumerates every input-bit combination of g, seals the
// resulting output key under the corresponding input-key pairing,
// and returns the rows in a uniformly shuffled order.
func garbleGate(g circuit.Gate, kr *Keyring) ([]Sealed, error) {
	outPair := kr.Pair(g.Output)

	if g.Op == circuit.NOT {
		aPair := kr.Pair(g.Inputs[0])
		rows := make([]Sealed, 0, 2)
		for _, a := range []bool{false, true} {
			v := g.Op.Eval(a, false)
			row, err := Seal(aPair.Of(a), nil, outPair.Of(v))
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		if err := shuffle(rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	aPair := kr.Pair(g.Inputs[0])
	bPair := kr.Pair(g.Inputs[1])

	rows := make([]Sealed, 0, 4)
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			v := g.Op.Eval(a, b)
			inner := bPair.Of(b)
			row, err := Seal(aPair.Of(a), &inner, outPair.Of(v))
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	if err := shuffle(rows); err != nil {
		return nil, err
	}
	return rows, nil
}
