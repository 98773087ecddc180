//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"errors"
	"fmt"

	"github.com/twoparty/yaogc/circuit"
)

// ErrNoRowAuthenticated is returned when every row of a gate fails
// to authenticate under the evaluator's input keys: a fatal
// garbling or evaluation failure.
var ErrNoRowAuthenticated = errors.New("garble: no row authenticated")

// ErrMultipleRowsAuthenticated is returned when more than one row
// of a gate authenticates: a fatal protocol-integrity anomaly.
// Under honest execution this has negligible probability (the AEAD
// forgery bound) and indicates a bug or corruption rather than
// normal operation.
var ErrMultipleRowsAuthenticated = errors.New("garble: multiple rows authenticated")

// ErrOutputNotDecodable is returned when a recovered output-wire
// key is absent from that wire's decoding map: a fatal integrity
// failure.
var ErrOutputNotDecodable = errors.New("garble: output key not in decoding map")

// Evaluate walks the circuit's gates in dependency order, trial-
// decrypting each gate's shuffled rows against the known input
// keys. inputKeys must already hold one key per circuit input wire
// (Alice's transferred directly, Bob's acquired via OT); Evaluate
// extends it in place with every gate's recovered output key and
// also returns it for convenience.
func Evaluate(c *circuit.Circuit, gc *Circuit, inputKeys map[circuit.Wire]Key) (map[circuit.Wire]Key, error) {
	if len(gc.Gates) != len(c.Gates) {
		return nil, fmt.Errorf("garble: garbled circuit has %d gates, circuit has %d",
			len(gc.Gates), len(c.Gates))
	}

	for i, g := range c.Gates {
		gg := gc.Gates[i]

		a, ok := inputKeys[g.Inputs[0]]
		if !ok {
			return nil, fmt.Errorf("gate %d: missing key for input wire %v", i, g.Inputs[0])
		}

		var inner *Key
		if g.Op != circuit.NOT {
			b, ok := inputKeys[g.Inputs[1]]
			if !ok {
				return nil, fmt.Errorf("gate %d: missing key for input wire %v", i, g.Inputs[1])
			}
			inner = &b
		}

		value, count, err := tryRows(a, inner, gg.Rows)
		if err != nil {
			return nil, fmt.Errorf("gate %d (%v): %w", i, g.Output, err)
		}
		if count == 0 {
			return nil, fmt.Errorf("gate %d (%v): %w", i, g.Output, ErrNoRowAuthenticated)
		}
		if count > 1 {
			return nil, fmt.Errorf("gate %d (%v): %w", i, g.Output, ErrMultipleRowsAuthenticated)
		}

		inputKeys[g.Output] = value
	}

	return inputKeys, nil
}

// tryRows scans every row and returns the recovered value along
// with how many rows authenticated. It does not stop at the first
// success: the reference stance on multiple-acceptance handling is
// exhaustive scan, so every row is tried before the caller commits
// to a decrypted key.
func tryRows(outer Key, inner *Key, rows []Sealed) (Key, int, error) {
	var value Key
	var count int

	for _, row := range rows {
		v, ok := Open(outer, inner, row)
		if !ok {
			continue
		}
		count++
		value = v
	}
	return value, count, nil
}

// Decode resolves output wire keys to plaintext bits via the
// garbled circuit's decoding maps.
func Decode(c *circuit.Circuit, gc *Circuit, outputKeys map[circuit.Wire]Key) ([]bool, error) {
	bits := make([]bool, len(c.Out))
	for i, w := range c.Out {
		key, ok := outputKeys[w]
		if !ok {
			return nil, fmt.Errorf("output wire %v: no recovered key", w)
		}
		decodeMap, ok := gc.Decode[w]
		if !ok {
			return nil, fmt.Errorf("output wire %v: no decoding map", w)
		}
		bit, ok := decodeMap[key]
		if !ok {
			return nil, fmt.Errorf("output wire %v: %w", w, ErrOutputNotDecodable)
		}
		bits[i] = bit
	}
	return bits, nil
}
