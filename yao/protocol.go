//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package yao sequences one run of the two-party protocol: garble,
// Alice's direct key transfer, Bob's oblivious transfer, evaluation,
// and output decoding. It has no network transport — both roles run
// in one address space, and protocol messages are modeled as plain
// Go values passed between the steps, per this design's non-goals.
package yao

import (
	"fmt"

	"github.com/twoparty/yaogc/circuit"
	"github.com/twoparty/yaogc/garble"
	"github.com/twoparty/yaogc/ot"
)

// Result is the outcome of one protocol run: the plaintext bits
// recovered for each circuit input and output wire, keyed for
// CLI-friendly reporting.
type Result struct {
	Alice  map[circuit.Wire]bool
	Bob    map[circuit.Wire]bool
	Output map[circuit.Wire]bool
}

// Run executes one full protocol run on c with Alice's and Bob's
// private input bits, in declared-wire order. It requires at least
// one Bob input wire, since the OT subprotocol is not defined for an
// empty choice set (see Non-goals).
func Run(c *circuit.Circuit, aliceBits, bobBits []bool) (*Result, error) {
	if len(c.Bob) == 0 {
		return nil, fmt.Errorf("yao: circuit %q has no Bob input wires; the secure (OT) path requires at least one", c.ID)
	}
	if len(aliceBits) != len(c.Alice) {
		return nil, fmt.Errorf("yao: circuit %q expects %d Alice input bits, got %d",
			c.ID, len(c.Alice), len(aliceBits))
	}
	if len(bobBits) != len(c.Bob) {
		return nil, fmt.Errorf("yao: circuit %q expects %d Bob input bits, got %d",
			c.ID, len(c.Bob), len(bobBits))
	}

	// Garbler: build per-wire keys and the garbled circuit.
	keyring, err := garble.Generate(c)
	if err != nil {
		return nil, fmt.Errorf("yao: %w", err)
	}
	gc, err := garble.Garble(c, keyring)
	if err != nil {
		return nil, fmt.Errorf("yao: %w", err)
	}

	inputKeys := make(map[circuit.Wire]garble.Key, c.NumWires())

	// Alice transmits her own wire keys directly.
	for i, w := range c.Alice {
		inputKeys[w] = keyring.Pair(w).Of(aliceBits[i])
	}

	// Bob acquires his wire keys one at a time via OT.
	for i, w := range c.Bob {
		key, err := transferBobKey(keyring.Pair(w), bobBits[i])
		if err != nil {
			return nil, fmt.Errorf("yao: OT for wire %v: %w", w, err)
		}
		inputKeys[w] = key
	}

	outputKeys, err := garble.Evaluate(c, gc, inputKeys)
	if err != nil {
		return nil, fmt.Errorf("yao: %w", err)
	}

	bits, err := garble.Decode(c, gc, outputKeys)
	if err != nil {
		return nil, fmt.Errorf("yao: %w", err)
	}

	result := &Result{
		Alice:  make(map[circuit.Wire]bool, len(c.Alice)),
		Bob:    make(map[circuit.Wire]bool, len(c.Bob)),
		Output: make(map[circuit.Wire]bool, len(c.Out)),
	}
	for i, w := range c.Alice {
		result.Alice[w] = aliceBits[i]
	}
	for i, w := range c.Bob {
		result.Bob[w] = bobBits[i]
	}
	for i, w := range c.Out {
		result.Output[w] = bits[i]
	}
	return result, nil
}

// transferBobKey runs the full four-phase OT subprotocol for one
// Bob input wire: Alice offers the wire's key pair, Bob chooses by
// his bit.
func transferBobKey(pair garble.Pair, bit bool) (garble.Key, error) {
	sender, err := ot.NewSender()
	if err != nil {
		return garble.Key{}, err
	}
	transfer, params, err := sender.NewTransfer()
	if err != nil {
		return garble.Key{}, err
	}

	choice := 0
	if bit {
		choice = 1
	}
	receiverState, blinded, err := ot.Blind(params, choice)
	if err != nil {
		return garble.Key{}, err
	}

	masked, err := transfer.Mask(blinded, pair.K0[:], pair.K1[:])
	if err != nil {
		return garble.Key{}, err
	}

	raw, err := receiverState.Unblind(masked)
	if err != nil {
		return garble.Key{}, err
	}

	var key garble.Key
	copy(key[:], raw)
	return key, nil
}
