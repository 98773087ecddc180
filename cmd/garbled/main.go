//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Command garbled drives one run of the two-party garbled-circuit
// protocol over a circuit loaded from a JSON file.
//
//	garbled [circuit_file] <circuit_index> [alice_bits] [bob_bits]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/superscript"

	"github.com/twoparty/yaogc/circuit"
	"github.com/twoparty/yaogc/yao"
)

// defaultCircuitFile is used when no circuit file argument is
// given.
const defaultCircuitFile = "testdata/circuits.json"

// ErrUsage is returned for command-line usage errors.
var ErrUsage = errors.New("usage error")

func main() {
	verbose := flag.Bool("v", false, "verbose output")
	stats := flag.String("stats", "", "print gate/wire statistics for the circuits in this file and exit")
	flag.Parse()

	if *stats != "" {
		if err := printStats(*stats); err != nil {
			fmt.Fprintf(os.Stderr, "garbled: %s\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(flag.Args(), *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "garbled: %s\n", err)
		if errors.Is(err, ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, verbose bool) error {
	file, index, aliceBitsStr, bobBitsStr, err := parseArgs(args)
	if err != nil {
		return err
	}

	c, err := circuit.LoadAt(file, index)
	if err != nil {
		return fmt.Errorf("load circuit: %w", err)
	}
	if verbose {
		fmt.Printf("Circuit: %v\n", c)
	}

	aliceBits, err := parseBits(aliceBitsStr, len(c.Alice), "alice_bits")
	if err != nil {
		return err
	}
	bobBits, err := parseBits(bobBitsStr, len(c.Bob), "bob_bits")
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf(" - garbling %s%s circuit...\n", superscript.Itoa(0), superscript.Itoa(1))
	}

	result, err := yao.Run(c, aliceBits, bobBits)
	if err != nil {
		return fmt.Errorf("protocol run: %w", err)
	}

	printResult(c, result)
	return nil
}

// parseArgs splits the positional arguments into circuit file,
// circuit index, and the optional Alice/Bob bit strings. All but the
// circuit index are optional, per the CLI surface:
//
//	garbled [circuit_file] <circuit_index> [alice_bits] [bob_bits]
func parseArgs(args []string) (file string, index int, aliceBits, bobBits string, err error) {
	file = defaultCircuitFile

	switch len(args) {
	case 0:
		return "", 0, "", "", fmt.Errorf("%w: circuit_index is required", ErrUsage)
	case 1:
		index, err = parseIndex(args[0])
		return file, index, "", "", err
	default:
		// When more than one argument is given, the first is
		// treated as the circuit file if it is not itself a valid
		// index, or if all four arguments are given (keeps the
		// common "just give me an index" case simple while still
		// allowing an explicit file).
		if _, convErr := parseIndex(args[0]); convErr == nil && len(args) <= 3 {
			index, err = parseIndex(args[0])
			if err != nil {
				return "", 0, "", "", err
			}
			if len(args) > 1 {
				aliceBits = args[1]
			}
			if len(args) > 2 {
				bobBits = args[2]
			}
			return file, index, aliceBits, bobBits, nil
		}

		file = args[0]
		index, err = parseIndex(args[1])
		if err != nil {
			return "", 0, "", "", err
		}
		if len(args) > 2 {
			aliceBits = args[2]
		}
		if len(args) > 3 {
			bobBits = args[3]
		}
		return file, index, aliceBits, bobBits, nil
	}
}

func parseIndex(s string) (int, error) {
	var index int
	if _, err := fmt.Sscanf(s, "%d", &index); err != nil {
		return 0, fmt.Errorf("%w: invalid circuit_index %q", ErrUsage, s)
	}
	return index, nil
}

// parseBits parses a string of '0'/'1' characters into bits. An
// empty string with want==0 is valid (e.g. a circuit with no Bob
// inputs used outside the secure path); otherwise the length must
// match want exactly.
func parseBits(s string, want int, name string) ([]bool, error) {
	if len(s) != want {
		return nil, fmt.Errorf("%w: %s must have %d bit(s), got %d",
			ErrUsage, name, want, len(s))
	}
	bits := make([]bool, want)
	for i, r := range s {
		switch r {
		case '0':
			bits[i] = false
		case '1':
			bits[i] = true
		default:
			return nil, fmt.Errorf("%w: %s has non-binary character %q", ErrUsage, name, r)
		}
	}
	return bits, nil
}

func printResult(c *circuit.Circuit, result *yao.Result) {
	var line string
	for _, w := range c.Alice {
		line += fmt.Sprintf("Alice[%v]=%s ", w, bitString(result.Alice[w]))
	}
	for _, w := range c.Bob {
		line += fmt.Sprintf("Bob[%v]=%s ", w, bitString(result.Bob[w]))
	}
	line += " "
	for _, w := range c.Out {
		line += fmt.Sprintf("Output[%v]=%s ", w, bitString(result.Output[w]))
	}
	fmt.Println(line)
}

func bitString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func printStats(file string) error {
	circuits, err := circuit.LoadFile(file)
	if err != nil {
		return fmt.Errorf("load circuit file: %w", err)
	}

	tab := tabulate.New(tabulate.Github)
	tab.Header("Circuit")
	tab.Header("AND").SetAlign(tabulate.MR)
	tab.Header("OR").SetAlign(tabulate.MR)
	tab.Header("NOT").SetAlign(tabulate.MR)
	tab.Header("Gates").SetAlign(tabulate.MR)
	tab.Header("Wires").SetAlign(tabulate.MR)

	for _, c := range circuits {
		var and, or, not int
		for _, g := range c.Gates {
			switch g.Op {
			case circuit.AND:
				and++
			case circuit.OR:
				or++
			case circuit.NOT:
				not++
			}
		}
		row := tab.Row()
		row.Column(c.ID)
		row.Column(fmt.Sprintf("%d", and))
		row.Column(fmt.Sprintf("%d", or))
		row.Column(fmt.Sprintf("%d", not))
		row.Column(fmt.Sprintf("%d", len(c.Gates)))
		row.Column(fmt.Sprintf("%d", c.NumWires()))
	}

	tab.Print(os.Stdout)
	return nil
}
