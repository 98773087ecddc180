//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package yao

import (
	"testing"

	"github.com/twoparty/yaogc/circuit"
)

func loadCircuit(t *testing.T, index int) *circuit.Circuit {
	t.Helper()
	c, err := circuit.LoadAt("../testdata/circuits.json", index)
	if err != nil {
		t.Fatalf("LoadAt(%d): %v", index, err)
	}
	return c
}

func TestRunAND(t *testing.T) {
	c := loadCircuit(t, 0) // and-gate
	cases := []struct {
		a, b, want bool
	}{
		{false, false, false},
		{false, true, false},
		{true, false, false},
		{true, true, true},
	}
	for _, tc := range cases {
		res, err := Run(c, []bool{tc.a}, []bool{tc.b})
		if err != nil {
			t.Fatalf("Run(%v,%v): %v", tc.a, tc.b, err)
		}
		if res.Output[3] != tc.want {
			t.Errorf("AND(%v,%v) = %v, want %v", tc.a, tc.b, res.Output[3], tc.want)
		}
	}
}

func TestRunOR(t *testing.T) {
	c := loadCircuit(t, 1) // or-gate
	cases := []struct {
		a, b, want bool
	}{
		{false, false, false},
		{false, true, true},
		{true, false, true},
		{true, true, true},
	}
	for _, tc := range cases {
		res, err := Run(c, []bool{tc.a}, []bool{tc.b})
		if err != nil {
			t.Fatalf("Run(%v,%v): %v", tc.a, tc.b, err)
		}
		if res.Output[3] != tc.want {
			t.Errorf("OR(%v,%v) = %v, want %v", tc.a, tc.b, res.Output[3], tc.want)
		}
	}
}

func TestRunRejectsNoBobWires(t *testing.T) {
	c := loadCircuit(t, 2) // not-gate, no Bob wires
	if _, err := Run(c, []bool{true}, nil); err == nil {
		t.Fatal("expected error: OT path requires at least one Bob input wire")
	}
}

func TestRunRejectsWrongArity(t *testing.T) {
	c := loadCircuit(t, 0)
	if _, err := Run(c, []bool{true, false}, []bool{false}); err == nil {
		t.Fatal("expected error for wrong Alice bit count")
	}
	if _, err := Run(c, []bool{true}, []bool{false, true}); err == nil {
		t.Fatal("expected error for wrong Bob bit count")
	}
}

func TestRunAndOrComposite(t *testing.T) {
	c := loadCircuit(t, 3) // and-or: alice=[1,2] bob=[3] out=[5]
	res, err := Run(c, []bool{true, true}, []bool{false})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Output[5] != true {
		t.Errorf("and-or(11,0) = %v, want true", res.Output[5])
	}
}

func TestRun2BitMax(t *testing.T) {
	c := loadCircuit(t, 4) // 2bit-max: alice=[1,2] bob=[3,4] out=[10,19]

	res, err := Run(c, []bool{true, false}, []bool{false, true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Output[10] != true || res.Output[19] != false {
		t.Errorf("max(alice=10,bob=01) output = (%v,%v), want (true,false) i.e. \"10\"",
			res.Output[10], res.Output[19])
	}

	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			alice := []bool{a&2 != 0, a&1 != 0}
			bob := []bool{b&2 != 0, b&1 != 0}

			res, err := Run(c, alice, bob)
			if err != nil {
				t.Fatalf("Run(%d,%d): %v", a, b, err)
			}
			got := 0
			if res.Output[10] {
				got |= 2
			}
			if res.Output[19] {
				got |= 1
			}
			want := a
			if b > want {
				want = b
			}
			if got != want {
				t.Errorf("max(%d,%d) = %d, want %d", a, b, got, want)
			}

			// Cross-check against the plaintext reference evaluator.
			ref, err := c.Eval(alice, bob)
			if err != nil {
				t.Fatalf("Eval(%d,%d): %v", a, b, err)
			}
			if ref[0] != res.Output[10] || ref[1] != res.Output[19] {
				t.Errorf("garbled/plaintext mismatch at (%d,%d): garbled=%v plaintext=%v",
					a, b, []bool{res.Output[10], res.Output[19]}, ref)
			}
		}
	}
}

func TestRunFreshness(t *testing.T) {
	c := loadCircuit(t, 0)
	res1, err := Run(c, []bool{true}, []bool{true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	res2, err := Run(c, []bool{true}, []bool{true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res1.Output[3] != res2.Output[3] {
		t.Fatal("two runs of the same circuit/inputs disagreed on output")
	}
}
