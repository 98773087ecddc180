//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import "testing"

func andGate() *Circuit {
	return &Circuit{
		ID:    "and-gate",
		Alice: []Wire{1},
		Bob:   []Wire{2},
		Out:   []Wire{3},
		Gates: []Gate{
			{Output: 3, Op: AND, Inputs: []Wire{1, 2}},
		},
	}
}

func TestValidateOK(t *testing.T) {
	c := andGate()
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateDanglingInput(t *testing.T) {
	c := andGate()
	c.Gates[0].Inputs = []Wire{1, 99}
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error for dangling input wire")
	}
}

func TestValidateWrongArity(t *testing.T) {
	c := andGate()
	c.Gates[0].Inputs = []Wire{1}
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error for wrong arity")
	}
}

func TestValidateReusedOutput(t *testing.T) {
	c := andGate()
	c.Gates = append(c.Gates, Gate{Output: 3, Op: NOT, Inputs: []Wire{1}})
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error for reused output wire")
	}
}

func TestValidateUnresolvedOutput(t *testing.T) {
	c := andGate()
	c.Out = []Wire{42}
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error for unresolved output wire")
	}
}

func TestValidateDisjointInputs(t *testing.T) {
	c := andGate()
	c.Bob = []Wire{1}
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error for overlapping Alice/Bob inputs")
	}
}

func TestEvalAND(t *testing.T) {
	c := andGate()
	cases := []struct {
		a, b, want bool
	}{
		{false, false, false},
		{false, true, false},
		{true, false, false},
		{true, true, true},
	}
	for _, tc := range cases {
		out, err := c.Eval([]bool{tc.a}, []bool{tc.b})
		if err != nil {
			t.Fatalf("eval(%v,%v): %v", tc.a, tc.b, err)
		}
		if len(out) != 1 || out[0] != tc.want {
			t.Errorf("eval(%v,%v) = %v, want [%v]", tc.a, tc.b, out, tc.want)
		}
	}
}

func TestEvalOR(t *testing.T) {
	c := andGate()
	c.Gates[0].Op = OR
	cases := []struct {
		a, b, want bool
	}{
		{false, false, false},
		{false, true, true},
		{true, false, true},
		{true, true, true},
	}
	for _, tc := range cases {
		out, err := c.Eval([]bool{tc.a}, []bool{tc.b})
		if err != nil {
			t.Fatalf("eval(%v,%v): %v", tc.a, tc.b, err)
		}
		if len(out) != 1 || out[0] != tc.want {
			t.Errorf("eval(%v,%v) = %v, want [%v]", tc.a, tc.b, out, tc.want)
		}
	}
}

func TestEvalNOT(t *testing.T) {
	c := &Circuit{
		ID:    "not-gate",
		Alice: []Wire{1},
		Out:   []Wire{2},
		Gates: []Gate{
			{Output: 2, Op: NOT, Inputs: []Wire{1}},
		},
	}
	for _, in := range []bool{false, true} {
		out, err := c.Eval([]bool{in}, nil)
		if err != nil {
			t.Fatalf("eval(%v): %v", in, err)
		}
		if len(out) != 1 || out[0] != !in {
			t.Errorf("eval(%v) = %v, want [%v]", in, out, !in)
		}
	}
}

func TestEvalWrongArity(t *testing.T) {
	c := andGate()
	if _, err := c.Eval([]bool{true, false}, []bool{false}); err == nil {
		t.Fatal("expected error for wrong Alice input length")
	}
	if _, err := c.Eval([]bool{true}, []bool{false, true}); err == nil {
		t.Fatal("expected error for wrong Bob input length")
	}
}

func TestEvalComposite(t *testing.T) {
	// alice=[1,2] bob=[3] out=[5], gates 4:AND(1,2) 5:OR(4,3)
	c := &Circuit{
		ID:    "and-or",
		Alice: []Wire{1, 2},
		Bob:   []Wire{3},
		Out:   []Wire{5},
		Gates: []Gate{
			{Output: 4, Op: AND, Inputs: []Wire{1, 2}},
			{Output: 5, Op: OR, Inputs: []Wire{4, 3}},
		},
	}
	out, err := c.Eval([]bool{true, true}, []bool{false})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if len(out) != 1 || out[0] != true {
		t.Errorf("eval(11,0) = %v, want [true]", out)
	}
}
