package main

import "github.com/gossair/gossair/mir"

// demoFunction is the static fixture the build command lowers.
//
// original_source/src/mir.rs names its analogous static value FIB, but its
// actual body is structurally the "add of two ifs" shape (SPEC_FULL.md's
// S4 scenario), not a recursive or iterative Fibonacci computation — real
// Fibonacci would need the loop-carried Var/Goto machinery that
// mir.Lower's EXPANSION deliberately leaves unsupported (DESIGN.md Open
// Question: loops). This fixture keeps that same two-branch shape under a
// name that does not overpromise what it computes.
func demoFunction() *mir.Function {
	return &mir.Function{
		Name: "demo",
		Body: &mir.Call{
			Function: "add.i64",
			Args: []mir.Expression{
				&mir.If{
					Condition: &mir.ConstBool{Value: false},
					IfTrue:    &mir.ConstI64{Value: 1},
					IfFalse:   &mir.ConstI64{Value: 2},
				},
				&mir.If{
					Condition: &mir.ConstBool{Value: true},
					IfTrue:    &mir.ConstI64{Value: 3},
					IfFalse:   &mir.ConstI64{Value: 4},
				},
			},
		},
	}
}
