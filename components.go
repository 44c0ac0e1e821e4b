package main

import "iter"

// Transform direction passed to the rider.
const (
	Forward = -1
	Inverse = 1
)

// Problem is one parameter combination to benchmark. A problem is fixed once
// emitted by a generator.
type Problem struct {
	Length    []int
	Direction int
	Real      bool
	Inplace   bool
	Precision string
	Nbatch    int
	Tag       string
	Meta      map[string]string
}

// Generator produces a finite sequence of problems.
type Generator interface {
	GenerateProblems() iter.Seq[Problem]
}

// Target pairs a library identifier with the output path its timings are
// written to.
type Target struct {
	Lib string
	Out string
}
