package main

import (
	"fmt"
	"iter"
	"os"

	"gopkg.in/yaml.v3"
)

// VerbatimGenerator replays a fixed list of problems unchanged.
type VerbatimGenerator struct {
	Problems []Problem
}

func (g *VerbatimGenerator) GenerateProblems() iter.Seq[Problem] {
	return func(yield func(Problem) bool) {
		for _, prob := range g.Problems {
			if !yield(prob) {
				return
			}
		}
	}
}

// SweepGenerator emits the cartesian product of Lengths and Nbatches for a
// single transform configuration. Lengths vary in the outer loop. An empty
// Nbatches means a single batch.
type SweepGenerator struct {
	Tag       string
	Lengths   [][]int
	Nbatches  []int
	Direction int
	Real      bool
	Inplace   bool
	Precision string
	Meta      map[string]string
}

func (g *SweepGenerator) GenerateProblems() iter.Seq[Problem] {
	nbatches := g.Nbatches
	if len(nbatches) == 0 {
		nbatches = []int{1}
	}
	return func(yield func(Problem) bool) {
		for _, length := range g.Lengths {
			for _, nbatch := range nbatches {
				prob := Problem{
					Length:    length,
					Direction: g.Direction,
					Real:      g.Real,
					Inplace:   g.Inplace,
					Precision: g.Precision,
					Nbatch:    nbatch,
					Tag:       g.Tag,
					Meta:      g.Meta,
				}
				if !yield(prob) {
					return
				}
			}
		}
	}
}

// SuiteCase is one sweep group of a benchmark suite file.
type SuiteCase struct {
	Tag       string            `yaml:"tag"`
	Lengths   [][]int           `yaml:"lengths"`
	Nbatches  []int             `yaml:"nbatch"`
	Direction int               `yaml:"direction"`
	Real      bool              `yaml:"real"`
	Inplace   bool              `yaml:"inplace"`
	Precision string            `yaml:"precision"`
	Meta      map[string]string `yaml:"meta"`
}

// Suite is a list of sweep groups. Groups keep their file order and each
// group expands into a SweepGenerator.
type Suite struct {
	Cases []SuiteCase `yaml:"cases"`
}

func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse suite file %v: %w", path, err)
	}
	for idx := range suite.Cases {
		c := &suite.Cases[idx]
		if c.Tag == "" {
			return nil, fmt.Errorf("suite file %v: case #%v has no tag", path, idx)
		}
		if len(c.Lengths) == 0 {
			return nil, fmt.Errorf("suite file %v: case %v has no lengths", path, c.Tag)
		}
		if c.Precision == "" {
			c.Precision = "double"
		}
		if c.Direction == 0 {
			c.Direction = Forward
		}
	}
	return &suite, nil
}

func (s *Suite) GenerateProblems() iter.Seq[Problem] {
	return func(yield func(Problem) bool) {
		for _, c := range s.Cases {
			sweep := SweepGenerator{
				Tag:       c.Tag,
				Lengths:   c.Lengths,
				Nbatches:  c.Nbatches,
				Direction: c.Direction,
				Real:      c.Real,
				Inplace:   c.Inplace,
				Precision: c.Precision,
				Meta:      c.Meta,
			}
			for prob := range sweep.GenerateProblems() {
				if !yield(prob) {
					return
				}
			}
		}
	}
}
