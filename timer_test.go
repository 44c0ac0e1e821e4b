package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProblem(tag string, length int) Problem {
	return Problem{
		Length:    []int{length},
		Direction: Forward,
		Precision: "double",
		Nbatch:    1,
		Tag:       tag,
	}
}

func fakeRiderFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rider")
	require.Nil(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	return path
}

type riderCall struct {
	prob Problem
	libs []string
}

func recordingRider(calls *[]riderCall, seconds [][]float64) RiderFunc {
	return func(rider string, prob Problem, libs []string, ntrial, device int, verbose bool) ([][]float64, error) {
		*calls = append(*calls, riderCall{prob: prob, libs: libs})
		return seconds, nil
	}
}

func records(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.Nil(t, err)
	lines := make([]string, 0)
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestTimerMissingRider(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "resA.dat")
	timer := Timer{
		Rider:   filepath.Join(dir, "no-such-rider"),
		Targets: []Target{{Lib: "libA", Out: out}},
		Ntrial:  3,
		Run: func(rider string, prob Problem, libs []string, ntrial, device int, verbose bool) ([][]float64, error) {
			t.Fatal("rider must not run when the executable is missing")
			return nil, nil
		},
	}
	err := timer.RunCases(&VerbatimGenerator{Problems: []Problem{testProblem("fft1", 16)}})
	require.ErrorContains(t, err, "unable to find rider")
	_, err = os.Stat(out)
	require.True(t, os.IsNotExist(err))
}

func TestTimerWritesEveryTarget(t *testing.T) {
	dir := t.TempDir()
	outA := filepath.Join(dir, "resA")
	outB := filepath.Join(dir, "resB")
	calls := make([]riderCall, 0)
	timer := Timer{
		Rider:   fakeRiderFile(t),
		Targets: []Target{{Lib: "libA", Out: outA}, {Lib: "libB", Out: outB}},
		Ntrial:  3,
		Log:     zap.NewNop().Sugar(),
		Run:     recordingRider(&calls, [][]float64{{1, 2, 3}, {4, 5, 6}}),
	}
	err := timer.RunCases(&VerbatimGenerator{Problems: []Problem{testProblem("fft1", 16)}})
	require.Nil(t, err)

	require.Len(t, calls, 1)
	require.Equal(t, []string{"libA", "libB"}, calls[0].libs)

	dataA, err := os.ReadFile(outA)
	require.Nil(t, err)
	require.Contains(t, string(dataA), "# title: fft1\n")
	require.Equal(t, []string{"16 1 1 2 3"}, records(t, outA))
	require.Equal(t, []string{"16 1 4 5 6"}, records(t, outB))
}

func TestTimerWriteCountAndOrder(t *testing.T) {
	dir := t.TempDir()
	outA := filepath.Join(dir, "resA")
	outB := filepath.Join(dir, "resB")
	calls := make([]riderCall, 0)
	timer := Timer{
		Rider:   fakeRiderFile(t),
		Targets: []Target{{Lib: "libA", Out: outA}, {Lib: "libB", Out: outB}},
		Ntrial:  1,
		Run:     recordingRider(&calls, [][]float64{{0.5}, {0.25}}),
	}
	problems := []Problem{testProblem("sweep", 16), testProblem("sweep", 32), testProblem("sweep", 64)}
	err := timer.RunCases(&VerbatimGenerator{Problems: problems})
	require.Nil(t, err)

	for _, out := range []string{outA, outB} {
		lines := records(t, out)
		require.Len(t, lines, 3)
		for idx, want := range []string{"16", "32", "64"} {
			require.Equal(t, want, strings.Fields(lines[idx])[0])
		}
	}
}

func TestTimerMetadataOverlay(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "res")
	prob := testProblem("fft1", 16)
	prob.Meta = map[string]string{"title": "custom", "radix": "2"}
	calls := make([]riderCall, 0)
	timer := Timer{
		Rider:   fakeRiderFile(t),
		Targets: []Target{{Lib: "libA", Out: out}},
		Ntrial:  1,
		Run:     recordingRider(&calls, [][]float64{{0.5}}),
	}
	err := timer.RunCases(&VerbatimGenerator{Problems: []Problem{prob}})
	require.Nil(t, err)

	data, err := os.ReadFile(out)
	require.Nil(t, err)
	require.Contains(t, string(data), "# title: custom\n")
	require.Contains(t, string(data), "# radix: 2\n")
	require.NotContains(t, string(data), "# title: fft1")
}

func TestGroupedTimerSplitsByTag(t *testing.T) {
	dir := t.TempDir()
	calls := make([]riderCall, 0)
	timer := GroupedTimer{
		Rider:   fakeRiderFile(t),
		Targets: []Target{{Lib: "libA", Out: dir}},
		Ntrial:  1,
		Run:     recordingRider(&calls, [][]float64{{0.5}}),
	}
	problems := []Problem{testProblem("a", 16), testProblem("a", 32), testProblem("b", 64)}
	err := timer.RunCases(&VerbatimGenerator{Problems: problems})
	require.Nil(t, err)

	linesA := records(t, filepath.Join(dir, "a.dat"))
	require.Len(t, linesA, 2)
	require.Equal(t, "16", strings.Fields(linesA[0])[0])
	require.Equal(t, "32", strings.Fields(linesA[1])[0])

	linesB := records(t, filepath.Join(dir, "b.dat"))
	require.Len(t, linesB, 1)
	require.Equal(t, "64", strings.Fields(linesB[0])[0])

	require.Len(t, calls, 3)
	require.Equal(t, "a", calls[0].prob.Tag)
	require.Equal(t, "a", calls[1].prob.Tag)
	require.Equal(t, "b", calls[2].prob.Tag)
}

func TestGroupedTimerMissingRider(t *testing.T) {
	dir := t.TempDir()
	timer := GroupedTimer{
		Rider:   filepath.Join(dir, "no-such-rider"),
		Targets: []Target{{Lib: "libA", Out: dir}},
		Ntrial:  1,
	}
	err := timer.RunCases(&VerbatimGenerator{Problems: []Problem{testProblem("a", 16)}})
	require.ErrorContains(t, err, "unable to find rider")
	_, err = os.Stat(filepath.Join(dir, "a.dat"))
	require.True(t, os.IsNotExist(err))
}
