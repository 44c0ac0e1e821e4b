package main

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// RiderFunc invokes the rider executable for one problem and returns one
// sequence of elapsed-time samples per library, index-aligned with libs.
type RiderFunc func(rider string, prob Problem, libs []string, ntrial, device int, verbose bool) ([][]float64, error)

func transformKind(prob Problem) string {
	switch {
	case prob.Real && prob.Direction == Forward:
		return "r2c"
	case prob.Real:
		return "c2r"
	default:
		return "c2c"
	}
}

func riderArgs(prob Problem, libs []string, ntrial, device int, verbose bool) []string {
	args := make([]string, 0)
	for _, lib := range libs {
		args = append(args, "--lib", lib)
	}
	for _, length := range prob.Length {
		args = append(args, "--length", strconv.Itoa(length))
	}
	args = append(args,
		"-N", strconv.Itoa(ntrial),
		"-b", strconv.Itoa(prob.Nbatch),
		"--device", strconv.Itoa(device),
		"--precision", prob.Precision,
		"-t", transformKind(prob),
	)
	if prob.Direction == Inverse {
		args = append(args, "--inverse")
	}
	if !prob.Inplace {
		args = append(args, "-o")
	}
	if verbose {
		args = append(args, "--verbose")
	}
	return args
}

// RunRider launches the rider once and parses its timing output. The rider
// prints one line per library with ntrial space-separated seconds; any other
// line is treated as diagnostics.
func RunRider(rider string, prob Problem, libs []string, ntrial, device int, verbose bool) ([][]float64, error) {
	args := riderArgs(prob, libs, ntrial, device, verbose)
	cmd := exec.Command(rider, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("rider failed: err=%w, out=%v", err, string(output))
	}
	seconds, err := parseRiderOutput(string(output), len(libs), ntrial)
	if err != nil {
		return nil, fmt.Errorf("rider produced malformed output: %w", err)
	}
	return seconds, nil
}

func parseRiderOutput(output string, nlib, ntrial int) ([][]float64, error) {
	seconds := make([][]float64, 0, nlib)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		samples := make([]float64, 0, len(fields))
		numeric := true
		for _, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				numeric = false
				break
			}
			samples = append(samples, value)
		}
		if !numeric {
			continue
		}
		seconds = append(seconds, samples)
	}
	if len(seconds) != nlib {
		return nil, fmt.Errorf("expected %v timing lines, got %v", nlib, len(seconds))
	}
	for idx, samples := range seconds {
		if len(samples) != ntrial {
			return nil, fmt.Errorf("timing line #%v: expected %v samples, got %v", idx, ntrial, len(samples))
		}
	}
	return seconds, nil
}
