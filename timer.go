package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Timer runs the rider once per generated problem and appends the
// per-library timings to each target's output file.
type Timer struct {
	Rider   string
	Targets []Target
	Device  int
	Ntrial  int
	Verbose bool

	Log *zap.SugaredLogger // nil means the package logger
	Run RiderFunc          // nil means RunRider
}

func (t *Timer) logger() *zap.SugaredLogger {
	if t.Log != nil {
		return t.Log
	}
	return Logger
}

func (t *Timer) run() RiderFunc {
	if t.Run != nil {
		return t.Run
	}
	return RunRider
}

func (t *Timer) libraries() []string {
	libs := make([]string, 0, len(t.Targets))
	for _, target := range t.Targets {
		libs = append(libs, target.Lib)
	}
	return libs
}

// RunCases benchmarks every problem produced by gen, in emission order. The
// first rider or write failure aborts the run.
func (t *Timer) RunCases(gen Generator) error {
	info, err := os.Stat(t.Rider)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("unable to find rider: %v", t.Rider)
	}

	libs := t.libraries()
	for prob := range gen.GenerateProblems() {
		seconds, err := t.run()(t.Rider, prob, libs, t.Ntrial, t.Device, t.Verbose)
		if err != nil {
			return err
		}
		if len(seconds) != len(t.Targets) {
			return fmt.Errorf("rider returned %v timing sequences for %v targets", len(seconds), len(t.Targets))
		}
		for idx, target := range t.Targets {
			t.logger().Infof("output: %v", target.Out)
			meta := map[string]string{"title": prob.Tag}
			maps.Copy(meta, prob.Meta)
			if err := writeDat(target.Out, prob.Length, prob.Nbatch, seconds[idx], meta); err != nil {
				return err
			}
		}
	}
	return nil
}

// GroupedTimer partitions problems by tag and runs every group through its
// own Timer, so each target collects one <tag>.dat file per tag under the
// target's output directory.
type GroupedTimer struct {
	Rider   string
	Targets []Target
	Device  int
	Ntrial  int
	Verbose bool

	Log *zap.SugaredLogger
	Run RiderFunc
}

// RunCases drains gen eagerly, then processes groups in first-seen tag
// order. A failing group aborts the remaining ones.
func (t *GroupedTimer) RunCases(gen Generator) error {
	groups := make(map[string][]Problem)
	tags := make([]string, 0)
	for prob := range gen.GenerateProblems() {
		if _, ok := groups[prob.Tag]; !ok {
			tags = append(tags, prob.Tag)
		}
		groups[prob.Tag] = append(groups[prob.Tag], prob)
	}

	for _, tag := range tags {
		targets := make([]Target, 0, len(t.Targets))
		for _, target := range t.Targets {
			targets = append(targets, Target{Lib: target.Lib, Out: filepath.Join(target.Out, tag+".dat")})
		}
		timer := Timer{
			Rider:   t.Rider,
			Targets: targets,
			Device:  t.Device,
			Ntrial:  t.Ntrial,
			Verbose: t.Verbose,
			Log:     t.Log,
			Run:     t.Run,
		}
		if err := timer.RunCases(&VerbatimGenerator{Problems: groups[tag]}); err != nil {
			return err
		}
	}
	return nil
}
