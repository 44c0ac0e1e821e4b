package main

import (
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func IntEnv(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseTargets(specs []string) ([]Target, error) {
	targets := make([]Target, 0, len(specs))
	for _, spec := range specs {
		lib, out, ok := strings.Cut(spec, "=")
		if !ok || lib == "" || out == "" {
			return nil, fmt.Errorf("malformed target %q, want lib=path", spec)
		}
		targets = append(targets, Target{Lib: lib, Out: out})
	}
	return targets, nil
}

func runCmd() *cobra.Command {
	var (
		riderPath string
		suitePath string
		outSpecs  []string
		ntrial    int
		device    int
		grouped   bool
		verbose   bool
		hostMeta  bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark every case of a suite with the configured rider",
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := LoadSuite(suitePath)
			if err != nil {
				return fmt.Errorf("failed to load suite %v: %w", suitePath, err)
			}
			targets, err := parseTargets(outSpecs)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				return fmt.Errorf("no targets configured, pass at least one --out lib=path")
			}

			info := HostStat()
			Logger.Infof("host stat: %+v", info)
			if hostMeta {
				for idx := range suite.Cases {
					merged := info.HostMeta()
					maps.Copy(merged, suite.Cases[idx].Meta)
					suite.Cases[idx].Meta = merged
				}
			}

			if grouped {
				timer := GroupedTimer{Rider: riderPath, Targets: targets, Device: device, Ntrial: ntrial, Verbose: verbose}
				return timer.RunCases(suite)
			}
			timer := Timer{Rider: riderPath, Targets: targets, Device: device, Ntrial: ntrial, Verbose: verbose}
			return timer.RunCases(suite)
		},
	}
	cmd.Flags().StringVar(&riderPath, "rider", StringEnv("RIDER_PATH", ""), "path to the rider executable")
	cmd.Flags().StringVar(&suitePath, "suite", StringEnv("RIDER_SUITE", "suite.yaml"), "benchmark suite file")
	cmd.Flags().StringArrayVar(&outSpecs, "out", nil, "output target as lib=path, repeatable")
	cmd.Flags().IntVar(&ntrial, "ntrial", IntEnv("RIDER_NTRIAL", 10), "timing samples per case")
	cmd.Flags().IntVar(&device, "device", IntEnv("RIDER_DEVICE", 0), "device id passed to the rider")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "merge cases sharing a tag into one <tag>.dat file per target")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "pass --verbose to the rider")
	cmd.Flags().BoolVar(&hostMeta, "host-meta", false, "record host information in every output record")
	return cmd
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		Logger.Warnf("failed to load .env: %v", err)
	}
	root := &cobra.Command{
		Use:           "riderbench",
		Short:         "Orchestrate rider benchmark runs over generated FFT cases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd())
	if err := root.Execute(); err != nil {
		Logger.Errorf("%v", err)
		os.Exit(1)
	}
}
