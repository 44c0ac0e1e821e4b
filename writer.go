package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// writeDat appends one timing record to path. Records of problems sharing a
// tag accumulate in the same file, so the file is opened in append mode and
// parent directories are created on demand.
//
// Record layout: `# key: value` comment lines with the metadata in sorted
// key order, then one line `dims... nbatch samples...`.
func writeDat(path string, length []int, nbatch int, samples []float64, meta map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	var record strings.Builder
	for _, key := range slices.Sorted(maps.Keys(meta)) {
		fmt.Fprintf(&record, "# %v: %v\n", key, meta[key])
	}
	fields := make([]string, 0, len(length)+1+len(samples))
	for _, dim := range length {
		fields = append(fields, strconv.Itoa(dim))
	}
	fields = append(fields, strconv.Itoa(nbatch))
	for _, sample := range samples {
		fields = append(fields, strconv.FormatFloat(sample, 'g', -1, 64))
	}
	record.WriteString(strings.Join(fields, " "))
	record.WriteByte('\n')

	if _, err := file.WriteString(record.String()); err != nil {
		return err
	}
	return file.Sync()
}
