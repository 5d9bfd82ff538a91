// Package report prints summaries of bundle scans and library extractions.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/bagtoad/nativeload/internal/scanner"
	"github.com/bagtoad/nativeload/nativelib"
)

// Print writes an extraction summary to the given writer.
func Print(w io.Writer, ex *nativelib.Extraction, loaded bool) {
	d := ex.Descriptor

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Summary ===")
	fmt.Fprintf(w, "Platform:       %s / %s / %s\n", d.OSName, d.OSArch, d.OSVersion)
	fmt.Fprintf(w, "Route:          %s\n", ex.ResourceDir)
	fmt.Fprintf(w, "Resource:       %s (%d bytes)\n", ex.ResourcePath, ex.Size)
	fmt.Fprintf(w, "Cache file:     %s\n", ex.CachePath)
	if ex.Written {
		fmt.Fprintln(w, "Cache status:   written")
	} else {
		fmt.Fprintln(w, "Cache status:   up to date")
	}
	if loaded {
		fmt.Fprintln(w, "Loaded:         yes")
	}
	fmt.Fprintln(w)
}

// PrintScan writes the libraries of a bundle grouped by directory.
func PrintScan(w io.Writer, result *scanner.Result) {
	groups := make(map[string][]scanner.Entry)
	for _, e := range result.Libraries {
		groups[e.Dir] = append(groups[e.Dir], e)
	}

	dirs := make([]string, 0, len(groups))
	for k := range groups {
		dirs = append(dirs, k)
	}
	sort.Strings(dirs)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Bundle ===")
	fmt.Fprintf(w, "Libraries:      %d\n", len(result.Libraries))
	if result.SkippedCount > 0 {
		fmt.Fprintf(w, "Other files:    %d\n", result.SkippedCount)
	}
	fmt.Fprintf(w, "Directories:    %d\n", len(dirs))
	fmt.Fprintln(w)

	for _, dir := range dirs {
		items := groups[dir]
		fmt.Fprintf(w, "  %s/ (%d files)\n", dir, len(items))
		for _, e := range items {
			fmt.Fprintf(w, "    %s  %d bytes  xxh64:%016x\n", e.Path, e.Size, e.Digest)
		}
	}
	fmt.Fprintln(w)
}
