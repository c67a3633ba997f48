// Package report renders rank vectors in the stable, human-readable form
// the CLI prints: pages sorted by name, scores to four decimal places.
package report

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/xerrors"

	"github.com/Ahmed-Sermani/corpus-ranker/ranker"
)

// IterationHeading labels the iterative ranker's report.
const IterationHeading = "Results from Iteration"

// SamplingHeading labels the sampling ranker's report for a walk of
// sampleCount steps.
func SamplingHeading(sampleCount int) string {
	return fmt.Sprintf("Results from Sampling (n = %d)", sampleCount)
}

// Write prints the rank vector under the provided heading, one page per
// line in lexicographic order.
func Write(w io.Writer, heading string, ranks ranker.Vector) error {
	pages := make([]string, 0, len(ranks))
	for page := range ranks {
		pages = append(pages, page)
	}
	sort.Strings(pages)

	if _, err := fmt.Fprintf(w, "%s\n", heading); err != nil {
		return xerrors.Errorf("write report: %w", err)
	}
	for _, page := range pages {
		if _, err := fmt.Fprintf(w, "  %s: %.4f\n", page, ranks[page]); err != nil {
			return xerrors.Errorf("write report: %w", err)
		}
	}
	return nil
}
