package ranker

import (
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
)

// sumTolerance is how far the converged vector's total may drift from 1
// before IterateRank rescales it.
const sumTolerance = 1e-9

// IterateRank computes the PageRank score of every corpus page by solving
// the fixed-point equation
//
//	rank(p) = (1-d)/N + d * sum over q linking to p of rank(q)/outdeg(q)
//
// with synchronous (Jacobi) sweeps: every sweep reads only the previous
// sweep's scores from one buffer and writes the new scores into a second
// buffer, then the buffers swap. The rank of pages without outgoing links
// is redistributed uniformly across the corpus each sweep, matching the
// dead-end convention of TransitionModel. The loop stops once no page moved
// by ConvergenceThreshold or more; the result is rescaled to sum to 1 if
// floating-point drift accumulated.
func (r *Ranker) IterateRank(s corpus.Snapshot) (Vector, error) {
	pages, err := checkSnapshot(s)
	if err != nil {
		return nil, err
	}

	n := float64(len(pages))
	pageIdx := make(map[string]int, len(pages))
	for i, page := range pages {
		pageIdx[page] = i
	}

	cur := make([]float64, len(pages))
	next := make([]float64, len(pages))
	for i := range cur {
		cur[i] = 1.0 / n
	}

	teleport := (1.0 - r.cfg.DampingFactor) / n
	for iteration := 1; ; iteration++ {
		// Rank held by dead ends gets spread across every page.
		var deadEndMass float64
		for i, page := range pages {
			if len(s[page]) == 0 {
				deadEndMass += cur[i]
			}
		}

		base := teleport + r.cfg.DampingFactor*deadEndMass/n
		for i := range next {
			next[i] = base
		}

		// Scatter each page's damped rank share to its link targets.
		for i, page := range pages {
			links := s[page]
			if len(links) == 0 {
				continue
			}
			share := r.cfg.DampingFactor * cur[i] / float64(len(links))
			for _, dst := range links {
				j, exists := pageIdx[dst]
				if !exists {
					return nil, xerrors.Errorf("iterate rank: %q -> %q: %w", page, dst, corpus.ErrDanglingLink)
				}
				next[j] += share
			}
		}

		var maxDelta float64
		for i := range next {
			if delta := math.Abs(next[i] - cur[i]); delta > maxDelta {
				maxDelta = delta
			}
		}
		cur, next = next, cur

		if maxDelta < r.cfg.ConvergenceThreshold {
			break
		}
		if r.cfg.MaxIterations > 0 && iteration >= r.cfg.MaxIterations {
			r.cfg.Logger.WithFields(logrus.Fields{
				"iterations": iteration,
				"max_delta":  maxDelta,
			}).Warn("iteration cap reached before convergence")
			break
		}
	}

	if total := floats.Sum(cur); math.Abs(total-1.0) > sumTolerance {
		floats.Scale(1.0/total, cur)
	}

	ranks := make(Vector, len(pages))
	for i, page := range pages {
		ranks[page] = cur[i]
	}
	return ranks, nil
}
