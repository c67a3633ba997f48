package ranker

import (
	"math/rand"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
)

// SampleRank estimates the PageRank score of every corpus page by
// performing a random walk of SampleCount steps, starting from a uniformly
// random page and following the transition model at each step. Each page's
// score is the fraction of steps that visited it, so the returned vector
// sums to 1 by construction. A larger SampleCount reduces the variance of
// the estimate.
func (r *Ranker) SampleRank(s corpus.Snapshot) (Vector, error) {
	pages, err := checkSnapshot(s)
	if err != nil {
		return nil, err
	}

	cur := pages[r.cfg.Rand.Intn(len(pages))]
	visits := make(map[string]int, len(pages))
	for i := 0; i < r.cfg.SampleCount; i++ {
		prob, err := r.TransitionModel(s, cur)
		if err != nil {
			return nil, err
		}
		cur = pickWeighted(r.cfg.Rand, pages, prob)
		visits[cur]++
	}

	ranks := make(Vector, len(pages))
	sampleCount := float64(r.cfg.SampleCount)
	for _, page := range pages {
		ranks[page] = float64(visits[page]) / sampleCount
	}
	return ranks, nil
}

// pickWeighted draws a page from the distribution by inverting its
// cumulative form with a continuous uniform draw. Pages are walked in
// sorted order so that a seeded source reproduces the same walk. The
// probabilities sum to 1 up to floating-point rounding; any residual falls
// through to the last page.
func pickWeighted(rng *rand.Rand, pages []string, prob Distribution) string {
	u := rng.Float64()
	var cum float64
	for _, page := range pages {
		cum += prob[page]
		if u < cum {
			return page
		}
	}
	return pages[len(pages)-1]
}
