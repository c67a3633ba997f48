package ranker

import (
	"golang.org/x/xerrors"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
)

// TransitionModel returns the probability distribution over which page the
// random surfer visits next, given the current page.
//
// With probability DampingFactor the surfer follows one of the outgoing
// links of page, chosen uniformly; with probability 1-DampingFactor the
// surfer teleports to a uniformly random corpus page. A page with no
// outgoing links is treated as linking to every page, which makes the
// distribution collapse to exactly 1/N per page.
func (r *Ranker) TransitionModel(s corpus.Snapshot, page string) (Distribution, error) {
	if len(s) == 0 {
		return nil, xerrors.Errorf("transition model: %w", ErrEmptyCorpus)
	}
	links, exists := s[page]
	if !exists {
		return nil, xerrors.Errorf("transition model: %q: %w", page, ErrUnknownPage)
	}

	n := float64(len(s))
	teleportProb := (1.0 - r.cfg.DampingFactor) / n

	prob := make(Distribution, len(s))
	for candidate := range s {
		prob[candidate] = teleportProb
	}

	if len(links) == 0 {
		// Dead end: the damping mass spreads uniformly too.
		for candidate := range s {
			prob[candidate] += r.cfg.DampingFactor / n
		}
		return prob, nil
	}

	followProb := r.cfg.DampingFactor / float64(len(links))
	for _, dst := range links {
		if _, exists := s[dst]; !exists {
			return nil, xerrors.Errorf("transition model: %q -> %q: %w", page, dst, corpus.ErrDanglingLink)
		}
		prob[dst] += followProb
	}
	return prob, nil
}
