/*
Implemets Google famous and first
PageRank algorithm https://en.wikipedia.org/wiki/PageRank
*/
package ranker

import (
	"golang.org/x/xerrors"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
)

/*
   PageRank works by counting the number and quality of links to
   a page to determine a rough estimate of how important the page is.
   The underlying assumption is that more important pages are likely
   to receive more links from other pages.

   To calculate the score for each page in the corpus,
   the PageRank algorithm utilizes the model of the random surfer.
   Under this model, a surfer performs an initial search and lands on a page from the corpus.
   From that point on, surfers randomly select one of the following two options:

       They can follow any outgoing link from the current page and navigate to a new page.
       Surfers choose this option with a predefined probability that we will be referring to with the term damping factor.

       Alternatively, they can decide to run a new search query.
       This decision has the effect of teleporting the surfer to a random page in the corpus.

   The PageRank algorithm works under the assumption that the preceding steps are repeated in perpetuity.
   As a result, the model is equivalent to performing a random walk of the link graph.
   PageRank score values reflect the probability that a surfer lands on a particular page.
   By this definition, we expect the following to occur
       Each PageRank score should be a value in the [0, 1] range
       The sum of all assigned PageRank scores should be exactly equal to 1

   This package computes the scores two independent ways: SampleRank performs
   the random walk directly and reports visit frequencies while IterateRank
   solves the stationary-distribution fixed point by synchronous relaxation.
   Both treat a page without outgoing links as if it linked to every page of
   the corpus.
*/

var (
	// ErrEmptyCorpus is returned when ranking is requested over a corpus
	// snapshot with no pages.
	ErrEmptyCorpus = xerrors.New("corpus snapshot contains no pages")

	// ErrUnknownPage is returned when the requested page is not a key of
	// the corpus snapshot.
	ErrUnknownPage = xerrors.New("page is not part of the corpus")
)

// Distribution maps each page of the corpus to the probability that the
// random surfer visits it next. Values sum to 1.
type Distribution map[string]float64

// Vector maps every page of the corpus to its estimated PageRank score.
// Values are non-negative and sum to 1.
type Vector map[string]float64

// Ranker computes PageRank score vectors over corpus snapshots.
type Ranker struct {
	cfg Config
}

// NewRanker returns a new Ranker instance using the provided config
// options.
func NewRanker(cfg Config) (*Ranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("PageRank ranker config validation failed: %w", err)
	}
	return &Ranker{cfg: cfg}, nil
}

// checkSnapshot rejects empty snapshots and returns the sorted page list
// that the rankers iterate in.
func checkSnapshot(s corpus.Snapshot) ([]string, error) {
	if len(s) == 0 {
		return nil, xerrors.Errorf("rank: %w", ErrEmptyCorpus)
	}
	return s.Pages(), nil
}
