package ranker

import (
	"math/rand"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// DefaultConvergenceThreshold is the per-page rank delta below which
// IterateRank considers the fixed point reached.
const DefaultConvergenceThreshold = 0.001

// Config encapsulates the settings for the PageRank rankers.
type Config struct {
	// DampingFactor is the probability that the random surfer follows one
	// of the current page's outgoing links rather than teleporting to a
	// uniformly random page. Must lie strictly between 0 and 1.
	DampingFactor float64

	// SampleCount is the number of random-walk steps performed by
	// SampleRank. Must be greater than zero.
	SampleCount int

	// ConvergenceThreshold is the maximum per-page score change between
	// two successive sweeps that signals convergence of IterateRank.
	// Defaults to DefaultConvergenceThreshold.
	ConvergenceThreshold float64

	// MaxIterations optionally caps the number of sweeps IterateRank
	// performs. The damping factor guarantees geometric contraction so the
	// cap is purely defensive; if it triggers before convergence the
	// ranker logs a diagnostic and returns the rescaled current vector.
	// Zero means no cap.
	MaxIterations int

	// Rand is the randomness source for SampleRank. Seed it for
	// reproducible runs. If not specified, a time-seeded source is used.
	Rand *rand.Rand

	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.DampingFactor <= 0 || cfg.DampingFactor >= 1 {
		err = multierror.Append(err, xerrors.Errorf("damping factor must be in the open interval (0, 1)"))
	}
	if cfg.SampleCount <= 0 {
		err = multierror.Append(err, xerrors.Errorf("sample count must be greater than zero"))
	}
	if cfg.ConvergenceThreshold < 0 {
		err = multierror.Append(err, xerrors.Errorf("convergence threshold cannot be negative"))
	} else if cfg.ConvergenceThreshold == 0 {
		cfg.ConvergenceThreshold = DefaultConvergenceThreshold
	}
	if cfg.MaxIterations < 0 {
		err = multierror.Append(err, xerrors.Errorf("max iterations cannot be negative"))
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(logrus.New())
	}
	return err
}
