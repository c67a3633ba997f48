/*
The ranker service runs both PageRank estimators over a corpus snapshot
and writes their reports. It runs to completion once; re-ranking a
changed corpus means running the program again.
*/
package ranker

import (
	"context"
	"io"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
	"github.com/Ahmed-Sermani/corpus-ranker/ranker"
	"github.com/Ahmed-Sermani/corpus-ranker/report"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/Ahmed-Sermani/corpus-ranker/service/ranker GraphAPI

// GraphAPI is implemented by corpus stores that can produce the immutable
// snapshot the rankers consume.
type GraphAPI interface {
	Snapshot() (corpus.Snapshot, error)
}

type Config struct {
	// GraphAPI provides the corpus snapshot to rank.
	GraphAPI GraphAPI

	// DampingFactor is the probability that the random surfer follows an
	// outgoing link rather than teleporting.
	DampingFactor float64

	// SampleCount is the number of random-walk steps for the sampling
	// estimator.
	SampleCount int

	// ConvergenceThreshold is the per-page delta below which the iterative
	// estimator stops. Zero selects the ranker default.
	ConvergenceThreshold float64

	// MaxIterations optionally caps the iterative sweeps. Zero means no cap.
	MaxIterations int

	// Rand seeds the sampling walk; nil selects a time-seeded source.
	Rand *rand.Rand

	// Output receives the two rank reports. Defaults to stdout.
	Output io.Writer

	// Clock times the ranking phases. Defaults to the wall clock.
	Clock clock.Clock

	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.GraphAPI == nil {
		err = multierror.Append(err, xerrors.Errorf("graph API has not been provided"))
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(logrus.New())
	}
	return err
}

// Service ranks a corpus once and reports the two score vectors.
type Service struct {
	cfg Config
}

func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranker service config validation failed: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

func (svc *Service) Name() string { return "ranker" }

// Run pulls a snapshot from the graph API, computes the sampling and
// iterative rank vectors over it and writes both reports. The context is
// checked between phases; both rankers themselves run to completion.
func (svc *Service) Run(ctx context.Context) error {
	logger := svc.cfg.Logger.WithField("run_id", uuid.New())
	started := svc.cfg.Clock.Now()

	snapshot, err := svc.cfg.GraphAPI.Snapshot()
	if err != nil {
		return xerrors.Errorf("ranker service: %w", err)
	}
	logger = logger.WithField("num_pages", len(snapshot))

	r, err := ranker.NewRanker(ranker.Config{
		DampingFactor:        svc.cfg.DampingFactor,
		SampleCount:          svc.cfg.SampleCount,
		ConvergenceThreshold: svc.cfg.ConvergenceThreshold,
		MaxIterations:        svc.cfg.MaxIterations,
		Rand:                 svc.cfg.Rand,
		Logger:               logger,
	})
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	sampled, err := r.SampleRank(snapshot)
	if err != nil {
		return xerrors.Errorf("sampling rank: %w", err)
	}
	sampledAt := svc.cfg.Clock.Now()

	if err := ctx.Err(); err != nil {
		return err
	}
	iterated, err := r.IterateRank(snapshot)
	if err != nil {
		return xerrors.Errorf("iterative rank: %w", err)
	}
	iteratedAt := svc.cfg.Clock.Now()

	if err := report.Write(svc.cfg.Output, report.SamplingHeading(svc.cfg.SampleCount), sampled); err != nil {
		return err
	}
	if err := report.Write(svc.cfg.Output, report.IterationHeading, iterated); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"sampling_time":  sampledAt.Sub(started).String(),
		"iteration_time": iteratedAt.Sub(sampledAt).String(),
	}).Info("ranking complete")
	return nil
}
