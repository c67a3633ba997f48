package main

import (
	"context"
	"flag"
	"math/rand"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
	"github.com/Ahmed-Sermani/corpus-ranker/corpus/store/cdb"
	memstore "github.com/Ahmed-Sermani/corpus-ranker/corpus/store/memory"
	"github.com/Ahmed-Sermani/corpus-ranker/loader"
	"github.com/Ahmed-Sermani/corpus-ranker/service"
	rankersvc "github.com/Ahmed-Sermani/corpus-ranker/service/ranker"
)

var (
	appName = "Corpus-Ranker"
	appSha  = ""
)

func main() {
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{"app": appName, "sha": appSha})

	if err := run(logger); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		os.Exit(1)
	}
}

func run(logger *logrus.Entry) error {
	var rankerCfg rankersvc.Config

	corpusDir := flag.String("corpus-dir", "", "The directory containing the corpus HTML files")
	corpusURI := flag.String("corpus-uri", "in-memory://", "The URI for connecting to the corpus store (supported URIs: in-memory://, postgresql://user@host:26257/corpus?sslmode=disable)")
	seed := flag.Int64("seed", 0, "The seed for the sampling walk's random source (0 selects a time-based seed)")
	flag.Float64Var(&rankerCfg.DampingFactor, "damping", 0.85, "The probability that the random surfer follows an outgoing link instead of teleporting")
	flag.IntVar(&rankerCfg.SampleCount, "samples", 100000, "The number of random-walk steps for the sampling estimator")
	flag.Float64Var(&rankerCfg.ConvergenceThreshold, "convergence-threshold", 0.001, "The per-page rank delta below which the iterative estimator stops")
	flag.IntVar(&rankerCfg.MaxIterations, "max-iterations", 0, "An optional cap on iterative sweeps (0 disables the cap)")
	flag.Parse()

	if *corpusDir == "" {
		return xerrors.Errorf("corpus directory must be specified with --corpus-dir")
	}

	corpusGraph, err := getCorpusGraph(*corpusURI, logger)
	if err != nil {
		return err
	}

	dirLoader, err := loader.NewDirLoader(loader.Config{
		Dir:    *corpusDir,
		Graph:  corpusGraph,
		Logger: logger.WithField("component", "loader"),
	})
	if err != nil {
		return err
	}
	if err := dirLoader.Load(); err != nil {
		return err
	}

	if *seed != 0 {
		rankerCfg.Rand = rand.New(rand.NewSource(*seed))
	}
	rankerCfg.GraphAPI = corpusGraph
	rankerCfg.Output = os.Stdout
	rankerCfg.Logger = logger.WithField("service", "ranker")

	svc, err := rankersvc.NewService(rankerCfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGHUP)
	defer cancel()

	return service.Group{svc}.Run(ctx)
}

func getCorpusGraph(corpusURI string, logger *logrus.Entry) (corpus.Graph, error) {
	if corpusURI == "" {
		return nil, xerrors.Errorf("corpus store URI must be specified with --corpus-uri")
	}

	uri, err := url.Parse(corpusURI)
	if err != nil {
		return nil, xerrors.Errorf("could not parse corpus store URI: %w", err)
	}

	switch uri.Scheme {
	case "in-memory":
		logger.Info("using in-memory corpus store")
		return memstore.NewInMemoryGraph(), nil
	case "postgresql":
		logger.Info("using CDB corpus store")
		return cdb.NewCockroachDBGraph(corpusURI)
	default:
		return nil, xerrors.Errorf("unsupported corpus store URI scheme: %q", uri.Scheme)
	}
}
