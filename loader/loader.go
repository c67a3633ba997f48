/*
Package loader populates a corpus store from a directory of HTML
documents. It is the only component that touches the filesystem; the
rankers consume the resulting snapshot and nothing else.
*/
package loader

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/xerrors"
)

// Graph is implemented by objects that can upsert documents and links into
// a corpus store.
type Graph interface {
	UpsertDocument(doc *corpus.Document) error
	UpsertLink(link *corpus.Link) error
}

type Config struct {
	// Dir is the directory containing the corpus HTML files.
	Dir string

	// Graph is the corpus store to populate.
	Graph Graph

	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Dir == "" {
		err = multierror.Append(err, xerrors.Errorf("corpus directory has not been provided"))
	}
	if cfg.Graph == nil {
		err = multierror.Append(err, xerrors.Errorf("corpus graph has not been provided"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(logrus.New())
	}
	return err
}

// DirLoader scans a directory of HTML pages and records each page and its
// in-corpus links into a corpus store.
type DirLoader struct {
	cfg Config
}

func NewDirLoader(cfg Config) (*DirLoader, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("dir loader config validation failed: %w", err)
	}
	return &DirLoader{cfg: cfg}, nil
}

// Load parses every HTML file in the configured directory and upserts the
// documents and their links. Links that point to a page outside the corpus
// or back to the page itself are dropped. Files that cannot be read or
// parsed are reported together without aborting the remaining files.
func (l *DirLoader) Load() error {
	entries, err := os.ReadDir(l.cfg.Dir)
	if err != nil {
		return xerrors.Errorf("load corpus: %w", err)
	}

	// First pass: parse every page so that the link filter below knows the
	// full corpus key set.
	var loadErr error
	pageLinks := make(map[string][]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}

		links, err := extractLinks(filepath.Join(l.cfg.Dir, name))
		if err != nil {
			loadErr = multierror.Append(loadErr, xerrors.Errorf("parse %q: %w", name, err))
			continue
		}
		pageLinks[name] = links
	}
	if loadErr != nil {
		return loadErr
	}

	// Second pass: documents first so every link endpoint resolves, then
	// the links, keeping only in-corpus, non-self destinations.
	docIDs := make(map[string]*corpus.Document, len(pageLinks))
	for name := range pageLinks {
		doc := &corpus.Document{Name: name}
		if err := l.cfg.Graph.UpsertDocument(doc); err != nil {
			return xerrors.Errorf("upsert document %q: %w", name, err)
		}
		docIDs[name] = doc
	}

	numLinks := 0
	for name, links := range pageLinks {
		for _, dst := range links {
			dstDoc, inCorpus := docIDs[dst]
			if !inCorpus || dst == name {
				continue
			}
			if err := l.cfg.Graph.UpsertLink(&corpus.Link{Src: docIDs[name].ID, Dst: dstDoc.ID}); err != nil {
				return xerrors.Errorf("upsert link %q -> %q: %w", name, dst, err)
			}
			numLinks++
		}
	}

	l.cfg.Logger.WithFields(logrus.Fields{
		"num_documents": len(pageLinks),
		"num_links":     numLinks,
	}).Info("loaded corpus")
	return nil
}

// extractLinks tokenizes an HTML file and collects the href attribute of
// every anchor element.
func extractLinks(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var links []string
	tokenizer := html.NewTokenizer(f)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); !xerrors.Is(err, io.EOF) {
				return nil, err
			}
			return links, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "href" && attr.Val != "" {
					links = append(links, attr.Val)
				}
			}
		}
	}
}
