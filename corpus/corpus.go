package corpus

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

var (
	// ErrNotFound is returned when a document lookup fails.
	ErrNotFound = xerrors.New("document not found")

	// ErrUnknownLinkDocuments is returned when attempting to create a link
	// between two documents where at least one of them is not present in
	// the corpus.
	ErrUnknownLinkDocuments = xerrors.New("unknown source and/or destination for link")

	// ErrDanglingLink is returned when a snapshot references a destination
	// page that is not itself part of the snapshot.
	ErrDanglingLink = xerrors.New("link destination is not part of the corpus")
)

type Iterator interface {
	Next() bool
	Error() error
	Close() error
}

// Document is a page of the corpus. Name is the identifier that pages use
// when linking to each other and the key the rankers report scores under.
type Document struct {
	ID       uuid.UUID
	Name     string
	LoadedAt time.Time
}

type DocumentIterator interface {
	Iterator
	Document() *Document
}

// Link is a directed edge between two documents of the same corpus.
type Link struct {
	ID  uuid.UUID
	Src uuid.UUID
	Dst uuid.UUID
}

// Graph is implemented by the corpus stores. The loader populates a Graph
// once before ranking begins; the rankers only ever see the Snapshot.
type Graph interface {
	UpsertDocument(*Document) error
	FindDocument(uuid.UUID) (*Document, error)

	UpsertLink(*Link) error

	Documents() (DocumentIterator, error)
	Snapshot() (Snapshot, error)
}

// Snapshot is an immutable, name-keyed view of the corpus link graph. Every
// name that appears as a link destination must also be a key of the map and
// each destination list must be sorted and free of duplicates. A page may
// link to zero other pages.
type Snapshot map[string][]string

// Pages returns the snapshot keys in lexicographic order.
func (s Snapshot) Pages() []string {
	pages := make([]string, 0, len(s))
	for page := range s {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	return pages
}

// Validate checks the no-dangling-link invariant.
func (s Snapshot) Validate() error {
	for page, links := range s {
		for _, dst := range links {
			if _, exists := s[dst]; !exists {
				return xerrors.Errorf("snapshot: %q -> %q: %w", page, dst, ErrDanglingLink)
			}
		}
	}
	return nil
}
