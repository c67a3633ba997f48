package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

type linkList []uuid.UUID

// InMemoryGraph implements corpus.Graph backed by plain maps. It is the
// default store for local corpus directories.
type InMemoryGraph struct {
	mu sync.RWMutex

	documents map[uuid.UUID]*corpus.Document
	links     map[uuid.UUID]*corpus.Link

	docNameIndex map[string]*corpus.Document
	docLinkMap   map[uuid.UUID]linkList
}

// NewInMemoryGraph creates a new in-memory corpus store.
func NewInMemoryGraph() *InMemoryGraph {
	return &InMemoryGraph{
		documents:    make(map[uuid.UUID]*corpus.Document),
		links:        make(map[uuid.UUID]*corpus.Link),
		docNameIndex: make(map[string]*corpus.Document),
		docLinkMap:   make(map[uuid.UUID]linkList),
	}
}

// UpsertDocument inserts a document or refreshes an existing one with the
// same name. The store assigns the document ID.
func (s *InMemoryGraph) UpsertDocument(doc *corpus.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.LoadedAt.IsZero() {
		doc.LoadedAt = time.Now()
	}

	if existing := s.docNameIndex[doc.Name]; existing != nil {
		doc.ID = existing.ID
		*existing = *doc
		return nil
	}

	for {
		doc.ID = uuid.New()
		if s.documents[doc.ID] == nil {
			break
		}
	}

	dCopy := new(corpus.Document)
	*dCopy = *doc
	s.docNameIndex[dCopy.Name] = dCopy
	s.documents[dCopy.ID] = dCopy
	return nil
}

// UpsertLink creates a directed link between two known documents. Self-links
// are silently dropped; upserting an existing (src, dst) pair is a no-op.
func (s *InMemoryGraph) UpsertLink(link *corpus.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, srcExists := s.documents[link.Src]
	_, dstExists := s.documents[link.Dst]
	if !srcExists || !dstExists {
		return xerrors.Errorf("upsert link: %w", corpus.ErrUnknownLinkDocuments)
	}

	if link.Src == link.Dst {
		return nil
	}

	for _, linkID := range s.docLinkMap[link.Src] {
		existing := s.links[linkID]
		if existing.Src == link.Src && existing.Dst == link.Dst {
			*link = *existing
			return nil
		}
	}

	for {
		link.ID = uuid.New()
		if s.links[link.ID] == nil {
			break
		}
	}

	lCopy := new(corpus.Link)
	*lCopy = *link
	s.links[lCopy.ID] = lCopy
	s.docLinkMap[lCopy.Src] = append(s.docLinkMap[lCopy.Src], lCopy.ID)
	return nil
}

// FindDocument looks up a document by its ID.
func (s *InMemoryGraph) FindDocument(id uuid.UUID) (*corpus.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := s.documents[id]
	if doc == nil {
		return nil, xerrors.Errorf("find document: %w", corpus.ErrNotFound)
	}

	dCopy := new(corpus.Document)
	*dCopy = *doc
	return dCopy, nil
}

// Documents returns an iterator over all documents of the corpus.
func (s *InMemoryGraph) Documents() (corpus.DocumentIterator, error) {
	s.mu.RLock()
	list := make([]*corpus.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		list = append(list, doc)
	}
	s.mu.RUnlock()
	return &documentIterator{s: s, documents: list}, nil
}

// Snapshot flattens the store into the name-keyed link mapping consumed by
// the rankers. Destination lists come back sorted and duplicate-free.
func (s *InMemoryGraph) Snapshot() (corpus.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(corpus.Snapshot, len(s.documents))
	for docID, doc := range s.documents {
		seen := make(map[string]bool)
		dsts := make([]string, 0, len(s.docLinkMap[docID]))
		for _, linkID := range s.docLinkMap[docID] {
			dstDoc := s.documents[s.links[linkID].Dst]
			if dstDoc == nil || seen[dstDoc.Name] {
				continue
			}
			seen[dstDoc.Name] = true
			dsts = append(dsts, dstDoc.Name)
		}
		sort.Strings(dsts)
		snapshot[doc.Name] = dsts
	}
	return snapshot, nil
}
