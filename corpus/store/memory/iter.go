package memory

import "github.com/Ahmed-Sermani/corpus-ranker/corpus"

type documentIterator struct {
	s *InMemoryGraph

	documents []*corpus.Document
	curIdx    int
}

func (i *documentIterator) Next() bool {
	if i.curIdx >= len(i.documents) {
		return false
	}
	i.curIdx++
	return true
}

// Document returns a clone of the current document; the stored pointer may
// be overwritten by a concurrent upsert.
func (i *documentIterator) Document() *corpus.Document {
	i.s.mu.RLock()
	doc := new(corpus.Document)
	*doc = *i.documents[i.curIdx-1]
	i.s.mu.RUnlock()
	return doc
}

func (i *documentIterator) Error() error {
	return nil
}

func (i *documentIterator) Close() error {
	return nil
}
