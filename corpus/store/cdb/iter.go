package cdb

import (
	"database/sql"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
	"golang.org/x/xerrors"
)

type documentIterator struct {
	rows       *sql.Rows
	lastErr    error
	latchedDoc *corpus.Document
}

func (i *documentIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	doc := new(corpus.Document)
	i.lastErr = i.rows.Scan(&doc.ID, &doc.Name, &doc.LoadedAt)
	if i.lastErr != nil {
		return false
	}
	doc.LoadedAt = doc.LoadedAt.UTC()
	i.latchedDoc = doc
	return true
}

func (i *documentIterator) Document() *corpus.Document {
	return i.latchedDoc
}

func (i *documentIterator) Error() error {
	return i.lastErr
}

func (i *documentIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return xerrors.Errorf("document iterator: %w", err)
	}
	return nil
}
