package cdb

import (
	"database/sql"
	"sort"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/xerrors"
)

const (
	upsertDocumentQuery = `
  INSERT INTO documents (name, loaded_at) VALUES ($1, NOW())
  ON CONFLICT (name) DO UPDATE SET loaded_at=NOW()
  RETURNING id, loaded_at
  `
	upsertLinkQuery = `
  INSERT INTO links (src, dst) VALUES ($1, $2)
  ON CONFLICT (src, dst) DO UPDATE SET dst=$2
  RETURNING id
  `
	getDocumentQuery = `
  SELECT name, loaded_at FROM documents WHERE id=$1
  `
	iterDocumentsQuery = `
  SELECT id, name, loaded_at FROM documents
  `
	snapshotQuery = `
  SELECT d.name, dst.name
  FROM documents AS d
  LEFT JOIN links AS l ON l.src = d.id
  LEFT JOIN documents AS dst ON dst.id = l.dst
  `
)

// CockroachDBGraph implements corpus.Graph on top of a CockroachDB (or plain
// Postgres) instance.
type CockroachDBGraph struct {
	db *sql.DB
}

func NewCockroachDBGraph(dsn string) (*CockroachDBGraph, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	return &CockroachDBGraph{db}, nil
}

func (c *CockroachDBGraph) Close() error {
	return c.db.Close()
}

func (c *CockroachDBGraph) UpsertDocument(doc *corpus.Document) error {
	row := c.db.QueryRow(upsertDocumentQuery, doc.Name)
	if err := row.Scan(&doc.ID, &doc.LoadedAt); err != nil {
		return xerrors.Errorf("upsert document: %w", err)
	}
	doc.LoadedAt = doc.LoadedAt.UTC()
	return nil
}

func (c *CockroachDBGraph) UpsertLink(link *corpus.Link) error {
	// Self-links never enter the corpus.
	if link.Src == link.Dst {
		return nil
	}
	row := c.db.QueryRow(upsertLinkQuery, link.Src, link.Dst)
	if err := row.Scan(&link.ID); err != nil {
		if isForeignKeyError(err) {
			err = corpus.ErrUnknownLinkDocuments
		}
		return xerrors.Errorf("upsert link: %w", err)
	}
	return nil
}

func isForeignKeyError(err error) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}

	return pqErr.Code.Name() == "foreign_key_violation"
}

func (c *CockroachDBGraph) FindDocument(id uuid.UUID) (*corpus.Document, error) {
	row := c.db.QueryRow(getDocumentQuery, id)
	doc := &corpus.Document{ID: id}
	if err := row.Scan(&doc.Name, &doc.LoadedAt); err != nil {
		if xerrors.Is(err, sql.ErrNoRows) {
			return nil, xerrors.Errorf("find document: %w", corpus.ErrNotFound)
		}
		return nil, xerrors.Errorf("find document: %w", err)
	}
	doc.LoadedAt = doc.LoadedAt.UTC()
	return doc, nil
}

func (c *CockroachDBGraph) Documents() (corpus.DocumentIterator, error) {
	rows, err := c.db.Query(iterDocumentsQuery)
	if err != nil {
		return nil, xerrors.Errorf("documents: %w", err)
	}
	return &documentIterator{rows: rows}, nil
}

// Snapshot materializes the name-keyed link mapping with a single join
// query. Documents without outgoing links surface as empty destination
// lists via the left join.
func (c *CockroachDBGraph) Snapshot() (corpus.Snapshot, error) {
	rows, err := c.db.Query(snapshotQuery)
	if err != nil {
		return nil, xerrors.Errorf("snapshot: %w", err)
	}
	defer rows.Close()

	snapshot := make(corpus.Snapshot)
	for rows.Next() {
		var src string
		var dst sql.NullString
		if err := rows.Scan(&src, &dst); err != nil {
			return nil, xerrors.Errorf("snapshot: %w", err)
		}
		if _, exists := snapshot[src]; !exists {
			snapshot[src] = nil
		}
		if dst.Valid {
			snapshot[src] = append(snapshot[src], dst.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Errorf("snapshot: %w", err)
	}

	for src := range snapshot {
		sort.Strings(snapshot[src])
	}
	return snapshot, nil
}
