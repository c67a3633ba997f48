package memory

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"

	"github.com/Ahmed-Sermani/corpus-ranker/corpus"
)

var _ = gc.Suite(new(InMemoryGraphTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type InMemoryGraphTestSuite struct {
	g *InMemoryGraph
}

func (s *InMemoryGraphTestSuite) SetUpTest(c *gc.C) {
	s.g = NewInMemoryGraph()
}

func (s *InMemoryGraphTestSuite) TestUpsertDocument(c *gc.C) {
	original := &corpus.Document{Name: "1.html"}
	c.Assert(s.g.UpsertDocument(original), gc.IsNil)
	c.Assert(original.ID, gc.Not(gc.Equals), uuid.Nil)
	c.Assert(original.LoadedAt.IsZero(), gc.Equals, false)

	// Upserting the same name retains the assigned ID.
	dup := &corpus.Document{Name: "1.html"}
	c.Assert(s.g.UpsertDocument(dup), gc.IsNil)
	c.Assert(dup.ID, gc.Equals, original.ID)

	found, err := s.g.FindDocument(original.ID)
	c.Assert(err, gc.IsNil)
	c.Assert(found.Name, gc.Equals, "1.html")
}

func (s *InMemoryGraphTestSuite) TestFindDocumentNotFound(c *gc.C) {
	_, err := s.g.FindDocument(uuid.New())
	c.Assert(xerrors.Is(err, corpus.ErrNotFound), gc.Equals, true)
}

func (s *InMemoryGraphTestSuite) TestUpsertLinkUnknownDocuments(c *gc.C) {
	doc := s.upsertDocument(c, "1.html")
	err := s.g.UpsertLink(&corpus.Link{Src: doc.ID, Dst: uuid.New()})
	c.Assert(xerrors.Is(err, corpus.ErrUnknownLinkDocuments), gc.Equals, true)
}

func (s *InMemoryGraphTestSuite) TestSelfLinksDropped(c *gc.C) {
	doc := s.upsertDocument(c, "1.html")
	c.Assert(s.g.UpsertLink(&corpus.Link{Src: doc.ID, Dst: doc.ID}), gc.IsNil)

	snapshot, err := s.g.Snapshot()
	c.Assert(err, gc.IsNil)
	c.Assert(snapshot["1.html"], gc.HasLen, 0)
}

func (s *InMemoryGraphTestSuite) TestUpsertLinkIdempotent(c *gc.C) {
	src := s.upsertDocument(c, "1.html")
	dst := s.upsertDocument(c, "2.html")

	first := &corpus.Link{Src: src.ID, Dst: dst.ID}
	c.Assert(s.g.UpsertLink(first), gc.IsNil)
	second := &corpus.Link{Src: src.ID, Dst: dst.ID}
	c.Assert(s.g.UpsertLink(second), gc.IsNil)
	c.Assert(second.ID, gc.Equals, first.ID)

	snapshot, err := s.g.Snapshot()
	c.Assert(err, gc.IsNil)
	c.Assert(snapshot["1.html"], gc.DeepEquals, []string{"2.html"})
}

func (s *InMemoryGraphTestSuite) TestDocumentsIterator(c *gc.C) {
	names := map[string]bool{"1.html": false, "2.html": false, "3.html": false}
	for name := range names {
		s.upsertDocument(c, name)
	}

	it, err := s.g.Documents()
	c.Assert(err, gc.IsNil)
	for it.Next() {
		names[it.Document().Name] = true
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)

	for name, seen := range names {
		c.Assert(seen, gc.Equals, true, gc.Commentf("document %q not returned", name))
	}
}

func (s *InMemoryGraphTestSuite) TestSnapshot(c *gc.C) {
	a := s.upsertDocument(c, "a.html")
	b := s.upsertDocument(c, "b.html")
	d := s.upsertDocument(c, "d.html")

	c.Assert(s.g.UpsertLink(&corpus.Link{Src: a.ID, Dst: d.ID}), gc.IsNil)
	c.Assert(s.g.UpsertLink(&corpus.Link{Src: a.ID, Dst: b.ID}), gc.IsNil)
	c.Assert(s.g.UpsertLink(&corpus.Link{Src: b.ID, Dst: d.ID}), gc.IsNil)

	snapshot, err := s.g.Snapshot()
	c.Assert(err, gc.IsNil)
	c.Assert(snapshot, gc.DeepEquals, corpus.Snapshot{
		"a.html": {"b.html", "d.html"},
		"b.html": {"d.html"},
		"d.html": {},
	})
	c.Assert(snapshot.Validate(), gc.IsNil)
}

func (s *InMemoryGraphTestSuite) upsertDocument(c *gc.C, name string) *corpus.Document {
	doc := &corpus.Document{Name: name}
	c.Assert(s.g.UpsertDocument(doc), gc.IsNil)
	return doc
}
