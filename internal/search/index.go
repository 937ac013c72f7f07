// ABOUTME: Full-text search over diary entries backed by an in-memory bleve index.
// ABOUTME: Documents are keyed by index date, so hit IDs are search result refs.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	bleveSearch "github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/samber/lo"

	"github.com/2389-research/minidiary/internal/models"
)

const titleBoost = 2.0

// Index holds one document per diary day.
type Index struct {
	idx bleve.Index
}

// document is the indexed form of an entry.
type document struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func newDocument(e models.Entry) document {
	return document{Title: e.Title, Text: e.Text}
}

// New creates an empty in-memory index.
func New() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Build indexes every entry in one batch.
func (i *Index) Build(entries models.Entries) error {
	batch := i.idx.NewBatch()
	for date, entry := range entries {
		if err := batch.Index(date, newDocument(entry)); err != nil {
			return fmt.Errorf("failed to index %s: %w", date, err)
		}
	}
	if err := i.idx.Batch(batch); err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}
	return nil
}

// Upsert indexes or reindexes a single entry.
func (i *Index) Upsert(entry models.Entry) error {
	if err := i.idx.Index(entry.Date, newDocument(entry)); err != nil {
		return fmt.Errorf("failed to index %s: %w", entry.Date, err)
	}
	return nil
}

// Remove drops the document for date. Results returned by earlier searches
// still reference it until the next search.
func (i *Index) Remove(date string) error {
	if err := i.idx.Delete(date); err != nil {
		return fmt.Errorf("failed to remove %s from index: %w", date, err)
	}
	return nil
}

// Len returns the number of indexed days.
func (i *Index) Len() (int, error) {
	n, err := i.idx.DocCount()
	return int(n), err
}

// Search returns up to limit results for q, newest day first. limit <= 0
// means no limit. A blank query returns no results.
func (i *Index) Search(q string, limit int) ([]models.SearchResult, error) {
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 {
		return nil, nil
	}

	size := limit
	if size <= 0 {
		n, err := i.idx.DocCount()
		if err != nil {
			return nil, fmt.Errorf("failed to count documents: %w", err)
		}
		size = int(n)
	}
	if size == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(terms), size, 0, false)
	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := lo.Map(res.Hits, func(hit *bleveSearch.DocumentMatch, _ int) models.SearchResult {
		return models.SearchResult{Ref: hit.ID, Score: hit.Score}
	})
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Ref > results[b].Ref
	})
	return results, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.idx.Close()
}

// buildQuery matches any term in the title or text, either as a whole
// analyzed word or as a prefix, so partially typed words still match.
func buildQuery(terms []string) query.Query {
	var disjuncts []query.Query
	for _, term := range terms {
		for _, field := range []string{"title", "text"} {
			boost := 1.0
			if field == "title" {
				boost = titleBoost
			}

			match := bleve.NewMatchQuery(term)
			match.SetField(field)
			match.SetBoost(boost)

			prefix := bleve.NewPrefixQuery(term)
			prefix.SetField(field)
			prefix.SetBoost(boost / 2)

			disjuncts = append(disjuncts, match, prefix)
		}
	}
	return bleve.NewDisjunctionQuery(disjuncts...)
}
