package retriever

import (
	"context"
	"sort"
	"strings"
	"time"

	"advisor-chat-be/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
)

const corpusCacheKey = "approved_corpus"

// KeywordRetriever scores chunks by distinct query-word overlap. Scores are
// raw overlap counts, not length-normalized, and ties keep corpus insertion
// order. The approved corpus is cached briefly so every chat turn does not
// re-read the whole table.
type KeywordRetriever struct {
	source ChunkSource
	cache  *gocache.Cache
}

func NewKeywordRetriever(source ChunkSource, corpusTTL time.Duration) *KeywordRetriever {
	if corpusTTL <= 0 {
		corpusTTL = 60 * time.Second
	}
	return &KeywordRetriever{
		source: source,
		cache:  gocache.New(corpusTTL, 2*corpusTTL),
	}
}

func (r *KeywordRetriever) Retrieve(ctx context.Context, query string, limit int) ([]*contract.RetrievedChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	corpus, err := r.corpus(ctx)
	if err != nil {
		return nil, err
	}

	keywords := queryWords(query)
	if len(keywords) == 0 {
		// No signal to score on; return the head of the corpus.
		if len(corpus) > limit {
			return corpus[:limit], nil
		}
		return corpus, nil
	}

	type scored struct {
		chunk *contract.RetrievedChunk
		score int
	}
	var matches []scored
	for _, c := range corpus {
		s := overlap(keywords, c.Chunk.Content)
		if s > 0 {
			matches = append(matches, scored{chunk: c, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	result := make([]*contract.RetrievedChunk, len(matches))
	for i, m := range matches {
		m.chunk.Score = float64(m.score)
		result[i] = m.chunk
	}
	return result, nil
}

// InvalidateCorpus drops the cached corpus, e.g. after a document approval.
func (r *KeywordRetriever) InvalidateCorpus() {
	r.cache.Delete(corpusCacheKey)
}

func (r *KeywordRetriever) corpus(ctx context.Context) ([]*contract.RetrievedChunk, error) {
	if cached, ok := r.cache.Get(corpusCacheKey); ok {
		return cached.([]*contract.RetrievedChunk), nil
	}
	corpus, err := r.source.FindApprovedWithDocs(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(corpusCacheKey, corpus, gocache.DefaultExpiration)
	return corpus, nil
}

func queryWords(query string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(query))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func overlap(keywords map[string]struct{}, content string) int {
	contentWords := queryWords(content)
	count := 0
	for w := range keywords {
		if _, ok := contentWords[w]; ok {
			count++
		}
	}
	return count
}
