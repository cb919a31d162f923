package retriever

import (
	"context"
	"testing"
	"time"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChunkSource struct {
	corpus []*contract.RetrievedChunk
	calls  int
}

func (s *stubChunkSource) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.RetrievedChunk, error) {
	return nil, nil
}

func (s *stubChunkSource) FindApprovedWithDocs(ctx context.Context) ([]*contract.RetrievedChunk, error) {
	s.calls++
	return s.corpus, nil
}

func makeChunk(title, content string) *contract.RetrievedChunk {
	return &contract.RetrievedChunk{
		Chunk: &entity.Chunk{
			Id:      uuid.New(),
			Content: content,
		},
		DocumentTitle: title,
	}
}

func TestKeywordRetrieverRanksByOverlap(t *testing.T) {
	source := &stubChunkSource{corpus: []*contract.RetrievedChunk{
		makeChunk("Doc A", "social security benefits explained for early retirees"),
		makeChunk("Doc B", "roth conversion ladder and tax brackets"),
		makeChunk("Doc C", "social security timing and roth conversion tradeoffs"),
	}}
	r := NewKeywordRetriever(source, time.Minute)

	results, err := r.Retrieve(context.Background(), "roth conversion timing", 3)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Doc C matches all three words, Doc B two.
	assert.Equal(t, "Doc C", results[0].DocumentTitle)
	assert.Equal(t, float64(3), results[0].Score)
	assert.Equal(t, "Doc B", results[1].DocumentTitle)
	assert.Equal(t, float64(2), results[1].Score)
}

func TestKeywordRetrieverTiesKeepCorpusOrder(t *testing.T) {
	source := &stubChunkSource{corpus: []*contract.RetrievedChunk{
		makeChunk("First", "medicare enrollment windows"),
		makeChunk("Second", "medicare part b premiums"),
	}}
	r := NewKeywordRetriever(source, time.Minute)

	results, err := r.Retrieve(context.Background(), "medicare", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "First", results[0].DocumentTitle)
	assert.Equal(t, "Second", results[1].DocumentTitle)
}

func TestKeywordRetrieverEmptyQueryReturnsHead(t *testing.T) {
	source := &stubChunkSource{corpus: []*contract.RetrievedChunk{
		makeChunk("A", "alpha"),
		makeChunk("B", "beta"),
		makeChunk("C", "gamma"),
	}}
	r := NewKeywordRetriever(source, time.Minute)

	results, err := r.Retrieve(context.Background(), "   ", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].DocumentTitle)
}

func TestKeywordRetrieverNoMatches(t *testing.T) {
	source := &stubChunkSource{corpus: []*contract.RetrievedChunk{
		makeChunk("A", "estate planning trusts"),
	}}
	r := NewKeywordRetriever(source, time.Minute)

	results, err := r.Retrieve(context.Background(), "cryptocurrency staking", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestKeywordRetrieverCachesCorpus(t *testing.T) {
	source := &stubChunkSource{corpus: []*contract.RetrievedChunk{
		makeChunk("A", "withdrawal rates"),
	}}
	r := NewKeywordRetriever(source, time.Minute)

	_, err := r.Retrieve(context.Background(), "withdrawal", 3)
	require.NoError(t, err)
	_, err = r.Retrieve(context.Background(), "rates", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	r.InvalidateCorpus()
	_, err = r.Retrieve(context.Background(), "withdrawal", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}
