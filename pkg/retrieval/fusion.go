package retrieval

import (
	"context"
	"sort"

	"ai-coursekb-be/internal/pkg/logger"
	"ai-coursekb-be/pkg/embedding"
	"ai-coursekb-be/pkg/lexical"
)

// lexicalFallbackWindow bounds how many chunks the lexical-only path scores
// when the embedding provider is unavailable.
const lexicalFallbackWindow = 100

// Engine runs the hybrid retrieval pipeline: embed the query, pull a widened
// semantic candidate pool, score it lexically, and fuse both signals into one
// ranking. Read-only against the chunk store; safe for concurrent queries.
type Engine struct {
	embedder  embedding.EmbeddingProvider
	semantic  *SemanticRetriever
	source    ChunkSource
	tokenizer *lexical.Tokenizer
	logger    logger.ILogger
}

func NewEngine(embedder embedding.EmbeddingProvider, source ChunkSource, tokenizer *lexical.Tokenizer, log logger.ILogger) *Engine {
	return &Engine{
		embedder:  embedder,
		semantic:  NewSemanticRetriever(source),
		source:    source,
		tokenizer: tokenizer,
		logger:    log,
	}
}

// Search executes one hybrid query. An empty candidate pool returns an empty
// result; only invalid input or store failures return errors.
func (e *Engine) Search(ctx context.Context, query Query) (*Result, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	embeddingRes, err := e.embedder.Generate(query.Text, "RETRIEVAL_QUERY")
	if err != nil {
		e.logger.Warn("retrieval", "Embedding failed, degrading to lexical-only", map[string]interface{}{
			"session_id": query.SessionId.String(),
			"error":      err.Error(),
		})
		return e.searchLexicalOnly(ctx, query)
	}

	candidates, err := e.semantic.Retrieve(ctx, query.SessionId, embeddingRes.Embedding.Values, query.TopK)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &Result{Chunks: []ScoredChunk{}}, nil
	}

	lexScores := e.scoreLexical(query.Text, candidates)
	chunks := fuse(candidates, lexScores, query.LexicalWeight)
	return &Result{Chunks: finalize(chunks, query)}, nil
}

// searchLexicalOnly ranks an ordinal window of the session's chunks purely by
// the lexical score. The result carries an explicit degradation flag.
func (e *Engine) searchLexicalOnly(ctx context.Context, query Query) (*Result, error) {
	candidates, err := e.source.Window(ctx, query.SessionId, lexicalFallbackWindow)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &Result{
			Chunks:         []ScoredChunk{},
			Degraded:       true,
			DegradedReason: "embedding provider unavailable",
		}, nil
	}

	lexScores := e.scoreLexical(query.Text, candidates)
	chunks := make([]ScoredChunk, len(candidates))
	for i, c := range candidates {
		chunks[i] = ScoredChunk{
			ChunkId:      c.ChunkId,
			Text:         c.Text,
			SourceFile:   c.SourceFile,
			LexicalScore: lexScores[i],
			HybridScore:  lexScores[i],
		}
	}

	return &Result{
		Chunks:         finalize(chunks, query),
		Degraded:       true,
		DegradedReason: "embedding provider unavailable",
	}, nil
}

// scoreLexical tokenizes the query and the candidate pool and runs BM25 over
// that pool only. Scoring locally keeps document frequencies meaningful for
// the set actually being reranked.
func (e *Engine) scoreLexical(queryText string, candidates []Candidate) []float64 {
	queryTokens := e.tokenizer.Tokenize(queryText)
	corpus := make([][]string, len(candidates))
	for i, c := range candidates {
		corpus[i] = e.tokenizer.Tokenize(c.Text)
	}
	return lexical.ScoreBM25(queryTokens, corpus)
}

// fuse computes hybrid = (1-w)*semantic + w*lexical per candidate.
// Candidates arrive in semantic rank order; that order is the input to the
// stable sort in finalize, which makes equal hybrid scores deterministic.
func fuse(candidates []Candidate, lexScores []float64, weight float64) []ScoredChunk {
	chunks := make([]ScoredChunk, len(candidates))
	for i, c := range candidates {
		chunks[i] = ScoredChunk{
			ChunkId:       c.ChunkId,
			Text:          c.Text,
			SourceFile:    c.SourceFile,
			SemanticScore: c.Similarity,
			LexicalScore:  lexScores[i],
			HybridScore:   (1-weight)*c.Similarity + weight*lexScores[i],
		}
	}
	return chunks
}

// finalize sorts by hybrid score, applies the min_score filter after fusion,
// and truncates to top_k. The filter can shrink the result below top_k.
func finalize(chunks []ScoredChunk, query Query) []ScoredChunk {
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].HybridScore > chunks[j].HybridScore
	})

	if query.MinScore > 0 {
		filtered := chunks[:0]
		for _, c := range chunks {
			if c.HybridScore >= query.MinScore {
				filtered = append(filtered, c)
			}
		}
		chunks = filtered
	}

	if len(chunks) > query.TopK {
		chunks = chunks[:query.TopK]
	}
	return chunks
}
