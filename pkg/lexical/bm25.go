package lexical

import "math"

// BM25 tuning constants. Standard values from Robertson et al.
const (
	// bm25K1 controls term frequency saturation. Range [1.2, 2.0] is typical.
	bm25K1 = 1.5

	// bm25B controls document length normalization.
	// 0 = none, 1 = full. 0.75 is the standard default.
	bm25B = 0.75
)

// ScoreBM25 ranks a batch of tokenized documents against the query tokens
// using Okapi BM25 with Lucene-style IDF smoothing.
//
// The corpus is the retrieved candidate pool, not the whole chunk table:
// document frequencies are computed per batch so scores reflect term rarity
// within the pool being reranked.
//
// Returned scores are max-normalized into [0, 1], one per document in input
// order. If every raw score is zero (query shares no terms with the pool)
// the result is all zeros rather than a division fault.
func ScoreBM25(queryTokens []string, corpus [][]string) []float64 {
	scores := make([]float64, len(corpus))
	if len(corpus) == 0 || len(queryTokens) == 0 {
		return scores
	}

	// Per-document term frequencies and average length.
	tfs := make([]map[string]int, len(corpus))
	totalLen := 0
	df := make(map[string]int)
	for i, doc := range corpus {
		tf := make(map[string]int, len(doc))
		for _, term := range doc {
			tf[term]++
		}
		tfs[i] = tf
		totalLen += len(doc)
		for term := range tf {
			df[term]++
		}
	}
	avgLen := float64(totalLen) / float64(len(corpus))
	if avgLen == 0 {
		return scores
	}

	// IDF with add-one smoothing: log((N+1)/(df+1)) + 1, always >= 1.
	n := float64(len(corpus))
	idf := make(map[string]float64, len(df))
	for term, freq := range df {
		idf[term] = math.Log((n+1)/float64(freq+1)) + 1
	}

	// Deduplicate query terms; repeated query words should not double-count.
	queryTerms := make(map[string]struct{}, len(queryTokens))
	for _, term := range queryTokens {
		queryTerms[term] = struct{}{}
	}

	var maxScore float64
	for i := range corpus {
		dl := float64(len(corpus[i]))
		var score float64
		for term := range queryTerms {
			tf, inDoc := tfs[i][term]
			if !inDoc {
				continue
			}
			tfF := float64(tf)
			numerator := tfF * (bm25K1 + 1)
			denominator := tfF + bm25K1*(1-bm25B+bm25B*dl/avgLen)
			score += idf[term] * (numerator / denominator)
		}
		scores[i] = score
		if score > maxScore {
			maxScore = score
		}
	}

	if maxScore > 0 {
		for i := range scores {
			scores[i] /= maxScore
		}
	}
	return scores
}
