package retrieval

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ragdoc/ragdoc/internal/vectordb"
)

// Hybrid score weights. The metadata bonus contributes at most 30% so an
// explicit "chapter 5" or "page 12" question can outrank a purely semantic
// near-miss without ever fully overriding semantic relevance.
const (
	semanticWeight = 0.7
	metadataWeight = 0.3

	chapterBonus    = 0.5
	sourceBonus     = 0.3
	pageBonus       = 0.2
	minSourceToken  = 3
	maxMetadataVal  = 1.0
)

// RankedResult is one chunk after hybrid scoring, ordered by descending
// score and truncated to the requested result count.
type RankedResult struct {
	Text     string
	Score    float64
	Metadata vectordb.ChunkMetadata
}

// Rank rescales each candidate's vector distance into a similarity score,
// blends in a metadata-match bonus against the query text, stable-sorts
// descending, and truncates to topK. Ties keep the original candidate
// order. The output is deterministic for identical input.
func Rank(candidates []vectordb.Candidate, queryText string, topK int) []RankedResult {
	if len(candidates) == 0 {
		return nil
	}

	query := strings.ToLower(queryText)

	results := make([]RankedResult, len(candidates))
	for i, c := range candidates {
		// Cosine distance lives in [0, 2], so the semantic score may leave
		// [0, 1] at the extremes. Deliberately not clamped.
		semantic := 1 - float64(c.Distance)
		bonus := metadataBonus(c.Metadata, query)
		results[i] = RankedResult{
			Text:     c.Text,
			Score:    semanticWeight*semantic + metadataWeight*bonus,
			Metadata: c.Metadata,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK >= 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// metadataBonus sums structural matches between the chunk's tags and the
// lower-cased query text, capped at 1.0.
func metadataBonus(m vectordb.ChunkMetadata, loweredQuery string) float64 {
	var bonus float64

	if m.Chapter != "" && containsPhrase(loweredQuery, "chapter", strings.ToLower(m.Chapter)) {
		bonus += chapterBonus
	}

	for _, token := range sourceTokens(m.SourceFile) {
		if len(token) > minSourceToken && strings.Contains(loweredQuery, token) {
			bonus += sourceBonus
			break
		}
	}

	if m.Page > 0 && containsPhrase(loweredQuery, "page", strconv.Itoa(m.Page)) {
		bonus += pageBonus
	}

	if bonus > maxMetadataVal {
		bonus = maxMetadataVal
	}
	return bonus
}

// containsPhrase reports whether query contains "<word> <value>" with or
// without the space.
func containsPhrase(query, word, value string) bool {
	return strings.Contains(query, word+" "+value) || strings.Contains(query, word+value)
}

// sourceTokens splits a source filename on whitespace, dashes, and
// underscores, lower-cased.
func sourceTokens(sourceFile string) []string {
	return strings.FieldsFunc(strings.ToLower(sourceFile), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == '_'
	})
}
