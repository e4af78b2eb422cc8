package chunker

import (
	"strings"
	"testing"
)

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(800, 100)
	chunks := s.Split("A short paragraph that easily fits in one chunk.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "A short paragraph that easily fits in one chunk." {
		t.Errorf("unexpected chunk content: %q", chunks[0])
	}
}

func TestSplitEmptyInput(t *testing.T) {
	s := NewSplitter(800, 100)
	if chunks := s.Split(""); len(chunks) != 0 {
		t.Errorf("empty input: expected no chunks, got %d", len(chunks))
	}
	if chunks := s.Split("   \n\n  "); len(chunks) != 0 {
		t.Errorf("whitespace input: expected no chunks, got %d", len(chunks))
	}
}

func TestSplitRespectsSizeBound(t *testing.T) {
	s := NewSplitter(100, 20)

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("The quick brown fox jumps over the lazy dog. ")
	}

	chunks := s.Split(sb.String())
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if len(c) > 100 {
			t.Errorf("chunk %d exceeds size bound: %d chars", i, len(c))
		}
	}
}

func TestSplitPrefersParagraphBreaks(t *testing.T) {
	s := NewSplitter(60, 10)
	text := "First paragraph with some words.\n\nSecond paragraph with more words."

	chunks := s.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != "First paragraph with some words." {
		t.Errorf("first chunk: %q", chunks[0])
	}
	if chunks[1] != "Second paragraph with more words." {
		t.Errorf("second chunk: %q", chunks[1])
	}
}

func TestSplitFallsBackToWordBoundary(t *testing.T) {
	s := NewSplitter(30, 5)
	// Single long sentence with no paragraph or sentence breaks under the
	// limit forces a word-level split.
	text := "one two three four five six seven eight nine ten eleven twelve"

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 30 {
			t.Errorf("chunk %d exceeds size bound: %q", i, c)
		}
		if strings.TrimSpace(c) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestSplitHardSplitsUnbreakableRuns(t *testing.T) {
	s := NewSplitter(50, 10)
	text := strings.Repeat("x", 240)

	chunks := s.Split(text)
	if len(chunks) < 4 {
		t.Fatalf("expected several chunks for a 240-char run, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 50 {
			t.Errorf("chunk %d exceeds size bound: %d chars", i, len(c))
		}
	}
}

func TestSplitKeepsOverlapBetweenChunks(t *testing.T) {
	s := NewSplitter(80, 30)

	var sentences []string
	for i := 0; i < 12; i++ {
		sentences = append(sentences, "Sentence number "+strings.Repeat("a", i)+" here.")
	}
	text := strings.Join(sentences, " ")

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Adjacent chunks should share a trailing/leading region.
	overlapped := 0
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev
		if len(tail) > 30 {
			tail = tail[len(tail)-30:]
		}
		// Any shared sentence fragment counts.
		for j := 0; j < len(tail)-10; j++ {
			if strings.Contains(chunks[i], tail[j:j+10]) {
				overlapped++
				break
			}
		}
	}
	if overlapped == 0 {
		t.Error("expected at least one pair of adjacent chunks to share overlap content")
	}
}

func TestSplitPreservesAllContent(t *testing.T) {
	s := NewSplitter(90, 20)
	text := "Coverage begins on the first day.\nClaims must be filed within ninety days. " +
		"Appeals are handled by the member services department.\n\n" +
		"Emergency care is covered worldwide. Prior authorization applies to elective procedures."

	chunks := s.Split(text)
	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".?! ")
		if word == "" {
			continue
		}
		if !strings.Contains(joined, word) {
			t.Errorf("word %q missing from chunk output", word)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	s := NewSplitter(70, 15)
	text := "Alpha beta gamma. Delta epsilon zeta.\n\nEta theta iota kappa. Lambda mu nu xi omicron pi rho sigma tau."

	first := s.Split(text)
	second := s.Split(text)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestNewSplitterGuardsParameters(t *testing.T) {
	s := NewSplitter(0, -1)
	if s.chunkSize != DefaultChunkSize {
		t.Errorf("expected default chunk size, got %d", s.chunkSize)
	}
	if s.overlap != DefaultOverlap {
		t.Errorf("expected default overlap, got %d", s.overlap)
	}

	s = NewSplitter(100, 100)
	if s.overlap >= s.chunkSize {
		t.Errorf("overlap %d not clamped below chunk size %d", s.overlap, s.chunkSize)
	}
}
