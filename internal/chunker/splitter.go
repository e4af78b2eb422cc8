// Package chunker splits normalized document text into bounded, overlapping
// segments and tags them with structural metadata guesses (chapter, section).
package chunker

import "strings"

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 800
	// DefaultOverlap is the shared tail/head length between adjacent chunks.
	DefaultOverlap = 100
)

// defaultSeparators is the split priority order: paragraph break, line break,
// sentence-ending punctuation, word boundary.
var defaultSeparators = []string{"\n\n", "\n", ". ", "? ", "! ", " "}

// Splitter segments text recursively: it splits on the highest-priority
// separator present, merges the pieces back into chunks at or under the
// target size, and recurses with lower-priority separators on any piece
// that is still too large. Adjacent chunks share an overlap region.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// NewSplitter creates a Splitter with the given target chunk size and
// overlap. Non-positive values fall back to the defaults; the overlap is
// clamped below the chunk size.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Split segments text into non-empty chunks. Output is deterministic for
// identical input and parameters.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	// Pick the first separator that actually occurs in the text. When none
	// does, fall through to a hard character split.
	sep := ""
	var remaining []string
	for i, candidate := range separators {
		if strings.Contains(text, candidate) {
			sep = candidate
			remaining = separators[i+1:]
			break
		}
	}

	if sep == "" {
		return s.splitRunes(text)
	}

	splits := strings.Split(text, sep)

	var final []string
	var good []string
	for _, piece := range splits {
		if piece == "" {
			continue
		}
		if len(piece) <= s.chunkSize {
			good = append(good, piece)
			continue
		}
		// Piece is oversized: flush what we have, then recurse into it with
		// the lower-priority separators.
		if len(good) > 0 {
			final = append(final, s.merge(good, sep)...)
			good = nil
		}
		if len(remaining) == 0 {
			final = append(final, s.splitRunes(piece)...)
		} else {
			final = append(final, s.split(piece, remaining)...)
		}
	}
	if len(good) > 0 {
		final = append(final, s.merge(good, sep)...)
	}
	return final
}

// merge joins consecutive pieces into chunks at or under the target size,
// carrying an overlap-sized tail of each chunk into the next one.
func (s *Splitter) merge(pieces []string, sep string) []string {
	sepLen := len(sep)

	var chunks []string
	var window []string
	total := 0

	for _, piece := range pieces {
		pieceLen := len(piece)
		if total+pieceLen+joinLen(sepLen, len(window) > 0) > s.chunkSize && len(window) > 0 {
			if chunk := strings.TrimSpace(strings.Join(window, sep)); chunk != "" {
				chunks = append(chunks, chunk)
			}
			// Shrink the window to the overlap budget before adding the
			// next piece, always keeping room for it under the size limit.
			for total > s.overlap ||
				(total+pieceLen+joinLen(sepLen, len(window) > 0) > s.chunkSize && total > 0) {
				total -= len(window[0]) + joinLen(sepLen, len(window) > 1)
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += pieceLen + joinLen(sepLen, len(window) > 1)
	}

	if chunk := strings.TrimSpace(strings.Join(window, sep)); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// splitRunes performs a fixed-window split with overlap, used when no
// semantic separator can bring a piece under the size limit. Windows advance
// by chunkSize-overlap runes so adjacent chunks still share context.
func (s *Splitter) splitRunes(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := s.chunkSize - s.overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}

func joinLen(sepLen int, joined bool) int {
	if joined {
		return sepLen
	}
	return 0
}
