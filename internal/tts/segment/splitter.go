// Package segment splits long input text into size-bounded chunks that respect
// sentence and word boundaries, so each chunk can be synthesized independently.
package segment

import (
	"strings"
	"unicode"
)

// DefaultMaxChunkSize is the largest chunk the provider handles reliably in a
// single request.
const DefaultMaxChunkSize = 5000

// BoundaryFunc selects a cut position for a window of runes that exceeds the
// chunk limit. The window holds at least limit+1 runes; implementations return
// an index in (0, limit] after which the cut happens, or 0 when no acceptable
// boundary exists inside the window.
type BoundaryFunc func(window []rune, limit int) int

// Splitter chunks text greedily up to a maximum size, backing off to the best
// boundary a BoundaryFunc can find.
type Splitter struct {
	maxChunk int
	boundary BoundaryFunc
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithBoundary replaces the default sentence/whitespace boundary strategy.
func WithBoundary(fn BoundaryFunc) Option {
	return func(s *Splitter) { s.boundary = fn }
}

// New creates a Splitter with the given chunk limit. A limit below 1 falls
// back to DefaultMaxChunkSize.
func New(maxChunk int, opts ...Option) *Splitter {
	if maxChunk < 1 {
		maxChunk = DefaultMaxChunkSize
	}
	s := &Splitter{
		maxChunk: maxChunk,
		boundary: SentenceBoundary,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxChunkSize returns the configured chunk limit in runes.
func (s *Splitter) MaxChunkSize() int { return s.maxChunk }

// Split breaks text into ordered, non-empty chunks of at most the configured
// size. Characters are never dropped or reordered; the only text consumed at a
// cut is the single whitespace run separating two chunks. A token run longer
// than the limit with no internal boundary is emitted verbatim rather than
// corrupted. An empty or all-whitespace input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.maxChunk {
		return []string{text}
	}

	var chunks []string
	for len(runes) > 0 {
		if len(runes) <= s.maxChunk {
			if chunk := string(runes); strings.TrimSpace(chunk) != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := s.boundary(runes, s.maxChunk)
		if cut <= 0 {
			// No boundary inside the window: extend to the end of the
			// irreducible token rather than splitting mid-rune-run.
			cut = s.maxChunk
			for cut < len(runes) && !unicode.IsSpace(runes[cut]) {
				cut++
			}
		}

		chunk := string(runes[:cut])
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}

		// Consume the whitespace run at the cut so the next chunk starts on
		// a real character.
		for cut < len(runes) && unicode.IsSpace(runes[cut]) {
			cut++
		}
		runes = runes[cut:]
	}

	return chunks
}

// WordCount returns the total number of whitespace-delimited words across all
// chunks.
func WordCount(chunks []string) int {
	total := 0
	for _, c := range chunks {
		total += len(strings.Fields(c))
	}
	return total
}
