package segment

import "unicode"

// sentence-ending punctuation understood by the default boundary strategy.
// CJK full stops are included so scripts without space-delimited words still
// cut at clause ends.
func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？', '；', ';':
		return true
	}
	return false
}

// SentenceBoundary is the default cut strategy: prefer the latest sentence
// ending inside the window, then the latest whitespace, and give up when the
// window holds a single unbroken token.
func SentenceBoundary(window []rune, limit int) int {
	if limit > len(window) {
		limit = len(window)
	}

	// Latest sentence end whose punctuation fits in the chunk. Trailing
	// punctuation runs ("?!", "...") stay with the sentence they close.
	for i := limit - 1; i > 0; i-- {
		if !isSentenceEnd(window[i]) {
			continue
		}
		if i+1 < len(window) && isSentenceEnd(window[i+1]) {
			continue // cut after the full punctuation run instead
		}
		// A period between digits is a decimal point, not a boundary.
		if window[i] == '.' && i+1 < len(window) &&
			unicode.IsDigit(window[i-1]) && unicode.IsDigit(window[i+1]) {
			continue
		}
		return i + 1
	}

	if cut := WhitespaceBoundary(window, limit); cut > 0 {
		return cut
	}

	// Scripts without space-delimited words (CJK) may break after any
	// ideograph or enumeration mark.
	for i := limit; i > 0; i-- {
		if breakableRune(window[i-1]) {
			return i
		}
	}

	return 0
}

func breakableRune(r rune) bool {
	if r == '，' || r == '、' || r == '：' {
		return true
	}
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// WhitespaceBoundary cuts before the latest whitespace run inside the window,
// never inside a word. The separating whitespace itself is left for the
// splitter to consume at the cut.
func WhitespaceBoundary(window []rune, limit int) int {
	if limit > len(window) {
		limit = len(window)
	}
	for i := limit; i > 0; i-- {
		if !unicode.IsSpace(window[i-1]) {
			continue
		}
		cut := i - 1
		for cut > 0 && unicode.IsSpace(window[cut-1]) {
			cut--
		}
		if cut == 0 {
			// Window starts with whitespace; keep it attached rather than
			// emitting an empty chunk.
			return i
		}
		return cut
	}
	return 0
}
