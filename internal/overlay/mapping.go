package overlay

import (
	"regexp"
	"strings"
)

// jaccardThreshold is the minimum word-set overlap for a fuzzy span match.
const jaccardThreshold = 0.6

// phraseWindow is the sliding-window length for sub-sentence matching.
const phraseWindow = 3

var sentenceSplitRe = regexp.MustCompile(`[.!?\n]+`)

// textMapping maps original-text fragments to their improved counterparts.
// Sentences are aligned by position, not by edit distance: when the improved
// text has more sentences than the original, the surplus stays unmapped and
// the corresponding spans are left untouched. Lossy, but it can never put a
// replacement on the wrong span.
type textMapping struct {
	exact map[string]string
}

// buildMapping aligns original and improved sentences 1:1 by index and also
// indexes 3-word sub-phrases of each aligned pair for partial span matches.
func buildMapping(originalText, improvedText string) *textMapping {
	m := &textMapping{exact: make(map[string]string)}

	origSentences := splitSentences(originalText)
	imprSentences := splitSentences(improvedText)

	n := len(origSentences)
	if len(imprSentences) < n {
		n = len(imprSentences)
	}

	for i := 0; i < n; i++ {
		orig, impr := origSentences[i], imprSentences[i]
		if orig == impr {
			continue
		}
		m.exact[normalizeFragment(orig)] = impr

		origWords := strings.Fields(orig)
		imprWords := strings.Fields(impr)
		for j := 0; j+phraseWindow <= len(origWords) && j+phraseWindow <= len(imprWords); j++ {
			origPhrase := strings.Join(origWords[j:j+phraseWindow], " ")
			imprPhrase := strings.Join(imprWords[j:j+phraseWindow], " ")
			if origPhrase == imprPhrase {
				continue
			}
			key := normalizeFragment(origPhrase)
			if _, taken := m.exact[key]; !taken {
				m.exact[key] = imprPhrase
			}
		}
	}
	return m
}

// lookup finds the replacement for a span's text: exact normalized match
// first, then the best Jaccard word-set match at or above the threshold.
// ok is false when nothing matches, leaving the span untouched.
func (m *textMapping) lookup(spanText string) (string, bool) {
	key := normalizeFragment(spanText)
	if key == "" {
		return "", false
	}
	if repl, found := m.exact[key]; found {
		return repl, true
	}

	spanWords := wordSet(key)
	if len(spanWords) == 0 {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for orig, repl := range m.exact {
		score := jaccard(spanWords, wordSet(orig))
		if score >= jaccardThreshold && score > bestScore {
			best, bestScore = repl, score
		}
	}
	return best, bestScore > 0
}

func splitSentences(text string) []string {
	var sentences []string
	for _, part := range sentenceSplitRe.Split(text, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

func normalizeFragment(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
