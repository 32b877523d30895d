package extractor

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// TextExtractor implements KeywordExtractor with a heuristic Korean
// tokenizer. It deliberately avoids a morphological analyzer: tokens
// are contiguous Hangul runs, and particle stripping is a fixed
// ordered suffix list (see korean.go).
type TextExtractor struct {
	maxKeywords int
}

// NewTextExtractor creates an extractor with the default keyword cap.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{maxKeywords: MaxSmartKeywords}
}

// Hashtags scans text for #-prefixed tokens (Hangul, Latin, digits,
// underscore), strips the marker, and deduplicates keeping the first
// occurrence order.
func (e *TextExtractor) Hashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := m[1]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// NounFrequencies tokenizes text into Hangul runs, strips one trailing
// particle per token, drops short tokens and stopwords, and counts the
// survivors.
func (e *TextExtractor) NounFrequencies(text string) map[string]int {
	freqs, _ := e.nounCounts(text)
	return freqs
}

// nounCounts returns the frequency map plus tokens in first-seen order.
// The order is what makes tied smart-keyword scores deterministic.
func (e *TextExtractor) nounCounts(text string) (map[string]int, []string) {
	freqs := make(map[string]int)
	var order []string

	for _, run := range hangulRunPattern.FindAllString(text, -1) {
		noun := StripParticles(run)
		if utf8.RuneCountInString(noun) < 2 || isStopword(noun) {
			continue
		}
		if _, ok := freqs[noun]; !ok {
			order = append(order, noun)
		}
		freqs[noun]++
	}
	return freqs, order
}

// TitleNgrams splits the title into clean tokens and emits adjacent
// bigram and trigram phrases left to right. Phrases are space-joined
// so they can be probed as multi-word search queries.
func (e *TextExtractor) TitleNgrams(title string) []string {
	cleaned := nonWordPattern.ReplaceAllString(title, " ")
	var tokens []string
	for _, field := range strings.Fields(cleaned) {
		token := StripParticles(field)
		if utf8.RuneCountInString(token) < 2 {
			continue
		}
		tokens = append(tokens, token)
	}

	var ngrams []string
	for i := 0; i+1 < len(tokens); i++ {
		ngrams = append(ngrams, tokens[i]+" "+tokens[i+1])
		if i+2 < len(tokens) {
			ngrams = append(ngrams, tokens[i]+" "+tokens[i+1]+" "+tokens[i+2])
		}
	}
	return ngrams
}

// SmartKeywords builds the capped candidate list in three passes:
// author hashtags first, then title nouns scored against the body
// (title frequency weighted 3x, body-only nouns need frequency >= 2),
// then title n-grams as a last resort. Fewer than the cap is a valid
// outcome when all sources run dry.
func (e *TextExtractor) SmartKeywords(title, content string, hashtags []string) []string {
	keywords := make([]string, 0, e.maxKeywords)
	seen := make(map[string]bool)

	appendKeyword := func(kw string) bool {
		if len(keywords) >= e.maxKeywords {
			return false
		}
		if kw == "" || seen[kw] {
			return true
		}
		seen[kw] = true
		keywords = append(keywords, kw)
		return len(keywords) < e.maxKeywords
	}

	for _, tag := range hashtags {
		if !appendKeyword(tag) {
			return keywords
		}
	}

	for _, scored := range e.scoredNouns(title, content) {
		if !appendKeyword(scored.noun) {
			return keywords
		}
	}

	for _, ngram := range e.TitleNgrams(title) {
		if !appendKeyword(ngram) {
			return keywords
		}
	}

	return keywords
}

type scoredNoun struct {
	noun  string
	score int
}

// scoredNouns scores title nouns at titleFreq*3 + contentFreq and
// admits body-only nouns at raw frequency when it is at least 2.
// Sorting is stable, so equal scores keep extraction order
// (title nouns before body nouns).
func (e *TextExtractor) scoredNouns(title, content string) []scoredNoun {
	titleFreqs, titleOrder := e.nounCounts(title)
	contentFreqs, contentOrder := e.nounCounts(content)

	var scored []scoredNoun
	for _, noun := range titleOrder {
		scored = append(scored, scoredNoun{
			noun:  noun,
			score: titleFreqs[noun]*3 + contentFreqs[noun],
		})
	}
	for _, noun := range contentOrder {
		if _, inTitle := titleFreqs[noun]; inTitle {
			continue
		}
		if contentFreqs[noun] >= 2 {
			scored = append(scored, scoredNoun{noun: noun, score: contentFreqs[noun]})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

// Pool merges hashtags and smart keywords into the probe pool:
// hashtags first, first occurrence wins, order preserved.
func (e *TextExtractor) Pool(hashtags, smart []string) []string {
	seen := make(map[string]bool)
	pool := make([]string, 0, len(hashtags)+len(smart))
	for _, kw := range hashtags {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			pool = append(pool, kw)
		}
	}
	for _, kw := range smart {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			pool = append(pool, kw)
		}
	}
	return pool
}
