package extractor

// KeywordExtractor derives keyword candidates from a blog post's
// title and body text.
type KeywordExtractor interface {
	// Hashtags returns #-tagged tokens in first-occurrence order, deduplicated.
	Hashtags(text string) []string
	// SmartKeywords returns at most MaxSmartKeywords derived keywords:
	// hashtags first, then frequency-scored title nouns, then title n-grams.
	SmartKeywords(title, content string, hashtags []string) []string
	// Pool merges hashtags and smart keywords into the ordered,
	// deduplicated candidate pool that gets rank-probed.
	Pool(hashtags, smart []string) []string
}

// MaxSmartKeywords caps the number of derived keywords per post.
const MaxSmartKeywords = 5
