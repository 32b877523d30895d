package extractor

import "regexp"

// particles is the ordered list of Korean grammatical particles tried
// during suffix stripping. Order is part of the extraction contract:
// the first entry that matches wins, even when a longer entry further
// down would also match. Reordering this list changes extraction
// results for existing posts.
var particles = []string{
	"에서의", "에서는", "에서", "으로써", "으로서", "으로는", "으로", "이라고",
	"라고", "까지", "부터", "에게", "한테", "처럼", "만큼", "보다", "마다",
	"조차", "밖에", "은", "는", "이", "가", "을", "를", "에", "의", "와",
	"과", "도", "만", "랑", "로",
}

// stopwords are common temporal/discourse words that carry no search
// intent and only pollute the frequency map.
var stopwords = map[string]bool{
	"오늘": true, "내일": true, "어제": true, "지금": true, "요즘": true,
	"이번": true, "다음": true, "지난": true, "올해": true, "작년": true,
	"우리": true, "저희": true, "여러분": true, "자신": true,
	"그리고": true, "그래서": true, "하지만": true, "그런데": true,
	"그래도": true, "그러면": true, "아니면": true, "때문": true,
	"정말": true, "진짜": true, "너무": true, "매우": true, "아주": true,
	"그냥": true, "바로": true, "같이": true, "함께": true, "모두": true,
	"여기": true, "저기": true, "거기": true, "이제": true, "다시": true,
	"하나": true, "경우": true, "생각": true, "사실": true,
}

var (
	hashtagPattern   = regexp.MustCompile(`#([가-힣a-zA-Z0-9_]+)`)
	hangulRunPattern = regexp.MustCompile(`[가-힣]{2,}`)
	nonWordPattern   = regexp.MustCompile(`[^0-9A-Za-z가-힣]+`)
)

// StripParticles removes at most one trailing grammatical particle
// from a token. Candidates are tried in list order and the first hit
// wins; a particle is only stripped when the remainder keeps at least
// two characters. Tokens without a matching particle come back
// unchanged.
func StripParticles(token string) string {
	runes := []rune(token)
	for _, p := range particles {
		pr := []rune(p)
		if len(runes)-len(pr) < 2 {
			continue
		}
		if string(runes[len(runes)-len(pr):]) == p {
			return string(runes[:len(runes)-len(pr)])
		}
	}
	return token
}

func isStopword(token string) bool {
	return stopwords[token]
}
