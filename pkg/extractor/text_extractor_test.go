package extractor

import (
	"reflect"
	"testing"
)

func TestHashtags_DedupAndOrder(t *testing.T) {
	e := NewTextExtractor()

	// Duplicate tag keeps first occurrence only
	got := e.Hashtags("#봄 옷 #봄")
	want := []string{"봄"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Hashtags(#봄 옷 #봄) = %v, want %v", got, want)
	}

	// Mixed Hangul/Latin/digit/underscore tags, extraction order preserved
	got = e.Hashtags("내돈내산 #강남맛집 후기 #ootd_2024 #강남맛집 #cafe")
	want = []string{"강남맛집", "ootd_2024", "cafe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Hashtags mixed = %v, want %v", got, want)
	}

	// No tags at all
	if got := e.Hashtags("태그 없는 본문"); len(got) != 0 {
		t.Errorf("expected no hashtags, got %v", got)
	}
}

func TestStripParticles(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"키워드를", "키워드"},
		{"맛집은", "맛집"},
		{"서울에서", "서울"},
		{"가", "가"},     // remainder would be <2 chars, not stripped
		{"우리가", "우리"},  // 2-char remainder is allowed
		{"강남", "강남"},   // no particle suffix
		{"컴퓨터", "컴퓨터"}, // no particle suffix
	}

	for _, tt := range tests {
		if got := StripParticles(tt.in); got != tt.want {
			t.Errorf("StripParticles(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripParticles_SingleStrip(t *testing.T) {
	// Only one particle is removed per token, never iteratively.
	// "에서" strips first; the remaining "서울" stays as is.
	if got := StripParticles("서울에서"); got != "서울" {
		t.Fatalf("StripParticles(서울에서) = %q, want 서울", got)
	}
	// "에서는" is earlier in the list than "는", so it wins as a whole.
	if got := StripParticles("카페에서는"); got != "카페" {
		t.Fatalf("StripParticles(카페에서는) = %q, want 카페", got)
	}
}

func TestNounFrequencies(t *testing.T) {
	e := NewTextExtractor()

	freqs := e.NounFrequencies("맛집을 찾았다 맛집은 역시 강남 맛집")
	if freqs["맛집"] != 3 {
		t.Errorf("expected 맛집 counted 3 times, got %d", freqs["맛집"])
	}
	if freqs["강남"] != 1 {
		t.Errorf("expected 강남 counted once, got %d", freqs["강남"])
	}

	// Stopwords and short remainders never enter the map
	freqs = e.NounFrequencies("오늘 너무 좋다")
	if _, ok := freqs["오늘"]; ok {
		t.Error("stopword 오늘 should be filtered")
	}
	if _, ok := freqs["너무"]; ok {
		t.Error("stopword 너무 should be filtered")
	}
}

func TestTitleNgrams(t *testing.T) {
	e := NewTextExtractor()

	got := e.TitleNgrams("강남 맛집 추천!")
	want := []string{"강남 맛집", "강남 맛집 추천", "맛집 추천"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TitleNgrams = %v, want %v", got, want)
	}

	// Single usable token yields no phrases
	if got := e.TitleNgrams("후기"); len(got) != 0 {
		t.Errorf("expected no ngrams for one token, got %v", got)
	}
}

func TestSmartKeywords_CapAndFillOrder(t *testing.T) {
	e := NewTextExtractor()

	// Test 1: hashtags fill first and the cap holds
	hashtags := []string{"태그1", "태그2", "태그3", "태그4", "태그5", "태그6"}
	got := e.SmartKeywords("강남 맛집 추천", "본문", hashtags)
	if len(got) != MaxSmartKeywords {
		t.Fatalf("expected %d keywords, got %d", MaxSmartKeywords, len(got))
	}
	if !reflect.DeepEqual(got, hashtags[:5]) {
		t.Errorf("hashtags should fill in order, got %v", got)
	}

	// Test 2: with fewer hashtags, title nouns follow in score order
	got = e.SmartKeywords("강남 맛집", "맛집 후기 맛집 방문 맛집", []string{"내돈내산"})
	if len(got) > MaxSmartKeywords {
		t.Fatalf("cap exceeded: %v", got)
	}
	if got[0] != "내돈내산" {
		t.Errorf("hashtag must precede derived keywords, got %v", got)
	}
	// 맛집: title 1*3 + content 3 = 6, 강남: title 1*3 + 0 = 3
	if got[1] != "맛집" || got[2] != "강남" {
		t.Errorf("expected score-ordered nouns [맛집 강남] after hashtag, got %v", got)
	}

	// Test 3: everything exhausted may legitimately yield fewer than 5
	got = e.SmartKeywords("후기", "짧다", nil)
	if len(got) >= MaxSmartKeywords {
		t.Errorf("expected sparse input to yield fewer keywords, got %v", got)
	}
}

func TestSmartKeywords_ContentOnlyNounsNeedFrequencyTwo(t *testing.T) {
	e := NewTextExtractor()

	// 한라산 appears once in content only: ineligible.
	got := e.SmartKeywords("강남 맛집", "한라산 여행기 여행기", nil)
	for _, kw := range got {
		if kw == "한라산" {
			t.Errorf("content-only noun with frequency 1 must not qualify: %v", got)
		}
	}

	// 여행기 appears twice in content only: eligible at raw frequency.
	found := false
	for _, kw := range got {
		if kw == "여행기" {
			found = true
		}
	}
	if !found {
		t.Errorf("content-only noun with frequency 2 should qualify: %v", got)
	}
}

func TestPool_MergeOrder(t *testing.T) {
	e := NewTextExtractor()

	got := e.Pool([]string{"봄", "여름"}, []string{"여름", "가을", "봄"})
	want := []string{"봄", "여름", "가을"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pool = %v, want %v", got, want)
	}
}
