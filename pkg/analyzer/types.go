package analyzer

import (
	"time"

	"blogrank-go/pkg/volume"
)

// RankEntry pairs a probed keyword with its organic position. A nil
// Rank means the blog was not found within the rank horizon.
type RankEntry struct {
	Keyword string `json:"keyword"`
	Rank    *int   `json:"rank"`
}

// Result is the complete outcome of analyzing one blog post. It is
// built in strict sequence by the pipeline and never mutated after
// construction; persistence and rendering are the caller's concern.
type Result struct {
	ID     string `json:"id"`
	BlogID string `json:"blog_id"`
	URL    string `json:"url"`
	Title  string `json:"title"`

	Hashtags      []string `json:"hashtags"`
	SmartKeywords []string `json:"smart_keywords"`
	Pool          []string `json:"pool"`

	TitleRank *int        `json:"title_rank"`
	Ranks     []RankEntry `json:"ranks"`

	BestKeyword       *string     `json:"best_keyword"`
	BestRank          *int        `json:"best_rank"`
	OtherGoodKeywords []RankEntry `json:"other_good_keywords"`
	FinalKeyword      *string     `json:"final_keyword"`

	SearchVolume *volume.Volume `json:"search_volume"`
	Grade        Grade          `json:"grade"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Step identifies a pipeline stage for progress reporting.
type Step string

const (
	StepIdle         Step = "idle"
	StepExtracting   Step = "extracting"
	StepProbingTitle Step = "probing-title"
	StepProbingPool  Step = "probing-pool"
	StepSelecting    Step = "selecting"
	StepEnriching    Step = "enriching"
	StepComplete     Step = "complete"
	StepError        Step = "error"
)

// Event is one immutable progress notification. The pipeline emits an
// ordered sequence of these; any presentation layer renders them
// independently of the pipeline logic.
type Event struct {
	Step    Step      `json:"step"`
	Message string    `json:"message"`
	Keyword string    `json:"keyword,omitempty"`
	Rank    *int      `json:"rank,omitempty"`
	At      time.Time `json:"at"`
}

// ProgressSink receives progress events synchronously. Implementations
// must be fast and must not panic; the pipeline calls the sink many
// times per analysis.
type ProgressSink func(Event)
