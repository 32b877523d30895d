package volume

import "context"

// Volume is the monthly search query volume for a keyword.
type Volume struct {
	PC     int `json:"pc"`
	Mobile int `json:"mobile"`
	Total  int `json:"total"`
}

// Provider looks up monthly search volume for a keyword. A nil Volume
// with a nil error means the lookup is unavailable (missing
// credentials); enrichment is optional and callers must tolerate nil.
type Provider interface {
	GetVolume(ctx context.Context, keyword string) (*Volume, error)
}
