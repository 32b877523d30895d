package volume

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"blogrank-go/pkg/logger"
)

const (
	defaultBaseURL  = "https://api.searchad.naver.com"
	keywordToolPath = "/keywordstool"
)

// Credentials holds the Naver SearchAd API credential triple. All
// three fields must be present for volume lookups to be available.
type Credentials struct {
	APIKey     string `json:"api_key" mapstructure:"api_key"`
	SecretKey  string `json:"secret_key" mapstructure:"secret_key"`
	CustomerID string `json:"customer_id" mapstructure:"customer_id"`
}

// Complete reports whether every credential field is set.
func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.SecretKey != "" && c.CustomerID != ""
}

type keywordToolResponse struct {
	KeywordList []keywordToolEntry `json:"keywordList"`
}

type keywordToolEntry struct {
	RelKeyword    string     `json:"relKeyword"`
	MonthlyPC     QueryCount `json:"monthlyPcQcCnt"`
	MonthlyMobile QueryCount `json:"monthlyMobileQcCnt"`
}

// SearchAdClient queries the Naver SearchAd keyword tool for monthly
// query volumes. Requests are signed with HMAC-SHA256 over
// "{timestampMillis}.{method}.{path}".
type SearchAdClient struct {
	baseURL string
	creds   Credentials
	client  *fasthttp.Client
	timeout time.Duration
	now     func() time.Time
	log     *logger.Logger
}

// NewSearchAdClient creates a volume provider. Incomplete credentials
// are allowed; GetVolume then reports the feature as unavailable
// instead of failing.
func NewSearchAdClient(creds Credentials) *SearchAdClient {
	return &SearchAdClient{
		baseURL: defaultBaseURL,
		creds:   creds,
		client: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		timeout: 10 * time.Second,
		now:     time.Now,
		log:     logger.GetLogger().WithField("component", "searchad_client"),
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *SearchAdClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// GetVolume looks up monthly search volume for a keyword. Returns
// (nil, nil) without a network call when credentials are incomplete.
func (c *SearchAdClient) GetVolume(ctx context.Context, keyword string) (*Volume, error) {
	if !c.creds.Complete() {
		c.log.Debug("SearchAd credentials incomplete, skipping volume lookup")
		return nil, nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	params := url.Values{}
	params.Set("hintKeywords", strings.ReplaceAll(keyword, " ", ""))
	params.Set("showDetail", "1")

	req.SetRequestURI(c.baseURL + keywordToolPath + "?" + params.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)

	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
	req.Header.Set("X-Timestamp", timestamp)
	req.Header.Set("X-API-KEY", c.creds.APIKey)
	req.Header.Set("X-Customer", c.creds.CustomerID)
	req.Header.Set("X-Signature", Sign(timestamp, fasthttp.MethodGet, keywordToolPath, c.creds.SecretKey))

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("keyword tool request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("keyword tool API returned HTTP %d", resp.StatusCode())
	}

	var decoded keywordToolResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode keyword tool response: %w", err)
	}
	if len(decoded.KeywordList) == 0 {
		return nil, fmt.Errorf("keyword tool returned no entries for %q", keyword)
	}

	entry := pickEntry(decoded.KeywordList, keyword)
	vol := &Volume{
		PC:     int(entry.MonthlyPC),
		Mobile: int(entry.MonthlyMobile),
	}
	vol.Total = vol.PC + vol.Mobile

	c.log.WithFields(map[string]interface{}{
		"keyword": keyword,
		"total":   vol.Total,
	}).Debug("Search volume fetched")

	return vol, nil
}

// pickEntry prefers an exact keyword match, then a match with all
// whitespace removed, and falls back to the first returned entry.
func pickEntry(entries []keywordToolEntry, keyword string) keywordToolEntry {
	for _, e := range entries {
		if e.RelKeyword == keyword {
			return e
		}
	}
	compact := strings.ReplaceAll(keyword, " ", "")
	for _, e := range entries {
		if e.RelKeyword == compact {
			return e
		}
	}
	return entries[0]
}

// Sign computes the base64 HMAC-SHA256 request signature over
// "{timestampMillis}.{method}.{path}".
func Sign(timestamp, method, path, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(timestamp + "." + method + "." + path))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
