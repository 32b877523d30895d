package fetcher

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/valyala/fasthttp"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// HTTPClient is a shared fasthttp client with browser-like headers.
// Naver serves different markup (or blocks outright) for obvious bots.
type HTTPClient struct {
	client    *fasthttp.Client
	userAgent string
	timeout   time.Duration
}

// NewHTTPClient creates an HTTP client for blog page and feed fetching.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		client: &fasthttp.Client{
			ReadTimeout:  20 * time.Second,
			WriteTimeout: 20 * time.Second,
		},
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		timeout:   20 * time.Second,
	}
}

// Get fetches a URL and returns the response body decoded to UTF-8.
func (h *HTTPClient) Get(targetURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(targetURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.5")

	if err := h.client.DoTimeout(req, resp, h.timeout); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode())
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		body = resp.Body()
	}
	return decodeToUTF8(body), nil
}

// decodeToUTF8 re-decodes EUC-KR payloads. Old Naver blog skins still
// serve EUC-KR, which breaks the Hangul tokenizer if passed through.
func decodeToUTF8(body []byte) []byte {
	if utf8.Valid(body) && !declaresEUCKR(body) {
		return body
	}
	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), body)
	if err != nil {
		return body
	}
	return decoded
}

func declaresEUCKR(body []byte) bool {
	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	lower := bytes.ToLower(head)
	return bytes.Contains(lower, []byte("charset=euc-kr")) ||
		bytes.Contains(lower, []byte(`encoding="euc-kr"`))
}
