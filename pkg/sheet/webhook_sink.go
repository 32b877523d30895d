package sheet

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"blogrank-go/pkg/analyzer"
	"blogrank-go/pkg/logger"
)

// row is the wire format accepted by the sheet webhook. Kind is
// either "log" or "result".
type row struct {
	Kind      string           `json:"kind"`
	Message   string           `json:"message,omitempty"`
	Result    *analyzer.Result `json:"result,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// WebhookSink posts rows to a spreadsheet webhook from a single
// background worker. The queue is small and bounded; when it is full,
// rows are dropped rather than blocking an analysis.
type WebhookSink struct {
	url     string
	client  *fasthttp.Client
	queue   chan row
	stop    chan struct{}
	wg      sync.WaitGroup
	timeout time.Duration
	log     *logger.Logger
}

// NewWebhookSink creates and starts a sink posting to url.
func NewWebhookSink(url string) *WebhookSink {
	s := &WebhookSink{
		url: url,
		client: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		queue:   make(chan row, 64),
		stop:    make(chan struct{}),
		timeout: 10 * time.Second,
		log:     logger.GetLogger().WithField("component", "sheet_sink"),
	}
	s.wg.Add(1)
	go s.worker()
	return s
}

// AppendLog queues a log line. Never blocks.
func (s *WebhookSink) AppendLog(message string) {
	s.enqueue(row{Kind: "log", Message: message, Timestamp: time.Now()})
}

// AppendResult queues an analysis row. Never blocks.
func (s *WebhookSink) AppendResult(result *analyzer.Result) {
	if result == nil {
		return
	}
	s.enqueue(row{Kind: "result", Result: result, Timestamp: time.Now()})
}

// Close drains queued rows and stops the worker.
func (s *WebhookSink) Close() {
	close(s.stop)
	s.wg.Wait()
}

func (s *WebhookSink) enqueue(r row) {
	select {
	case s.queue <- r:
	default:
		s.log.Debug("Sheet queue full, dropping row")
	}
}

func (s *WebhookSink) worker() {
	defer s.wg.Done()
	for {
		select {
		case r := <-s.queue:
			s.post(r)
		case <-s.stop:
			for {
				select {
				case r := <-s.queue:
					s.post(r)
				default:
					return
				}
			}
		}
	}
}

// post sends one row. Errors are logged and discarded; the sheet is a
// best-effort mirror, never a dependency of the pipeline.
func (s *WebhookSink) post(r row) {
	body, err := json.Marshal(r)
	if err != nil {
		s.log.WithError(err).Warn("Failed to marshal sheet row")
		return
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		s.log.WithError(err).Debug("Sheet append failed, ignoring")
		return
	}
	if resp.StatusCode() >= 400 {
		s.log.WithField("status", resp.StatusCode()).Debug("Sheet append rejected, ignoring")
	}
}
