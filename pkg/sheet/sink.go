package sheet

import "blogrank-go/pkg/analyzer"

// RecordSink appends log lines and analysis rows to a remote sheet.
// Both operations are fire-and-forget: they never block the caller
// and failures are swallowed after logging.
type RecordSink interface {
	AppendLog(message string)
	AppendResult(result *analyzer.Result)
}

// NoopSink is used when no webhook URL is configured.
type NoopSink struct{}

func (NoopSink) AppendLog(message string)             {}
func (NoopSink) AppendResult(result *analyzer.Result) {}
