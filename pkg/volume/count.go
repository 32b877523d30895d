package volume

import (
	"bytes"
	"strconv"
	"strings"
)

// lowVolumeFloor is what a "< N" sentinel value parses to. The ad API
// reports "< 10" for low-traffic keywords; treating that as zero would
// undercount terms that do get searched.
const lowVolumeFloor = 5

// QueryCount is a monthly query count as reported by the keyword tool.
// The API mixes plain numbers, numeric strings and "< N" sentinel
// strings in the same field, so decoding is tolerant: sentinels parse
// to lowVolumeFloor and anything unparseable parses to zero.
type QueryCount int

func (q *QueryCount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	*q = QueryCount(parseCount(s))
	return nil
}

func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0
	}
	if strings.Contains(s, "<") {
		return lowVolumeFloor
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
