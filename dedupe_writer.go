package regulator

import (
	"bufio"
	"io"
	"regexp"
	"sort"
)

var dotRuns = regexp.MustCompile(`\.{2,}`)

// SortedDedupeWriter buffers candidate hostnames, collapses runs of
// consecutive separator dots (a generated optional level can leave
// "test..example.com" behind), deduplicates, and flushes one sorted
// candidate per line on Close.
//
// Normalization happens before deduplication: "test..example.com" and
// "test.example.com" must collapse into a single entry.
type SortedDedupeWriter struct {
	w       io.Writer
	backend DedupeBackend
	limit   int
	count   int
	closed  bool
}

// NewSortedDedupeWriter wraps w. estimatedBytes selects the dedupe backend,
// limit caps the number of flushed lines (0 = unlimited).
func NewSortedDedupeWriter(w io.Writer, estimatedBytes, limit int) *SortedDedupeWriter {
	return &SortedDedupeWriter{
		w:       w,
		backend: NewDedupeBackend(estimatedBytes),
		limit:   limit,
	}
}

// WriteHost records one candidate hostname.
func (dw *SortedDedupeWriter) WriteHost(host string) {
	if dw.closed || host == "" {
		return
	}
	host = dotRuns.ReplaceAllString(host, ".")
	dw.backend.Upsert(host)
}

// Count returns the number of lines flushed by Close.
func (dw *SortedDedupeWriter) Count() int {
	return dw.count
}

// Close sorts the deduplicated candidates and writes them out.
func (dw *SortedDedupeWriter) Close() error {
	if dw.closed {
		return nil
	}
	dw.closed = true

	var hosts []string
	dw.backend.IterCallback(func(elem string) {
		hosts = append(hosts, elem)
	})
	dw.backend.Cleanup()
	sort.Strings(hosts)

	bw := bufio.NewWriter(dw.w)
	for _, host := range hosts {
		if dw.limit > 0 && dw.count >= dw.limit {
			break
		}
		if _, err := bw.WriteString(host + "\n"); err != nil {
			return err
		}
		dw.count++
	}
	return bw.Flush()
}
