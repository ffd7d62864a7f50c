package chart

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

const (
	chartFilePrefix = "graph-"
	chartFileExt    = ".png"
)

// nameSequencer hands out graph-<unix millis>.png names. A name is never
// reused within the process: when two renders land in the same millisecond
// the later one takes the next free millisecond.
type nameSequencer struct {
	last atomic.Int64
	now  func() time.Time
}

func newNameSequencer(now func() time.Time) *nameSequencer {
	if now == nil {
		now = time.Now
	}
	return &nameSequencer{now: now}
}

func (s *nameSequencer) Next() string {
	for {
		prev := s.last.Load()
		ts := s.now().UnixMilli()
		if ts <= prev {
			ts = prev + 1
		}
		if s.last.CompareAndSwap(prev, ts) {
			return fmt.Sprintf("%s%d%s", chartFilePrefix, ts, chartFileExt)
		}
	}
}

// IsChartFile reports whether name looks like a file produced by the renderer.
func IsChartFile(name string) bool {
	return strings.HasPrefix(name, chartFilePrefix) && strings.HasSuffix(name, chartFileExt)
}
