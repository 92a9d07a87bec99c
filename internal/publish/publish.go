// Package publish is the seam to external publishing sinks (YouTube,
// TikTok, ...). The sinks themselves are opaque collaborators; what lives
// here is the interface they implement and the clip numbering counter that
// persists across runs so titles stay sequential.
package publish

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Sink publishes one rendered clip. num is the clip's persistent sequence
// number.
type Sink interface {
	Name() string
	Publish(ctx context.Context, clipPath string, num int) error
}

// NullSink accepts everything and publishes nothing. Useful for dry runs
// and for exercising the counter without a configured platform.
type NullSink struct{}

func (NullSink) Name() string { return "null" }

func (NullSink) Publish(context.Context, string, int) error { return nil }

// Counter hands out sequential clip numbers, persisted as a single integer
// in a text file. The only cross-run state in the whole system.
type Counter struct {
	path  string
	start int
}

// NewCounter creates a counter backed by path, starting at start when the
// file does not exist yet or is unreadable.
func NewCounter(path string, start int) *Counter {
	if start < 1 {
		start = 1
	}
	return &Counter{path: path, start: start}
}

// Next reserves n sequential numbers and persists the follow-on value.
func (c *Counter) Next(n int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	current := c.start
	if data, err := os.ReadFile(c.path); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil {
			current = v
		}
	}

	nums := make([]int, n)
	for i := range nums {
		nums[i] = current + i
	}

	next := nums[n-1] + 1
	if err := os.WriteFile(c.path, []byte(strconv.Itoa(next)), 0644); err != nil {
		return nil, fmt.Errorf("failed to persist clip counter: %w", err)
	}
	return nums, nil
}
