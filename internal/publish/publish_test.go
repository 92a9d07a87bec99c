package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCounterFreshStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip_counter.txt")
	c := NewCounter(path, 10)

	nums, err := c.Next(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(nums) != 3 || nums[0] != 10 || nums[2] != 12 {
		t.Errorf("nums = %v, want [10 11 12]", nums)
	}
}

func TestCounterPersistsAcrossBatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip_counter.txt")

	first, err := NewCounter(path, 1).Next(2)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewCounter(path, 1).Next(2)
	if err != nil {
		t.Fatal(err)
	}

	if first[1]+1 != second[0] {
		t.Errorf("batches not sequential: %v then %v", first, second)
	}
}

func TestCounterCorruptFileFallsBackToStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip_counter.txt")
	if err := os.WriteFile(path, []byte("not a number"), 0644); err != nil {
		t.Fatal(err)
	}

	nums, err := NewCounter(path, 7).Next(1)
	if err != nil {
		t.Fatal(err)
	}
	if nums[0] != 7 {
		t.Errorf("expected fallback to start 7, got %v", nums)
	}
}

func TestCounterZeroRequest(t *testing.T) {
	c := NewCounter(filepath.Join(t.TempDir(), "c.txt"), 1)
	nums, err := c.Next(0)
	if err != nil || nums != nil {
		t.Errorf("Next(0) = %v, %v", nums, err)
	}
}

func TestNullSink(t *testing.T) {
	var s Sink = NullSink{}
	if s.Name() != "null" {
		t.Errorf("name = %q", s.Name())
	}
	if err := s.Publish(context.Background(), "clip.mp4", 1); err != nil {
		t.Errorf("null sink must not fail: %v", err)
	}
}
