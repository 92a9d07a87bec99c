package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/joes9987/CreatorAssistant/internal/highlight"
)

func TestWriteCandidatesEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCandidates(&buf, nil); err != nil {
		t.Fatal(err)
	}

	out := strings.TrimSpace(buf.String())
	if out != "[]" {
		t.Errorf("empty list should print [], got %q", out)
	}
}

func TestWriteCandidatesRoundTrip(t *testing.T) {
	cands := []highlight.Candidate{
		{Start: 37, End: 67, Score: 0.9, Source: highlight.SourceSignal},
	}

	var buf bytes.Buffer
	if err := writeCandidates(&buf, cands); err != nil {
		t.Fatal(err)
	}

	var decoded []highlight.Candidate
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Start != 37 || decoded[0].Source != highlight.SourceSignal {
		t.Errorf("round trip lost fields: %+v", decoded)
	}
}
