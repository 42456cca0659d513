package repository

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func strPtr(s string) *string { return &s }

func TestDecodeSkills(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	got := decodeSkills(strPtr(`["React", " node ", "", "react"]`), logger, "jobseekers", 1)
	if !reflect.DeepEqual(got, []string{"React", "node"}) {
		t.Fatalf("unexpected skills: %v", got)
	}

	for _, raw := range []*string{nil, strPtr(""), strPtr("null")} {
		if got := decodeSkills(raw, logger, "jobseekers", 2); len(got) != 0 {
			t.Fatalf("expected empty list, got %v", got)
		}
	}
	if observed.Len() != 0 {
		t.Fatalf("empty values must not warn")
	}

	got = decodeSkills(strPtr(`React, Node`), logger, "job_postings", 3)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list for malformed json, got %#v", got)
	}
	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if entries[0].ContextMap()["table"] != "job_postings" {
		t.Fatalf("unexpected warning fields: %v", entries[0].ContextMap())
	}
}

func TestEncodeSkills(t *testing.T) {
	s, err := encodeSkills([]string{" Go ", "go", "SQL", ""})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s != `["Go","SQL"]` {
		t.Fatalf("unexpected encoding: %s", s)
	}

	s, _ = encodeSkills(nil)
	if s != `[]` {
		t.Fatalf("expected empty array, got %s", s)
	}
}
